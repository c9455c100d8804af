package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/format"
	"github.com/dhamidi/esparse/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the CLI with a colorless configuration so the user's own
// configuration files are never picked up.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "esparse.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("color = false\n"), 0o644))

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCommand(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.js", "var x = 1;")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "tree",
			args: []string{"parse", "--format", "tree", path},
			want: "Script\n  VarDecl\n    Declarator x\n      NumericLiteral 1\n",
		},
		{
			name: "compact",
			args: []string{"parse", "-f", "compact", path},
			want: "(Script (VarDecl (Declarator x (NumericLiteral 1))))\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, "", tt.args...)
			require.NoError(t, res.err)
			assert.Equal(t, tt.want, res.stdout)
		})
	}
}

func TestParseCommandJSON(t *testing.T) {
	path := writeScript(t, t.TempDir(), "main.js", "var x = 1;")
	res := run(t, "", "parse", path)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"kind": "Script"`)
	assert.Contains(t, res.stdout, `"name": "x"`)
}

func TestParseCommandStdinExpression(t *testing.T) {
	res := run(t, "2 ** 3 ** 2", "parse", "-e", "-f", "compact", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "(BinaryOp ** (NumericLiteral 2) (BinaryOp ** (NumericLiteral 3) (NumericLiteral 2)))\n", res.stdout)
}

func TestParseCommandModule(t *testing.T) {
	res := run(t, "await x;", "parse", "-f", "compact", "-")
	assert.ErrorIs(t, res.err, errReported)

	res = run(t, "await x;", "parse", "--module", "-f", "compact", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "(Script (ExprStmt (Await (Identifier x))))\n", res.stdout)
}

func TestParseCommandComments(t *testing.T) {
	res := run(t, "// note\nx;", "parse", "--comments", "-f", "compact", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "(Script (ExprStmt (Identifier x)))\n<stdin>:1:1\tline comment\t\"// note\"\n", res.stdout)
}

func TestParseCommandSyntaxError(t *testing.T) {
	path := writeScript(t, t.TempDir(), "bad.js", "var x y")
	res := run(t, "", "parse", path)

	assert.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stdout, `"kind": "Error"`)
	assert.Contains(t, res.stdout, `"found": "y"`)
	assert.Contains(t, res.stderr, "syntax error in "+path+" at 1:7:")
	assert.Contains(t, res.stderr, "   1 | var x y\n     |       ^\n")
	assert.NotContains(t, res.stderr, "\x1b[")
}

func TestParseCommandMissingFile(t *testing.T) {
	res := run(t, "", "parse", filepath.Join(t.TempDir(), "missing.js"))
	assert.ErrorContains(t, res.err, "read file")
}

func TestTokensCommand(t *testing.T) {
	res := run(t, "var x = 1;", "tokens", "-")
	require.NoError(t, res.err)

	lines := strings.Split(strings.TrimSuffix(res.stdout, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "<stdin>:1:1\tvar\t\"var\"", lines[0])
	assert.Equal(t, "<stdin>:1:5\tidentifier\t\"x\"", lines[1])
	assert.Equal(t, "<stdin>:1:11\tend of input\t-", lines[5])

	res = run(t, "var x", "tokens", "--trivia", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "<stdin>:1:4\twhitespace\t\" \"")

	res = run(t, "a # b", "tokens", "-")
	assert.ErrorContains(t, res.err, "invalid tokens")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "good.js", "let a = 2 ** 8;")
	bad := writeScript(t, dir, "bad.js", "let a = 1;\nvar 5;\n")
	writeScript(t, dir, "ignored.txt", "var 5;")

	res := run(t, "", "check", dir)
	assert.ErrorIs(t, res.err, errReported)
	assert.Equal(t, "2 files checked, 1 with errors\n", res.stdout)
	assert.Contains(t, res.stderr, "syntax error in "+bad+" at 2:5:")
	assert.Contains(t, res.stderr, `expected "identifier", found "5"`)

	require.NoError(t, os.WriteFile(bad, []byte("var five;\n"), 0o644))
	res = run(t, "", "check", dir)
	require.NoError(t, res.err)
	assert.Equal(t, "2 files checked, 0 with errors\n", res.stdout)
	assert.Empty(t, res.stderr)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestReportChange(t *testing.T) {
	dir := t.TempDir()
	ws := workspace.New(dir, nil)
	good := ws.UpdateFile(filepath.Join(dir, "good.js"), []byte("a;"))
	bad := ws.UpdateFile(filepath.Join(dir, "bad.js"), []byte("var 5;"))
	change := workspace.Change{
		Updated: []*workspace.Document{good, bad},
		Removed: []string{filepath.Join(dir, "gone.js")},
	}

	var out, diags bytes.Buffer
	require.NoError(t, reportChange(format.NewDiagnosticRenderer(&diags, false), &out, change))
	assert.Equal(t, "ok "+good.Path+"\nremoved "+filepath.Join(dir, "gone.js")+"\n", out.String())
	assert.Contains(t, diags.String(), "syntax error in "+bad.Path+" at 1:5:")

	out.Reset()
	err := reportChange(format.NewDiagnosticRenderer(failingWriter{}, false), &out, change)
	assert.ErrorContains(t, err, "disk full")
	assert.Contains(t, out.String(), "ok "+good.Path)
}

func TestGrammarCommands(t *testing.T) {
	res := run(t, "", "grammar", "check")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "productions verified from SourceText")

	res = run(t, "var x = 2 ** 3;", "grammar", "recognize", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "<stdin>: derived from Script\n", res.stdout)

	res = run(t, "var x y;", "grammar", "recognize", "-")
	assert.ErrorContains(t, res.err, "Script does not derive")

	res = run(t, "a ** b", "grammar", "scan", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "punctuator")

	res = run(t, "", "grammar", "print")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "ExponentiationExpression")
}

func TestGrammarCheckFile(t *testing.T) {
	path := writeScript(t, t.TempDir(), "tiny.ebnf", "Script = Statement .\nStatement = Missing .\n")

	res := run(t, "", "grammar", "check", "--file", path, "--start", "Script")
	assert.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.stderr, "missing production Missing")

	res = run(t, "", "grammar", "check", "--file", path, "--start", "")
	require.NoError(t, res.err)
	assert.Equal(t, "2 productions parsed\n", res.stdout)
}
