package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: ".esparse.toml",
			content: `goal = "module"
output = "tree"
color = false
extensions = [".js", ".jsx"]

[log]
verbosity = 2
file = "esparse.log"
`,
		},
		{
			name: "yaml",
			file: ".esparse.yaml",
			content: `goal: module
output: tree
color: false
extensions: [.js, .jsx]
log:
  verbosity: 2
  file: esparse.log
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, GoalModule, cfg.Goal)
			assert.Equal(t, "tree", cfg.Output)
			assert.False(t, cfg.Color)
			assert.Equal(t, []string{".js", ".jsx"}, cfg.Extensions)
			assert.Equal(t, Log{Verbosity: 2, File: "esparse.log"}, cfg.Log)
			assert.Equal(t, path, cfg.Path)
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "partial.toml", `allow_yield = true`)
	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.AllowYield = true
	want.Path = path
	assert.Equal(t, want, cfg)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "read config")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "bad.toml", `goal = `))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, dir, "bad.yml", "goal: [unclosed"))
	assert.ErrorContains(t, err, "parse config")

	_, err = Load(writeFile(t, dir, "goal.toml", `goal = "program"`))
	assert.ErrorContains(t, err, `invalid goal "program"`)

	_, err = Load(writeFile(t, dir, "ext.toml", `extensions = ["js"]`))
	assert.ErrorContains(t, err, `invalid extension "js"`)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	_, ok := Find(nested)
	if ok {
		t.Skip("a configuration file exists above the temporary directory")
	}

	path := writeFile(t, root, ".esparse.yml", "goal: module\n")
	found, ok := Find(nested)
	require.True(t, ok)
	assert.Equal(t, path, found)

	preferred := writeFile(t, filepath.Join(root, "src"), ".esparse.toml", "")
	found, ok = Find(nested)
	require.True(t, ok)
	assert.Equal(t, preferred, found)
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Resolve("", dir)
	require.NoError(t, err)
	if cfg.Path == "" {
		assert.Equal(t, Default(), cfg)
	}

	writeFile(t, dir, ".esparse.toml", `goal = "module"`)
	cfg, err = Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, GoalModule, cfg.Goal)

	explicit := writeFile(t, dir, "other.yaml", "output: compact\n")
	cfg, err = Resolve(explicit, dir)
	require.NoError(t, err)
	assert.Equal(t, GoalScript, cfg.Goal)
	assert.Equal(t, "compact", cfg.Output)
}

func TestContext(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want parser.Context
	}{
		{"script", Config{Goal: GoalScript}, parser.ScriptContext},
		{"module", Config{Goal: GoalModule}, parser.ModuleContext},
		{"yield", Config{Goal: GoalScript, AllowYield: true}, parser.Context{AllowIn: true, AllowYield: true}},
		{"await", Config{Goal: GoalScript, AllowAwait: true}, parser.Context{AllowIn: true, AllowAwait: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Context())
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.Goal = GoalModule
	cfg.Comments = true

	p := parser.ParseScript(strings.NewReader("// top\nawait x;"), cfg.ParserOptions()...)
	node, err := p.Finish()
	require.NoError(t, err)
	assert.Equal(t, "(Script (ExprStmt (Await (Identifier x))))", node.Compact())
	require.Len(t, p.Comments(), 1)

	_, err = parser.ParseScript(strings.NewReader("await x;"), Default().ParserOptions()...).Finish()
	assert.Error(t, err)
}

func TestMatches(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Matches("a/b.js"))
	assert.True(t, cfg.Matches("b.MJS"))
	assert.False(t, cfg.Matches("b.ts"))
	assert.False(t, cfg.Matches("Makefile"))
}
