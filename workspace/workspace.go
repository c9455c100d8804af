// Package workspace keeps a set of parsed ECMAScript documents up to date:
// a parallel initial scan, a polling watcher and a language server that
// publishes parse diagnostics.
package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/dhamidi/esparse/config"
	"github.com/dhamidi/esparse/ecma/parser"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("esparse.workspace")

type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	cfg     *config.Config
	docs    map[string]*Document
}

// Document is the latest parse of one file. Exactly one of AST and Err is
// set.
type Document struct {
	Path    string
	Content []byte
	AST     *parser.Node
	Err     error
}

func New(rootDir string, cfg *config.Config) *Workspace {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Workspace{
		rootDir: rootDir,
		cfg:     cfg,
		docs:    make(map[string]*Document),
	}
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Config() *config.Config {
	return w.cfg
}

// Collect lists the source files under paths. Directories are walked,
// skipping hidden directories and node_modules, and only files with a
// configured extension are kept. Files named directly are always kept.
func (w *Workspace) Collect(paths ...string) ([]string, error) {
	var files []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if w.cfg.Matches(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", root, err)
		}
	}
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || name == "node_modules"
}

// ScanAll parses every source file under the root directory.
func (w *Workspace) ScanAll(ctx context.Context) error {
	files, err := w.Collect(w.rootDir)
	if err != nil {
		return err
	}
	return w.ScanFiles(ctx, files)
}

// ScanFiles parses files in parallel, at most GOMAXPROCS at a time. Syntax
// errors are recorded on the documents; only read failures and cancellation
// are returned.
func (w *Workspace) ScanFiles(ctx context.Context, files []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := w.ScanFile(path)
			return err
		})
	}

	err := g.Wait()
	log.Debugf("scanned %d files", len(files))
	return err
}

func (w *Workspace) ScanFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", path, err)
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile parses content as the new text of path. The parse runs without
// holding the lock.
func (w *Workspace) UpdateFile(path string, content []byte) *Document {
	doc := w.parse(path, content)

	w.mu.Lock()
	w.docs[path] = doc
	w.mu.Unlock()
	return doc
}

func (w *Workspace) parse(path string, content []byte) *Document {
	opts := append(w.cfg.ParserOptions(), parser.WithFile(w.displayName(path)))
	ast, err := parser.ParseScript(bytes.NewReader(content), opts...).Finish()
	if err != nil {
		log.Debugf("%s", err)
	}
	return &Document{Path: path, Content: content, AST: ast, Err: err}
}

func (w *Workspace) displayName(path string) string {
	if rel, err := filepath.Rel(w.rootDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, path)
}

func (w *Workspace) Document(path string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[path]
}

// Documents returns all documents ordered by path.
func (w *Workspace) Documents() []*Document {
	w.mu.RLock()
	docs := make([]*Document, 0, len(w.docs))
	for _, doc := range w.docs {
		docs = append(docs, doc)
	}
	w.mu.RUnlock()

	slices.SortFunc(docs, func(a, b *Document) int {
		return strings.Compare(a.Path, b.Path)
	})
	return docs
}

// Failed returns the documents that did not parse, ordered by path.
func (w *Workspace) Failed() []*Document {
	var failed []*Document
	for _, doc := range w.Documents() {
		if doc.Err != nil {
			failed = append(failed, doc)
		}
	}
	return failed
}

// SyntaxError returns the document's parse failure as a *parser.Error, or
// nil when it parsed or failed for another reason.
func (d *Document) SyntaxError() *parser.Error {
	var syntaxErr *parser.Error
	if errors.As(d.Err, &syntaxErr) {
		return syntaxErr
	}
	return nil
}
