// Package interner maps identifier names to small opaque handles.
//
// The lexer interns every identifier it produces so that tokens and AST nodes
// carry a Sym instead of a string. An Interner is owned by a single parse (or a
// single goroutine); it is not safe for concurrent use.
package interner

// Sym is an interned identifier. The zero Sym is never handed out.
type Sym uint32

// None is the zero Sym; it resolves to the empty string.
const None Sym = 0

func (s Sym) IsNone() bool {
	return s == None
}

type Interner struct {
	names []string
	index map[string]Sym
}

func New() *Interner {
	return &Interner{
		names: []string{""},
		index: make(map[string]Sym),
	}
}

// Intern returns the handle for name, allocating one on first use.
func (in *Interner) Intern(name string) Sym {
	if sym, ok := in.index[name]; ok {
		return sym
	}
	sym := Sym(len(in.names))
	in.names = append(in.names, name)
	in.index[name] = sym
	return sym
}

// Lookup returns the handle for name without allocating.
func (in *Interner) Lookup(name string) (Sym, bool) {
	sym, ok := in.index[name]
	return sym, ok
}

// Resolve returns the name behind sym, or "" for None and unknown handles.
func (in *Interner) Resolve(sym Sym) string {
	if int(sym) >= len(in.names) {
		return ""
	}
	return in.names[sym]
}

func (in *Interner) Len() int {
	return len(in.names) - 1
}
