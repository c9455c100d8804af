package parser

// Context carries the grammar parameters every production receives. It is a
// value: productions derive a changed copy for their sub-productions and the
// caller's Context is never affected.
type Context struct {
	// AllowIn permits `in` as a relational operator. It is cleared inside
	// for-statement heads.
	AllowIn bool
	// AllowYield makes `yield` an operator instead of an identifier.
	AllowYield bool
	// AllowAwait makes `await` an operator instead of an identifier.
	AllowAwait bool
}

// ScriptContext is the Context a script body starts with.
var ScriptContext = Context{AllowIn: true}

// ModuleContext is the Context a module body starts with.
var ModuleContext = Context{AllowIn: true, AllowAwait: true}

func (c Context) WithIn(allow bool) Context {
	c.AllowIn = allow
	return c
}

func (c Context) WithYield(allow bool) Context {
	c.AllowYield = allow
	return c
}

func (c Context) WithAwait(allow bool) Context {
	c.AllowAwait = allow
	return c
}
