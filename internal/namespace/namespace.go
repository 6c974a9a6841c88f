// Package namespace models the host-exposed namespace graph.
//
// The host application registers native objects under dotted names
// (e.g. "org.bukkit.Material"). Scripts address a segment of that graph
// through require; a dotted specifier resolves as a namespace import only
// while every segment, including the last, is itself a namespace rather
// than a terminal object.
package namespace

import (
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Member is one node of the namespace graph: either a nested Namespace or
// a terminal Object. The closed variant set replaces runtime type probing
// with an explicit tag.
type Member interface {
	memberName() string
}

// Namespace is a non-terminal node holding named children.
type Namespace struct {
	name     string
	children map[string]Member
}

// Object is a terminal node wrapping a host-supplied Lua value.
type Object struct {
	name  string
	value lua.LValue
}

func (n *Namespace) memberName() string { return n.name }
func (o *Object) memberName() string    { return o.name }

// Name returns the namespace's own segment name.
func (n *Namespace) Name() string { return n.name }

// Name returns the object's own segment name.
func (o *Object) Name() string { return o.name }

// Value returns the wrapped host value.
func (o *Object) Value() lua.LValue { return o.value }

// Graph is the root of a host namespace graph.
type Graph struct {
	root *Namespace
}

// NewGraph creates an empty namespace graph.
func NewGraph() *Graph {
	return &Graph{root: &Namespace{children: make(map[string]Member)}}
}

// Namespace returns the namespace at the dotted path, creating intermediate
// namespaces as needed. Registering through a path that crosses a terminal
// object replaces that object with a namespace.
func (g *Graph) Namespace(dotted string) *Namespace {
	ns := g.root
	for _, seg := range strings.Split(dotted, ".") {
		child, ok := ns.children[seg].(*Namespace)
		if !ok {
			child = &Namespace{name: seg, children: make(map[string]Member)}
			ns.children[seg] = child
		}
		ns = child
	}
	return ns
}

// Bind attaches a terminal host object under the namespace.
func (n *Namespace) Bind(name string, value lua.LValue) {
	n.children[name] = &Object{name: name, value: value}
}

// Child returns the named member, if present.
func (n *Namespace) Child(name string) (Member, bool) {
	m, ok := n.children[name]
	return m, ok
}

// Resolve walks a dotted name against the graph. It succeeds only if every
// segment resolves to a nested namespace; a terminal object or a missing
// segment anywhere in the chain fails resolution for the whole name.
func (g *Graph) Resolve(dotted string) (*Namespace, bool) {
	if dotted == "" {
		return nil, false
	}
	ns := g.root
	for _, seg := range strings.Split(dotted, ".") {
		child, ok := ns.children[seg]
		if !ok {
			return nil, false
		}
		next, ok := child.(*Namespace)
		if !ok {
			return nil, false
		}
		ns = next
	}
	return ns, true
}

// LuaValue renders the namespace as a Lua table for script consumption.
// Nested namespaces become nested tables; terminal objects surface their
// wrapped values. Namespace imports are opaque modules and never executed.
func (n *Namespace) LuaValue(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	for name, m := range n.children {
		switch v := m.(type) {
		case *Namespace:
			tbl.RawSetString(name, v.LuaValue(L))
		case *Object:
			tbl.RawSetString(name, v.value)
		}
	}
	return tbl
}
