package css

import (
	"slices"
)

// Node is a single element of a stylesheet tree.
type Node interface {
	// Parent returns the container node belongs to or nil when node is
	// detached (never inserted or removed).
	Parent() Container
	attach(c Container)
}

// Container is a node which holds ordered children: Stylesheet, Rule or
// AtRule with a block.
type Container interface {
	Node
	Nodes() []Node
	nodes() *[]Node
}

type base struct {
	parent Container
}

func (b *base) Parent() Container {
	return b.parent
}

func (b *base) attach(c Container) {
	b.parent = c
}

type block struct {
	base
	children []Node
}

// Nodes returns children in source order. Returned slice must not be
// modified, use Append, InsertBefore, InsertAfter and Remove instead.
func (b *block) Nodes() []Node {
	return b.children
}

func (b *block) nodes() *[]Node {
	return &b.children
}

// Stylesheet is the root of the tree.
type Stylesheet struct {
	block
	Warnings []string // Problems noticed by parser, parsing always continues
}

// Rule is a qualified rule: selector list and a block of declarations (and
// possibly nested rules).
type Rule struct {
	block
	Selector string // Comma separated selector list
}

// NewRule creates detached rule with declarations.
func NewRule(selector string, decls ...*Declaration) *Rule {
	r := &Rule{Selector: selector}
	for _, d := range decls {
		Append(r, d)
	}
	return r
}

// Declarations returns rule's own declarations in order, nested rules are
// not looked into.
func (r *Rule) Declarations() []*Declaration {
	var decls []*Declaration
	for _, n := range r.children {
		if d, ok := n.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Last returns the last own declaration of property prop, so when property
// is repeated the final one wins.
func (r *Rule) Last(prop string) *Declaration {
	var found *Declaration
	for _, d := range r.Declarations() {
		if d.Property == prop {
			found = d
		}
	}
	return found
}

// Value returns value of the last own declaration of property prop or an
// empty string.
func (r *Rule) Value(prop string) string {
	if d := r.Last(prop); d != nil {
		return d.Value
	}
	return ""
}

// AtRule is an @-rule, either a statement (@import, @charset) or a block
// (@media, @supports, @font-face).
type AtRule struct {
	block
	Name     string // Without leading "@"
	Params   string // Prelude
	HasBlock bool
}

// Declaration is a property: value pair.
type Declaration struct {
	base
	Property string
	Value    string
}

// NewDeclaration creates detached declaration.
func NewDeclaration(prop, val string) *Declaration {
	return &Declaration{Property: prop, Value: val}
}

// Comment keeps comment text including delimiters.
type Comment struct {
	base
	Text string
}

// Append adds nodes to the end of container c. Nodes attached elsewhere are
// moved.
func Append(c Container, nodes ...Node) {
	for _, n := range nodes {
		detach(n)
		n.attach(c)
		*c.nodes() = append(*c.nodes(), n)
	}
}

// InsertBefore puts nodes in front of ref inside ref's parent. It returns
// false if ref is detached.
func InsertBefore(ref Node, nodes ...Node) bool {
	return insert(ref, 0, nodes)
}

// InsertAfter puts nodes right after ref inside ref's parent. It returns
// false if ref is detached.
func InsertAfter(ref Node, nodes ...Node) bool {
	return insert(ref, 1, nodes)
}

func insert(ref Node, shift int, nodes []Node) bool {
	c := ref.Parent()
	if c == nil {
		return false
	}
	for _, n := range nodes {
		detach(n)
		n.attach(c)
	}
	children := c.nodes()
	idx := slices.Index(*children, ref)
	*children = slices.Insert(*children, idx+shift, nodes...)
	return true
}

// Remove detaches node from its parent. Removing detached node is a no-op.
func Remove(n Node) {
	detach(n)
}

func detach(n Node) {
	c := n.Parent()
	if c == nil {
		return
	}
	children := c.nodes()
	if idx := slices.Index(*children, n); idx >= 0 {
		*children = slices.Delete(*children, idx, idx+1)
	}
	n.attach(nil)
}

// Walk visits every node under c depth first in document order. Visiting
// works on a snapshot of the tree taken before the first call, nodes
// detached by fn before they are reached are skipped, nodes added by fn are
// not visited.
func Walk(c Container, fn func(Node)) {
	for _, n := range collect(c, nil) {
		if n.Parent() == nil {
			continue
		}
		fn(n)
	}
}

func collect(c Container, acc []Node) []Node {
	for _, n := range c.Nodes() {
		acc = append(acc, n)
		if sub, ok := n.(Container); ok {
			acc = collect(sub, acc)
		}
	}
	return acc
}

// WalkDecls visits all declarations of property prop under c, any property
// when prop is empty.
func WalkDecls(c Container, prop string, fn func(*Declaration)) {
	Walk(c, func(n Node) {
		if d, ok := n.(*Declaration); ok && (prop == "" || d.Property == prop) {
			fn(d)
		}
	})
}

// WalkRules visits all rules under c with selector list equal to selector,
// any rule when selector is empty.
func WalkRules(c Container, selector string, fn func(*Rule)) {
	Walk(c, func(n Node) {
		if r, ok := n.(*Rule); ok && (selector == "" || r.Selector == selector) {
			fn(r)
		}
	})
}

