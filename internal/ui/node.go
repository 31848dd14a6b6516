// Package ui provides the retained-mode UI tree that plugins mutate.
//
// Plugins never issue draw calls. They build and edit a tree of Nodes; the
// compositor walks the tree once per scheduled frame and turns every visible
// node into a layout declaration.
//
// # Ownership
//
// A node has at most one parent. AddChild re-parents a node that is already
// attached elsewhere, and RemoveChild clears the back-reference, so the
// parent's child list and the child's parent pointer always agree.
//
// Detaching does not tear a subtree down. Release detaches a node and breaks
// every link and click handler in its subtree; Pool.ReleaseAll does the same
// in bulk for all nodes a plugin created.
//
// The tree is not safe for concurrent use. It is only touched from the UI
// thread.
package ui

import (
	"github.com/google/uuid"
)

// Kind is the kind of content a node declares.
type Kind uint8

const (
	KindContainer Kind = iota
	KindText
	KindImage
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// ClickFunc is invoked when a press lands on a node. It receives the node
// that was hit; per-registration context is captured by the closure.
type ClickFunc func(n *Node)

// Node is one element of the retained tree.
type Node struct {
	// ID must be unique within a tree; the layout engine keys hit-testing on it.
	ID    string
	Kind  Kind
	Style Style

	// Text is the content of a KindText node.
	Text string
	// Image is an opaque image reference for a KindImage node.
	Image any

	parent   *Node
	children []*Node
	onClick  ClickFunc
}

// NewNode creates a default-styled node.
func NewNode(id string, kind Kind) *Node {
	return &Node{
		ID:    id,
		Kind:  kind,
		Style: DefaultStyle(),
	}
}

// NewAnonymous creates a node with a generated unique id.
func NewAnonymous(kind Kind) *Node {
	return NewNode(kind.String()+"-"+uuid.NewString(), kind)
}

// NewText creates a fit-sized text node.
func NewText(id, text string) *Node {
	n := NewNode(id, KindText)
	n.Text = text
	n.Style.Width = Fit()
	n.Style.Height = Fit()
	n.Style.Background = ColorNone
	return n
}

// Parent returns the node's parent, or nil when detached.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's children. The slice must not be modified.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// IndexOf returns the index of child, or -1.
func (n *Node) IndexOf(child *Node) int {
	if n == nil || child == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AddChild appends child and sets its back-reference. A child attached to
// another parent is detached from it first. Nil arguments are a no-op, as is
// adding a node to itself or to one of its descendants.
func (n *Node) AddChild(child *Node) {
	n.InsertChild(len(n.Children()), child)
}

// InsertChild inserts child at index i (clamped to the valid range).
func (n *Node) InsertChild(i int, child *Node) {
	if n == nil || child == nil || child == n || child.isAncestorOf(n) {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.children) {
		i = len(n.children)
	}
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = child
	child.parent = n
}

// RemoveChild detaches child by identity and clears its back-reference.
// Returns false when child is not a child of n.
func (n *Node) RemoveChild(child *Node) bool {
	idx := n.IndexOf(child)
	if idx < 0 {
		return false
	}
	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	child.parent = nil
	return true
}

// ClearChildrenExcept detaches every child past the first keep and returns
// the detached nodes.
func (n *Node) ClearChildrenExcept(keep int) []*Node {
	if n == nil {
		return nil
	}
	if keep < 0 {
		keep = 0
	}
	if keep >= len(n.children) {
		return nil
	}
	dropped := make([]*Node, len(n.children)-keep)
	copy(dropped, n.children[keep:])
	for i := keep; i < len(n.children); i++ {
		n.children[i].parent = nil
		n.children[i] = nil
	}
	n.children = n.children[:keep]
	return dropped
}

// FindByID returns the first node with the given id in a depth-first,
// pre-order search of the subtree rooted at n. Hidden nodes are searched too.
func (n *Node) FindByID(id string) *Node {
	if n == nil {
		return nil
	}
	if n.ID == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// Visible reports whether the node is drawn: neither it nor any ancestor
// is hidden.
func (n *Node) Visible() bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.Style.Hidden {
			return false
		}
	}
	return n != nil
}

// Walk visits the visible subtree rooted at n depth-first in pre-order.
// Hidden nodes and their descendants are skipped. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || n.Style.Hidden {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// SetOnClick registers fn as the node's click handler; nil clears it.
func (n *Node) SetOnClick(fn ClickFunc) {
	if n == nil {
		return
	}
	n.onClick = fn
}

// Clickable reports whether a click handler is registered.
func (n *Node) Clickable() bool {
	return n != nil && n.onClick != nil
}

// Click invokes the click handler, if any. Returns whether one ran.
func (n *Node) Click() bool {
	if !n.Clickable() {
		return false
	}
	n.onClick(n)
	return true
}

// SetText replaces the node's text content.
func (n *Node) SetText(text string) {
	if n != nil {
		n.Text = text
	}
}

// SetHidden toggles the hidden flag.
func (n *Node) SetHidden(hidden bool) {
	if n != nil {
		n.Style.Hidden = hidden
	}
}

// Release detaches n from its parent and tears down its subtree: every
// descendant loses its parent and child links and its click handler.
// Released nodes are inert and may be garbage collected.
func (n *Node) Release() {
	if n == nil {
		return
	}
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
	n.release()
}

func (n *Node) release() {
	for _, c := range n.children {
		c.parent = nil
		c.release()
	}
	n.children = nil
	n.onClick = nil
}

func (n *Node) isAncestorOf(other *Node) bool {
	for cur := other.parent; cur != nil; cur = cur.parent {
		if cur == n {
			return true
		}
	}
	return false
}
