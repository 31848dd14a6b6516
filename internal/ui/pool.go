package ui

import "errors"

var (
	// ErrDuplicateID is returned when a pool already holds a node with the id.
	ErrDuplicateID = errors.New("node id already in use")

	// ErrEmptyID is returned when a node is created without an id.
	ErrEmptyID = errors.New("node id is empty")
)

// Pool is a per-owner node allocator. Nodes created through a pool are
// indexed by id and can be released one subtree at a time or all at once
// when the owner goes away.
type Pool struct {
	owner string
	nodes map[string]*Node
}

// NewPool creates an empty pool for owner.
func NewPool(owner string) *Pool {
	return &Pool{
		owner: owner,
		nodes: make(map[string]*Node),
	}
}

// Owner returns the pool's owner name.
func (p *Pool) Owner() string {
	return p.owner
}

// Create allocates a default-styled node. An empty id is replaced by a
// generated one.
func (p *Pool) Create(id string, kind Kind) (*Node, error) {
	var n *Node
	if id == "" {
		n = NewAnonymous(kind)
	} else {
		n = NewNode(id, kind)
	}
	if err := p.Adopt(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Adopt brings an externally created node under the pool's ownership.
func (p *Pool) Adopt(n *Node) error {
	if n == nil || n.ID == "" {
		return ErrEmptyID
	}
	if _, exists := p.nodes[n.ID]; exists {
		return ErrDuplicateID
	}
	p.nodes[n.ID] = n
	return nil
}

// Get returns the node with id, or nil.
func (p *Pool) Get(id string) *Node {
	return p.nodes[id]
}

// Len returns the number of live nodes in the pool.
func (p *Pool) Len() int {
	return len(p.nodes)
}

// Release releases the node with id and forgets every pooled node in its
// subtree. Returns false when id is unknown.
func (p *Pool) Release(id string) bool {
	n, ok := p.nodes[id]
	if !ok {
		return false
	}
	p.forget(n)
	n.Release()
	return true
}

// ReleaseAll releases every pooled node and returns how many there were.
func (p *Pool) ReleaseAll() int {
	count := len(p.nodes)
	for _, n := range p.nodes {
		n.Release()
	}
	clear(p.nodes)
	return count
}

func (p *Pool) forget(n *Node) {
	if owned, ok := p.nodes[n.ID]; ok && owned == n {
		delete(p.nodes, n.ID)
	}
	for _, c := range n.children {
		p.forget(c)
	}
}
