// Package tree implements the rooted-tree data model shared by the
// reference and alternative trees of a transfer-index computation: node and
// edge construction, traversal, the TreeModel preparation pass, the leaf
// bijection, and the balanced-case (no heavy-path tree) AltIndex.
//
// Newick/Nexus parsing, taxon hashtables, CLI wiring, tree rerooting and
// DOT-format printing are all out of scope here; callers hand this package
// already-shaped trees (see SPEC_FULL.md, §6 External Interfaces).
package tree

import "sort"

// Tree is a rooted tree built node-by-node via NewNode/ConnectNodes.
type Tree struct {
	root *Node

	nextNodeID int
	nextEdgeID int

	tipIndex map[string]int
}

// NewTree returns an empty tree with no root.
func NewTree() *Tree {
	return &Tree{tipIndex: make(map[string]int)}
}

// NewNode allocates a new, unattached node owned by this tree.
func (t *Tree) NewNode() *Node {
	n := &Node{id: t.nextNodeID, pathID: NoPathID}
	t.nextNodeID++
	return n
}

// NewEdge allocates a new edge with nil length/support, owned by this tree.
func (t *Tree) NewEdge(left, right *Node) *Edge {
	e := &Edge{
		id:        t.nextEdgeID,
		left:      left,
		right:     right,
		length:    NilLength,
		support:   NilSupport,
		topoDepth: NilTopoDepth,
	}
	e.transferIndex = NilTransferIndex
	t.nextEdgeID++
	return e
}

// ConnectNodes makes child a new child of parent, returning the connecting
// edge. Both directions of the neighbour/edge lists are updated; parent
// must already be part of the tree (or be about to become the root).
func (t *Tree) ConnectNodes(parent, child *Node) *Edge {
	e := t.NewEdge(parent, child)
	parent.addChild(child, e)
	child.neigh = append([]*Node{parent}, child.neigh...)
	child.br = append([]*Edge{e}, child.br...)
	return e
}

// SetRoot designates n as the tree's root. n must have no parent slot: any
// caller-supplied neighbours of n are treated as children.
func (t *Tree) SetRoot(n *Node) {
	t.root = n
	n.isRoot = true
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Rooted reports whether the tree has a root; this model has no unrooted
// representation, so only an empty tree returns false.
func (t *Tree) Rooted() bool { return t.root != nil }

func (t *Tree) nodesRecur(n *Node, out *[]*Node) {
	*out = append(*out, n)
	for _, c := range n.Children() {
		t.nodesRecur(c, out)
	}
}

// Nodes returns every node of the tree, in pre-order.
func (t *Tree) Nodes() []*Node {
	var out []*Node
	if t.root != nil {
		t.nodesRecur(t.root, &out)
	}
	return out
}

func (t *Tree) tipsRecur(n *Node, out *[]*Node) {
	if n.Tip() {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children() {
		t.tipsRecur(c, out)
	}
}

// Tips returns every leaf of the tree, in left-to-right order.
func (t *Tree) Tips() []*Node {
	var out []*Node
	if t.root != nil {
		t.tipsRecur(t.root, &out)
	}
	return out
}

func (t *Tree) edgesRecur(n *Node, out *[]*Edge) {
	for i, c := range n.Children() {
		*out = append(*out, n.br[n.childStart()+i])
		t.edgesRecur(c, out)
	}
}

// Edges returns every edge of the tree, in pre-order over its right (child)
// endpoint.
func (t *Tree) Edges() []*Edge {
	var out []*Edge
	if t.root != nil {
		t.edgesRecur(t.root, &out)
	}
	return out
}

// InternalEdges returns every edge whose right endpoint is not a leaf.
func (t *Tree) InternalEdges() []*Edge {
	var out []*Edge
	for _, e := range t.Edges() {
		if !e.Right().Tip() {
			out = append(out, e)
		}
	}
	return out
}

// TipEdges returns every edge whose right endpoint is a leaf.
func (t *Tree) TipEdges() []*Edge {
	var out []*Edge
	for _, e := range t.Edges() {
		if e.Right().Tip() {
			out = append(out, e)
		}
	}
	return out
}

// AllTipNames returns the names of every leaf, in tree order.
func (t *Tree) AllTipNames() []string {
	tips := t.Tips()
	names := make([]string, len(tips))
	for i, n := range tips {
		names[i] = n.Name()
	}
	return names
}

// SortedTips returns every leaf sorted by taxon name, the ordering used by
// SetLeafBijection.
func (t *Tree) SortedTips() []*Node {
	tips := t.Tips()
	sort.Slice(tips, func(i, j int) bool { return tips[i].Name() < tips[j].Name() })
	return tips
}

// UpdateTipIndex (re)builds the name->leaf-count index used by ExistsTip.
func (t *Tree) UpdateTipIndex() {
	t.tipIndex = make(map[string]int)
	for _, n := range t.Tips() {
		t.tipIndex[n.Name()]++
	}
}

// ExistsTip reports whether a leaf with the given name exists. Requires a
// prior call to UpdateTipIndex.
func (t *Tree) ExistsTip(name string) bool {
	_, ok := t.tipIndex[name]
	return ok
}

// NumLeaves returns the number of leaves in the tree.
func (t *Tree) NumLeaves() int { return len(t.Tips()) }

func (t *Tree) cloneRecur(n *Node, nt *Tree) *Node {
	nn := nt.NewNode()
	nn.name = n.name
	for i, c := range n.Children() {
		nc := t.cloneRecur(c, nt)
		e := nt.ConnectNodes(nn, nc)
		e.length = n.br[n.childStart()+i].length
		e.support = n.br[n.childStart()+i].support
	}
	return nn
}

// Clone returns a deep copy of the tree, with fresh node/edge ids and none
// of the AltIndex/HPT/bijection bookkeeping carried over.
func (t *Tree) Clone() *Tree {
	nt := NewTree()
	if t.root == nil {
		return nt
	}
	nt.SetRoot(t.cloneRecur(t.root, nt))
	nt.UpdateTipIndex()
	return nt
}
