package tree

// NoPathID marks a Node that has not been linked into a heavy-path tree.
const NoPathID int32 = -1

// Node is a vertex of a rooted tree. For a non-root node, neigh[0] is always
// the parent and br[0] the edge to it; every other position is a child.
// The root has no parent slot: all of its neighbours are children.
type Node struct {
	id   int
	name string

	neigh []*Node
	br    []*Edge

	// isRoot is set once by Tree.SetRoot. childStart/Children rely on this
	// rather than depth==0, since depth is only valid after Tree.Prepare's
	// preOrderDepth pass, but traversals (Tips, checkShape, ...) run before
	// that pass too.
	isRoot bool

	depth       int
	subtreeSize int
	heavyChild  *Node
	lightLeaves []*Node

	// other is the leaf <-> leaf bijection pointer, set by SetLeafBijection.
	other *Node

	// Balanced-case AltIndex bookkeeping (tree/altindex.go), meaningful only
	// on the alt-tree side of a computation.
	dLazy, dMin, dMax, diff int
	include, exclude        []*Node

	// pathID links this node into a heavypath.HPT arena when the alt-tree is
	// decomposed into heavy paths; NoPathID if unset.
	pathID int32

	// Driver output (transferindex package), meaningful only on the ref-tree
	// side of a computation.
	tiMin, tiMax int
}

// Id returns the node's unique identifier within its tree.
func (n *Node) Id() int { return n.id }

// Name returns the node's taxon name (empty for internal nodes, usually).
func (n *Node) Name() string { return n.name }

// SetName sets the node's taxon name.
func (n *Node) SetName(name string) { n.name = name }

// Neigh returns the node's neighbour list, parent first for non-root nodes.
func (n *Node) Neigh() []*Node { return n.neigh }

// Edges returns the edges parallel to Neigh.
func (n *Node) Edges() []*Edge { return n.br }

// Nneigh returns the number of neighbours.
func (n *Node) Nneigh() int { return len(n.neigh) }

// Tip returns true if this node is a leaf (exactly one neighbour: its parent).
func (n *Node) Tip() bool { return len(n.neigh) == 1 }

// Depth returns the node's depth (root = 0), valid after Tree.Prepare.
func (n *Node) Depth() int { return n.depth }

// SubtreeSize returns the number of leaves under this node, valid after
// Tree.Prepare.
func (n *Node) SubtreeSize() int { return n.subtreeSize }

// HeavyChild returns the child with maximal subtree size (nil for leaves).
func (n *Node) HeavyChild() *Node { return n.heavyChild }

// LightLeaves returns the leaves reachable without descending through the
// heavy child.
func (n *Node) LightLeaves() []*Node { return n.lightLeaves }

// Other returns this node's bijection partner in the paired tree.
func (n *Node) Other() *Node { return n.other }

// SetOther sets the bijection partner.
func (n *Node) SetOther(o *Node) { n.other = o }

// PathID returns the arena index of this node's heavy-path-tree Path, or
// NoPathID if the node has not been linked into one.
func (n *Node) PathID() int32 { return n.pathID }

// SetPathID links this node to a heavypath.HPT arena entry.
func (n *Node) SetPathID(id int32) { n.pathID = id }

// TIMin and TIMax hold the Driver's per-node transfer-index bounds (§4.6).
func (n *Node) TIMin() int { return n.tiMin }
func (n *Node) TIMax() int { return n.tiMax }

// SetTIMin and SetTIMax are used by the Driver to record query results.
func (n *Node) SetTIMin(v int) { n.tiMin = v }
func (n *Node) SetTIMax(v int) { n.tiMax = v }

// childStart returns the index in Neigh()/Edges() of this node's first child:
// 0 for the root (no parent slot), 1 otherwise.
func (n *Node) childStart() int {
	if n.isRoot {
		return 0
	}
	return 1
}

// Children returns this node's children, skipping the parent slot if any.
func (n *Node) Children() []*Node {
	return n.neigh[n.childStart():]
}

// NodeIndex returns the position of other in n's neighbour list.
func (n *Node) NodeIndex(other *Node) (int, error) {
	for i, v := range n.neigh {
		if v == other {
			return i, nil
		}
	}
	return 0, &InvariantFailure{Reason: "node is not a neighbour"}
}

// EdgeIndex returns the position of e in n's edge list.
func (n *Node) EdgeIndex(e *Edge) (int, error) {
	for i, v := range n.br {
		if v == e {
			return i, nil
		}
	}
	return 0, &InvariantFailure{Reason: "edge is not incident to node"}
}

// addChild appends child/e to n's neighbour and edge lists.
func (n *Node) addChild(child *Node, e *Edge) {
	n.neigh = append(n.neigh, child)
	n.br = append(n.br, e)
}
