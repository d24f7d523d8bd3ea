package tree

// Sentinel values for edge fields that have not been set.
const (
	NilLength        = -1.0
	NilSupport       = -1.0
	NilID            = -1
	NilTopoDepth     = -1
	NilTransferIndex = -1
)

// Edge connects a parent (Left) to a child (Right). Right is always the
// "below" end: the subtree whose leaf set this edge's statistics describe.
type Edge struct {
	id   int
	left *Node
	right *Node

	length  float64
	support float64

	topoDepth     int
	transferIndex int
}

// Id returns the edge's unique identifier within its tree.
func (e *Edge) Id() int { return e.id }

// SetId sets the edge's identifier.
func (e *Edge) SetId(id int) { e.id = id }

// Left returns the parent-side node.
func (e *Edge) Left() *Node { return e.left }

// Right returns the child-side node.
func (e *Edge) Right() *Node { return e.right }

// Length returns the branch length, or NilLength if unset.
func (e *Edge) Length() float64 { return e.length }

// SetLength sets the branch length.
func (e *Edge) SetLength(l float64) { e.length = l }

// Support returns the branch support value, or NilSupport if unset.
func (e *Edge) Support() float64 { return e.support }

// SetSupport sets the branch support value.
func (e *Edge) SetSupport(s float64) { e.support = s }

// TopoDepth returns min(subtreesize(right), n-subtreesize(right)).
func (e *Edge) TopoDepth() int { return e.topoDepth }

// SetTopoDepth sets the topological depth.
func (e *Edge) SetTopoDepth(d int) { e.topoDepth = d }

// TransferIndex returns the Driver's computed transfer index for this edge.
func (e *Edge) TransferIndex() int { return e.transferIndex }

// SetTransferIndex records the Driver's computed transfer index.
func (e *Edge) SetTransferIndex(ti int) { e.transferIndex = ti }
