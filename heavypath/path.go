// Package heavypath implements the HeavyPathTree overlay (§3, §4.3-§4.5):
// a segment-tree-like decomposition of an unbalanced alt-tree into heavy
// paths, each represented by a balanced binary "Path Tree" (PT), glued
// together into one "HeavyPath Tree" (HPT). It supplies the same
// add_leaf/reset_leaf/query_min/query_max/transfer_set operations as the
// balanced-case tree.AddLeaf family, in O(log n) amortised per leaf instead
// of O(h).
//
// Grounded on _examples/original_source/src/heavy_paths.{c,h}. Per §9's
// design note, the C original's intrusive Path<->Path and Path<->Node
// pointer cycles are replaced here with a flat arena of Path values indexed
// by stable int32 ids; tree.Node stores an arena index (PathID), not an
// owning pointer.
package heavypath

import "github.com/thekswenson/booster/tree"

// kind tags the three Path variants named in spec.md §3.
type kind uint8

const (
	// kindInternal is an internal PT node: a summary over a contiguous
	// sub-range of a heavy path, with left/right PT children.
	kindInternal kind = iota
	// kindPendant is a PT leaf tied to an internal alt-tree node that has
	// non-heavy children: it owns an array of child-heavypath PT roots.
	kindPendant
	// kindHPTLeaf is a PT leaf tied to a leaf of the alt-tree: a leaf of
	// the whole HPT, with no child_heavypaths.
	kindHPTLeaf
)

// noPath marks an absent arena index (root's parent, leaf's children, ...).
const noPath int32 = -1

// path is one node of a Path Tree / HeavyPath Tree, stored by value inside
// an HPT's arena. See spec.md §3 for the field-by-field contract.
type path struct {
	k kind

	left, right, parent, sibling int32
	parentHeavyPath               int32
	childHeavyPaths                []int32

	node *tree.Node // set for kindPendant and kindHPTLeaf

	totalDepth   int
	numHPTLeaves int

	diffPath, diffSubtree       int
	dMinPath, dMaxPath          int
	dMinSubtree, dMaxSubtree    int

	includePath, includeSubtree []*tree.Node
	exclude, excludePath        []*tree.Node
}

// HPT is the arena owning every Path of one heavy-path decomposition of one
// alt-tree. Build with BuildHPT; not re-entrant (§5): use one HPT per
// computation.
type HPT struct {
	arena      []path
	rootID     int32
	altRoot    *tree.Node
	numLeaves  int
	wantSets   bool
	pathToRoot []int32 // scratch buffer, reused by AddLeaf
}

func newPath(k kind) path {
	return path{
		k:               k,
		left:            noPath,
		right:           noPath,
		parent:          noPath,
		sibling:         noPath,
		parentHeavyPath: noPath,
		dMinPath:        1,
		dMaxPath:        0,
		dMinSubtree:     1,
		dMaxSubtree:     1,
	}
}

func (h *HPT) alloc(k kind) int32 {
	h.arena = append(h.arena, newPath(k))
	return int32(len(h.arena) - 1)
}

// at returns a pointer into the arena backing array. The pointer is only
// valid until the next call to alloc, which can grow and reallocate arena;
// never hold an at() result across a subsequent alloc call.
func (h *HPT) at(id int32) *path { return &h.arena[id] }

// Root returns the arena index of the HPT's root Path.
func (h *HPT) Root() int32 { return h.rootID }

// NumLeaves returns the number of alt-tree leaves covered by this HPT.
func (h *HPT) NumLeaves() int { return h.numLeaves }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min3(a, b, c int) int { return minInt(a, minInt(b, c)) }
func max3(a, b, c int) int { return maxInt(a, maxInt(b, c)) }

func appendLeaf(set *[]*tree.Node, n *tree.Node) { *set = append(*set, n) }

func clearLeafSet(set *[]*tree.Node) { *set = nil }

func containsLeaf(set []*tree.Node, n *tree.Node) bool {
	for _, x := range set {
		if x == n {
			return true
		}
	}
	return false
}
