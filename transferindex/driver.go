// Package transferindex implements the Driver (§4.6, §6): the public
// entry point that computes a rooted transfer index for every internal
// edge of a reference tree against one alternative (e.g. bootstrap) tree,
// built on top of the heavypath package's HeavyPathTree.
//
// Grounded on _examples/original_source/src/rapid_transfer.{c,h}:
// compute_transfer_indices_new's light/heavy-child rolling traversal, here
// expressed directly in terms of tree.Node's precomputed heavyChild/
// lightLeaves fields (set by tree.Prepare) rather than the original's
// separate path-array bookkeeping.
package transferindex

import (
	"fmt"

	"github.com/thekswenson/booster/heavypath"
	"github.com/thekswenson/booster/tree"
)

// altIndex abstracts over the two AltIndex backends (tree's balanced-case
// functions and heavypath.HPT) so the driver's traversal is written once.
type altIndex interface {
	AddLeaf(leaf *tree.Node) error
	ResetLeaf(leaf *tree.Node) error
	QueryMin() int
	QueryMax() int
	NumLeaves() int
	TransferSet(useMax bool) ([]*tree.Node, error)
}

type hptIndex struct{ hpt *heavypath.HPT }

func (h *hptIndex) AddLeaf(leaf *tree.Node) error   { return h.hpt.AddLeaf(leaf) }
func (h *hptIndex) ResetLeaf(leaf *tree.Node) error { return h.hpt.ResetLeaf(leaf) }
func (h *hptIndex) QueryMin() int                   { return h.hpt.QueryMin() }
func (h *hptIndex) QueryMax() int                   { return h.hpt.QueryMax() }
func (h *hptIndex) NumLeaves() int                  { return h.hpt.NumLeaves() }
func (h *hptIndex) TransferSet(useMax bool) ([]*tree.Node, error) {
	return h.hpt.TransferSet(useMax)
}

type balancedIndex struct {
	altRoot  *tree.Node
	wantSets bool
}

func (b *balancedIndex) AddLeaf(leaf *tree.Node) error   { return tree.AddLeaf(leaf, b.wantSets) }
func (b *balancedIndex) ResetLeaf(leaf *tree.Node) error { return tree.ResetLeaf(leaf, b.wantSets) }
func (b *balancedIndex) QueryMin() int                   { return tree.QueryMin(b.altRoot) }
func (b *balancedIndex) QueryMax() int                   { return tree.QueryMax(b.altRoot) }
func (b *balancedIndex) NumLeaves() int                  { return b.altRoot.SubtreeSize() }
func (b *balancedIndex) TransferSet(useMax bool) ([]*tree.Node, error) {
	return tree.TransferSet(b.altRoot, useMax)
}

// ComputeTransferIndices prepares both trees, builds the leaf bijection,
// and computes a transfer index (and, if wantSets, a witness set) for every
// internal edge of refTree, in the order refTree.InternalEdges() returns
// them. As a side effect it calls e.SetTransferIndex on every such edge.
func ComputeTransferIndices(refTree, altTree *tree.Tree, wantSets bool) ([]int, [][]*tree.Node, error) {
	return run(refTree, altTree, wantSets, func(altRoot *tree.Node) altIndex {
		return &hptIndex{hpt: heavypath.BuildHPT(altRoot, altRoot.SubtreeSize(), wantSets)}
	})
}

// ComputeTransferIndicesBalanced runs the same traversal against the
// simpler balanced-case AltIndex (tree.AddLeaf/tree.ResetLeaf) instead of a
// HeavyPathTree. It exists for cross-checking the two backends agree (the
// balanced case's O(h) leaf walk makes it unsuitable for large unbalanced
// trees, which is exactly why heavypath exists).
func ComputeTransferIndicesBalanced(refTree, altTree *tree.Tree, wantSets bool) ([]int, [][]*tree.Node, error) {
	return run(refTree, altTree, wantSets, func(altRoot *tree.Node) altIndex {
		return &balancedIndex{altRoot: altRoot, wantSets: wantSets}
	})
}

func run(refTree, altTree *tree.Tree, wantSets bool, newIndex func(*tree.Node) altIndex) ([]int, [][]*tree.Node, error) {
	if err := refTree.Prepare(); err != nil {
		return nil, nil, err
	}
	if err := altTree.Prepare(); err != nil {
		return nil, nil, err
	}
	if err := tree.SetLeafBijection(refTree, altTree); err != nil {
		return nil, nil, err
	}

	idx := newIndex(altTree.Root())

	results := make(map[*tree.Edge]int)
	var sets map[*tree.Edge][]*tree.Node
	if wantSets {
		sets = make(map[*tree.Edge][]*tree.Node)
	}

	if err := addHeavyPath(refTree.Root(), idx, results, sets, wantSets); err != nil {
		return nil, nil, err
	}
	if err := resetHeavyPath(refTree.Root(), idx); err != nil {
		return nil, nil, err
	}

	edges := refTree.InternalEdges()
	tis := make([]int, len(edges))
	var witnessSets [][]*tree.Node
	if wantSets {
		witnessSets = make([][]*tree.Node, len(edges))
	}
	for i, e := range edges {
		ti, ok := results[e]
		if !ok {
			return nil, nil, &tree.InvariantFailure{
				Reason: fmt.Sprintf("no transfer index recorded for edge %d", e.Id()),
			}
		}
		e.SetTransferIndex(ti)
		tis[i] = ti
		if wantSets {
			witnessSets[i] = sets[e]
		}
	}
	return tis, witnessSets, nil
}

// addHeavyPath folds every leaf under v into idx: light (non-heavy)
// children are each fully processed and then reset, the heavy child is
// processed and left added, and v's own light leaves are then added on top
// so that, the instant this call returns the recursion from v's parent,
// exactly L(v) is marked added and v's own edge TI can be recorded.
func addHeavyPath(v *tree.Node, idx altIndex, results map[*tree.Edge]int, sets map[*tree.Edge][]*tree.Node, wantSets bool) error {
	if v.Tip() {
		return idx.AddLeaf(v.Other())
	}

	heavy := v.HeavyChild()
	for _, c := range v.Children() {
		if c == heavy {
			continue
		}
		if err := addHeavyPath(c, idx, results, sets, wantSets); err != nil {
			return err
		}
		if err := resetHeavyPath(c, idx); err != nil {
			return err
		}
	}

	if err := addHeavyPath(heavy, idx, results, sets, wantSets); err != nil {
		return err
	}

	for _, leaf := range v.LightLeaves() {
		if err := idx.AddLeaf(leaf.Other()); err != nil {
			return err
		}
	}

	if v.Depth() > 0 {
		if err := recordTI(v, idx, results, sets, wantSets); err != nil {
			return err
		}
	}
	return nil
}

// resetHeavyPath undoes everything addHeavyPath folded into idx for v's
// subtree. It only needs to walk v's own light-leaf list and heavy chain:
// v's light children's subtrees were already reset by addHeavyPath before
// it returned.
func resetHeavyPath(v *tree.Node, idx altIndex) error {
	if v.Tip() {
		return idx.ResetLeaf(v.Other())
	}
	for _, leaf := range v.LightLeaves() {
		if err := idx.ResetLeaf(leaf.Other()); err != nil {
			return err
		}
	}
	return resetHeavyPath(v.HeavyChild(), idx)
}

// recordTI computes v's parent edge's transfer index, per §4.6:
// u.br[0].transfer_index = min(u.ti_min, n - u.ti_max). ti_min and ti_max
// are sym-diff extrema computed under the same (non-complemented) side, so
// combining them requires reading ti_max through its complement, n-ti_max,
// rather than comparing the two raw values directly.
func recordTI(v *tree.Node, idx altIndex, results map[*tree.Edge]int, sets map[*tree.Edge][]*tree.Node, wantSets bool) error {
	e := v.Edges()[0]
	tiMin, tiMax := idx.QueryMin(), idx.QueryMax()
	v.SetTIMin(tiMin)
	v.SetTIMax(tiMax)
	n := idx.NumLeaves()
	complement := n - tiMax
	ti := tiMin
	useMax := false
	if complement < tiMin {
		ti = complement
		useMax = true
	}
	results[e] = ti
	if wantSets {
		set, err := idx.TransferSet(useMax)
		if err != nil {
			return err
		}
		sets[e] = set
	}
	return nil
}
