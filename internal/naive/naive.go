// Package naive computes rooted transfer indices by brute force: for each
// reference-tree edge, it scans every alternative-tree node's own
// bipartition directly, with no incremental add/reset bookkeeping at all.
// It exists purely as a ground-truth oracle for testing the fast AltIndex
// (tree package) and HeavyPathTree (heavypath package) implementations
// against (§8 Testable Property 1); it is not a production entry point.
//
// Grounded on support/booster_classical_reference.go's bitset-based I/C
// matrix, stripped down from its post-order dynamic program to a direct
// O(n^2) bipartition scan using the same github.com/fredericlemoine/bitset
// representation.
package naive

import (
	"github.com/fredericlemoine/bitset"

	"github.com/thekswenson/booster/tree"
)

// TransferIndices returns, for every internal edge of refTree in
// refTree.InternalEdges() order, the minimum symmetric difference between
// that edge's leaf bipartition and every alt-tree node's bipartition,
// checked in both orientations.
func TransferIndices(refTree, altTree *tree.Tree) ([]int, error) {
	if err := refTree.Prepare(); err != nil {
		return nil, err
	}
	if err := altTree.Prepare(); err != nil {
		return nil, err
	}
	if err := tree.SetLeafBijection(refTree, altTree); err != nil {
		return nil, err
	}

	names := refTree.SortedTips()
	n := uint(len(names))
	index := make(map[string]uint, n)
	for i, leaf := range names {
		index[leaf.Name()] = uint(i)
	}

	altSets := make(map[*tree.Node]*bitset.BitSet)
	buildBitsets(altTree.Root(), index, altSets)

	refEdges := refTree.InternalEdges()
	tis := make([]int, len(refEdges))
	for i, e := range refEdges {
		refSet := bitset.New(n)
		collectBits(e.Right(), index, refSet)

		best := int(n)
		for _, altSet := range altSets {
			d := symDiff(refSet, altSet, n)
			if d < best {
				best = d
			}
			if comp := int(n) - d; comp < best {
				best = comp
			}
		}
		tis[i] = best
	}
	return tis, nil
}

func buildBitsets(v *tree.Node, index map[string]uint, out map[*tree.Node]*bitset.BitSet) *bitset.BitSet {
	set := bitset.New(uint(len(index)))
	if v.Tip() {
		set.Set(index[v.Name()])
	} else {
		for _, c := range v.Children() {
			child := buildBitsets(c, index, out)
			for i := uint(0); i < uint(len(index)); i++ {
				if child.Test(i) {
					set.Set(i)
				}
			}
		}
	}
	out[v] = set
	return set
}

func collectBits(v *tree.Node, index map[string]uint, set *bitset.BitSet) {
	if v.Tip() {
		set.Set(index[v.Name()])
		return
	}
	for _, c := range v.Children() {
		collectBits(c, index, set)
	}
}

// symDiff(S, comp(T)) == n - symDiff(S, T), so the caller derives the
// complement-orientation distance from d without a second bitset scan.
func symDiff(a, b *bitset.BitSet, n uint) int {
	d := 0
	for i := uint(0); i < n; i++ {
		if a.Test(i) != b.Test(i) {
			d++
		}
	}
	return d
}
