package transferindex

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thekswenson/booster/internal/naive"
	"github.com/thekswenson/booster/tree"
)

func findLeaf(tr *tree.Tree, name string) *tree.Node {
	for _, n := range tr.Tips() {
		if n.Name() == name {
			return n
		}
	}
	return nil
}

// quartet builds a tree over leaves a,b,c,d in the cherry shape described by
// pairs, e.g. ("ab","cd") for ((a,b),(c,d)).
func quartet(t *testing.T, left, right [2]string) *tree.Tree {
	t.Helper()
	tr := tree.NewTree()
	mk := func(name string) *tree.Node {
		n := tr.NewNode()
		n.SetName(name)
		return n
	}
	l1, l2 := mk(left[0]), mk(left[1])
	r1, r2 := mk(right[0]), mk(right[1])
	lc, rc, root := tr.NewNode(), tr.NewNode(), tr.NewNode()
	tr.ConnectNodes(lc, l1)
	tr.ConnectNodes(lc, l2)
	tr.ConnectNodes(rc, r1)
	tr.ConnectNodes(rc, r2)
	tr.ConnectNodes(root, lc)
	tr.ConnectNodes(root, rc)
	tr.SetRoot(root)
	tr.UpdateTipIndex()
	return tr
}

// TestS1IdenticalQuartets checks scenario S1: ref == alt == ((a,b),(c,d))
// gives transfer index 0 on both internal edges, with witness sets {a,b}
// and {c,d}.
func TestS1IdenticalQuartets(t *testing.T) {
	ref := quartet(t, [2]string{"a", "b"}, [2]string{"c", "d"})
	alt := quartet(t, [2]string{"a", "b"}, [2]string{"c", "d"})

	tis, sets, err := ComputeTransferIndices(ref, alt, true)
	require.NoError(t, err)
	require.Equal(t, []int{0, 0}, tis)

	want := [][]string{{"a", "b"}, {"c", "d"}}
	for i, s := range sets {
		got := namesOf(s)
		require.ElementsMatch(t, want[i], got)
	}
}

// TestS2CrossedQuartets checks scenario S2: ref = ((a,b),(c,d)),
// alt = ((a,c),(b,d)) gives transfer index 1 on both internal edges, each
// with a size-1 witness set.
func TestS2CrossedQuartets(t *testing.T) {
	ref := quartet(t, [2]string{"a", "b"}, [2]string{"c", "d"})
	alt := quartet(t, [2]string{"a", "c"}, [2]string{"b", "d"})

	tis, sets, err := ComputeTransferIndices(ref, alt, true)
	require.NoError(t, err)
	require.Equal(t, []int{1, 1}, tis)
	for _, s := range sets {
		require.Len(t, s, 1)
	}

	n := ref.NumLeaves()
	for i, e := range ref.InternalEdges() {
		node := e.Right()
		require.Equal(t, tis[i], minInt(node.TIMin(), n-node.TIMax()))
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// TestS3CaterpillarVsCherry checks scenario S3: ref = (((a,b),c),d),
// alt = (a,(b,(c,d))). The edge above (a,b) differs from every alt subtree
// by at least one leaf (ti_min = 1), but its complement side wins: alt's
// subtree {c,d} is exactly the complement of {a,b} (symmetric difference
// ti_max = 4, n = 4), so min(ti_min, n-ti_max) = min(1, 0) = 0.
func TestS3CaterpillarVsCherry(t *testing.T) {
	ref := tree.NewTree()
	a, b, c, d := ref.NewNode(), ref.NewNode(), ref.NewNode(), ref.NewNode()
	a.SetName("a")
	b.SetName("b")
	c.SetName("c")
	d.SetName("d")
	ab, abc, root := ref.NewNode(), ref.NewNode(), ref.NewNode()
	ref.ConnectNodes(ab, a)
	ref.ConnectNodes(ab, b)
	ref.ConnectNodes(abc, ab)
	ref.ConnectNodes(abc, c)
	ref.ConnectNodes(root, abc)
	ref.ConnectNodes(root, d)
	ref.SetRoot(root)
	ref.UpdateTipIndex()

	alt := tree.NewTree()
	aa, ba, ca, da := alt.NewNode(), alt.NewNode(), alt.NewNode(), alt.NewNode()
	aa.SetName("a")
	ba.SetName("b")
	ca.SetName("c")
	da.SetName("d")
	cd, bcd, rootAlt := alt.NewNode(), alt.NewNode(), alt.NewNode()
	alt.ConnectNodes(cd, ca)
	alt.ConnectNodes(cd, da)
	alt.ConnectNodes(bcd, ba)
	alt.ConnectNodes(bcd, cd)
	alt.ConnectNodes(rootAlt, aa)
	alt.ConnectNodes(rootAlt, bcd)
	alt.SetRoot(rootAlt)
	alt.UpdateTipIndex()

	tis, _, err := ComputeTransferIndices(ref, alt, false)
	require.NoError(t, err)

	abEdge := findEdgeAbove(ref, "a", "b")
	require.NotNil(t, abEdge)
	idx := edgeIndex(ref, abEdge)
	require.Equal(t, 0, tis[idx])
}

// TestS4CaterpillarAgreesWithNaive checks scenario S4: the HPT backend
// must agree with a brute-force oracle when alt is a caterpillar.
func TestS4CaterpillarAgreesWithNaive(t *testing.T) {
	ref := quartet(t, [2]string{"a", "b"}, [2]string{"c", "d"})
	alt := tree.Caterpillar(4, []string{"a", "b", "c", "d"})

	hptTis, _, err := ComputeTransferIndices(ref, alt, false)
	require.NoError(t, err)

	naiveRef := quartet(t, [2]string{"a", "b"}, [2]string{"c", "d"})
	naiveAlt := tree.Caterpillar(4, []string{"a", "b", "c", "d"})
	naiveTis, err := naive.TransferIndices(naiveRef, naiveAlt)
	require.NoError(t, err)

	require.Equal(t, naiveTis, hptTis)
}

// TestS5IdenticalCompleteBinaryTrees checks scenario S5: n=8 identical
// complete binary trees give transfer index 0 everywhere, with every
// witness set equal to the corresponding edge's own leaf set.
func TestS5IdenticalCompleteBinaryTrees(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	ref := completeBinary(t, names)
	alt := completeBinary(t, names)

	tis, sets, err := ComputeTransferIndices(ref, alt, true)
	require.NoError(t, err)
	for _, ti := range tis {
		require.Equal(t, 0, ti)
	}

	for i, e := range ref.InternalEdges() {
		want := namesOf(collectLeaves(e.Right()))
		require.ElementsMatch(t, want, namesOf(sets[i]))
	}
}

// TestS6RandomStressAgreesWithNaiveAndBalanced is a scaled-down version of
// scenario S6: random binary ref trees against a caterpillar alt, checked
// edge-for-edge against both the naive oracle and the balanced-case
// backend.
func TestS6RandomStressAgreesWithNaiveAndBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const n = 24

	for trial := 0; trial < 5; trial++ {
		ref := tree.RandomBinary(n, rng)
		names := namesOf(ref.SortedTips())

		alt := tree.Caterpillar(n, append([]string(nil), names...))
		hptTis, _, err := ComputeTransferIndices(ref, alt, false)
		require.NoError(t, err)

		balancedRef := cloneQuartetNames(t, ref)
		balancedAlt := tree.Caterpillar(n, append([]string(nil), names...))
		balancedTis, _, err := ComputeTransferIndicesBalanced(balancedRef, balancedAlt, false)
		require.NoError(t, err)

		naiveRef := cloneQuartetNames(t, ref)
		naiveAlt := tree.Caterpillar(n, append([]string(nil), names...))
		naiveTis, err := naive.TransferIndices(naiveRef, naiveAlt)
		require.NoError(t, err)

		require.Equal(t, naiveTis, hptTis)
		require.Equal(t, naiveTis, balancedTis)
	}
}

func completeBinary(t *testing.T, names []string) *tree.Tree {
	t.Helper()
	require.Equal(t, 0, len(names)&(len(names)-1), "names must be a power of two")
	tr := tree.NewTree()
	nodes := make([]*tree.Node, len(names))
	for i, name := range names {
		n := tr.NewNode()
		n.SetName(name)
		nodes[i] = n
	}
	for len(nodes) > 1 {
		var next []*tree.Node
		for i := 0; i < len(nodes); i += 2 {
			parent := tr.NewNode()
			tr.ConnectNodes(parent, nodes[i])
			tr.ConnectNodes(parent, nodes[i+1])
			next = append(next, parent)
		}
		nodes = next
	}
	tr.SetRoot(nodes[0])
	tr.UpdateTipIndex()
	return tr
}

// cloneQuartetNames rebuilds an independent copy of tr (same topology and
// leaf names, fresh nodes/edges), since each backend's run consumes and
// mutates its own ref/alt pair via Prepare.
func cloneQuartetNames(t *testing.T, tr *tree.Tree) *tree.Tree {
	t.Helper()
	out := tree.NewTree()
	var copyNode func(n *tree.Node) *tree.Node
	copyNode = func(n *tree.Node) *tree.Node {
		c := out.NewNode()
		if n.Tip() {
			c.SetName(n.Name())
			return c
		}
		for _, child := range n.Children() {
			out.ConnectNodes(c, copyNode(child))
		}
		return c
	}
	root := copyNode(tr.Root())
	out.SetRoot(root)
	out.UpdateTipIndex()
	return out
}

func namesOf(nodes []*tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name()
	}
	return out
}

func collectLeaves(v *tree.Node) []*tree.Node {
	if v.Tip() {
		return []*tree.Node{v}
	}
	var out []*tree.Node
	for _, c := range v.Children() {
		out = append(out, collectLeaves(c)...)
	}
	return out
}

func findEdgeAbove(tr *tree.Tree, leaf1, leaf2 string) *tree.Edge {
	for _, e := range tr.InternalEdges() {
		leaves := namesOf(collectLeaves(e.Right()))
		if len(leaves) == 2 && ((leaves[0] == leaf1 && leaves[1] == leaf2) || (leaves[0] == leaf2 && leaves[1] == leaf1)) {
			return e
		}
	}
	return nil
}

func edgeIndex(tr *tree.Tree, target *tree.Edge) int {
	for i, e := range tr.InternalEdges() {
		if e == target {
			return i
		}
	}
	return -1
}
