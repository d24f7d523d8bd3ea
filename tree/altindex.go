package tree

// This file implements the AltIndex balanced case (§4.2): when the alt-tree
// is already shallow (h = O(log n)), its own Node fields (dLazy, dMin, dMax,
// diff, include, exclude) serve directly as the AltIndex, with no
// heavy-path overlay. See package heavypath for the unbalanced case.

// AddLeaf adds leaf (a leaf of the alt-tree) to the ancestor-set of every
// node on its root-to-leaf path (§4.2). wantSets additionally maintains the
// include/exclude bookkeeping needed by TransferSet.
func AddLeaf(leaf *Node, wantSets bool) error {
	if !leaf.Tip() {
		return &InvariantFailure{Reason: "AddLeaf called on a non-leaf node"}
	}
	path := rootToLeafPath(leaf)

	for i := 0; i < len(path)-1; i++ {
		v := path[i]
		onPath := path[i+1]
		v.dLazy += v.diff - 1
		onPath.diff += v.diff
		for _, c := range v.Children() {
			if c != onPath {
				c.diff += v.diff + 1
				if wantSets {
					c.include = append(c.include, leaf)
				}
			}
		}
		if wantSets {
			v.exclude = append(v.exclude, leaf)
		}
		v.diff = 0
	}
	leaf.dLazy += leaf.diff - 1
	leaf.diff = 0
	leaf.dMin, leaf.dMax = leaf.dLazy, leaf.dLazy

	for i := len(path) - 2; i >= 0; i-- {
		v := path[i]
		dMin, dMax := v.dLazy, v.dLazy
		for _, c := range v.Children() {
			if c.dMin+c.diff < dMin {
				dMin = c.dMin + c.diff
			}
			if c.dMax+c.diff > dMax {
				dMax = c.dMax + c.diff
			}
		}
		v.dMin, v.dMax = dMin, dMax
	}
	return nil
}

// ResetLeaf undoes AddLeaf, restoring every node on leaf's root-to-leaf path
// to its fresh state (§4.2).
func ResetLeaf(leaf *Node, wantSets bool) error {
	if !leaf.Tip() {
		return &InvariantFailure{Reason: "ResetLeaf called on a non-leaf node"}
	}
	path := rootToLeafPath(leaf)

	leaf.dLazy, leaf.dMax, leaf.dMin = 1, 1, 1
	leaf.diff = 0
	if wantSets {
		leaf.exclude = nil
	}

	for i := len(path) - 2; i >= 0; i-- {
		v := path[i]
		onPath := path[i+1]
		v.dLazy, v.dMax = v.subtreeSize, v.subtreeSize
		v.dMin = 1
		v.diff = 0
		if wantSets {
			v.exclude = nil
		}
		for _, c := range v.Children() {
			if c != onPath {
				c.diff = 0
				if wantSets {
					c.include = nil
				}
			}
		}
	}
	return nil
}

// QueryMin returns TI_min(u) = d_min at the alt-tree root.
func QueryMin(altRoot *Node) int { return altRoot.dMin }

// QueryMax returns TI_max(u) = d_max at the alt-tree root.
func QueryMax(altRoot *Node) int { return altRoot.dMax }

// TransferSet reconstructs a witness set for the chosen side's value,
// starting the descent from altRoot. useMax selects the max-side
// reconstruction (the complement story); otherwise the min-side.
func TransferSet(altRoot *Node, useMax bool) ([]*Node, error) {
	target := altRoot.dMin
	if useMax {
		target = altRoot.dMax
	}

	v := altRoot
	for {
		val := v.dLazy
		if val == target {
			break
		}
		found := false
		for _, c := range v.Children() {
			cv := c.dMin + c.diff
			if useMax {
				cv = c.dMax + c.diff
			}
			if cv == target {
				v = c
				found = true
				break
			}
		}
		if !found {
			return nil, &InvariantFailure{Reason: "transfer-set descent found no matching child"}
		}
	}

	set := make(map[*Node]bool)
	for p := v; p != nil; p = parentOf(p) {
		if p == v {
			continue
		}
		for _, n := range p.include {
			set[n] = true
		}
	}

	var leaves []*Node
	collectLeaves(v, &leaves)
	excluded := make(map[*Node]bool, len(v.exclude))
	for _, n := range v.exclude {
		excluded[n] = true
	}
	for _, l := range leaves {
		if !excluded[l] {
			set[l] = true
		}
	}

	out := make([]*Node, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	if len(out) != target {
		return nil, &InvariantFailure{Reason: "reconstructed transfer-set size disagrees with queried value"}
	}
	return out, nil
}

func rootToLeafPath(leaf *Node) []*Node {
	var rev []*Node
	n := leaf
	for {
		rev = append(rev, n)
		if n.isRoot {
			break
		}
		n = n.neigh[0]
	}
	path := make([]*Node, len(rev))
	for i, n := range rev {
		path[len(rev)-1-i] = n
	}
	return path
}

func parentOf(n *Node) *Node {
	if n.isRoot {
		return nil
	}
	return n.neigh[0]
}

func collectLeaves(n *Node, out *[]*Node) {
	if n.Tip() {
		*out = append(*out, n)
		return
	}
	for _, c := range n.Children() {
		collectLeaves(c, out)
	}
}
