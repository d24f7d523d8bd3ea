package heavypath

import "github.com/thekswenson/booster/tree"

// TransferSet reconstructs a witness set achieving QueryMin() (useMax=false)
// or QueryMax() (useMax=true): the leaves of the added-so-far set that would
// need to move for the extremal alt-tree node to match the reference
// bipartition exactly (§4.5).
//
// Every AddLeaf call keeps each touched Path's diffPath/diffSubtree fully
// folded in (a node is only ever pushed to by an ancestor that was itself
// already up to date earlier in the same call), so dMinPath+diffPath /
// dMaxPath+diffPath are always current: no separate push-down pass is
// needed to walk the tree read-only.
func (h *HPT) TransferSet(useMax bool) ([]*tree.Node, error) {
	target := h.QueryMin()
	if useMax {
		target = h.QueryMax()
	}

	vStar, pathChain, err := h.descend(target, useMax)
	if err != nil {
		return nil, err
	}

	vStarPath := h.arena[vStar.PathID()]
	subtreeLeaves := collectSubtreeLeaves(vStar)
	if len(subtreeLeaves) != vStarPath.numHPTLeaves {
		return nil, &tree.InvariantFailure{Reason: "numHPTLeaves disagrees with vStar's actual leaf count"}
	}

	result := make(map[*tree.Node]bool, len(subtreeLeaves))
	for _, n := range subtreeLeaves {
		if !containsLeaf(vStarPath.exclude, n) {
			result[n] = true
		}
	}

	crossedBoundary := false
	for i := len(pathChain) - 1; i >= 0; i-- {
		id := pathChain[i]
		p := h.arena[id]
		var set []*tree.Node
		if crossedBoundary {
			set = p.includeSubtree
		} else {
			set = p.includePath
		}
		for _, n := range set {
			result[n] = true
		}
		if p.parent == noPath {
			crossedBoundary = true
		}
	}

	out := make([]*tree.Node, 0, len(result))
	for n := range result {
		out = append(out, n)
	}

	if len(out) != target {
		return out, &tree.InvariantFailure{Reason: "reconstructed transfer set size does not match queried transfer index"}
	}
	return out, nil
}

// descend walks from the root to the Path achieving target, returning the
// alt-tree node tied to that Path and the chain of Path ids visited
// (root-first), used by TransferSet to gather include sets on the way back
// up.
func (h *HPT) descend(target int, useMax bool) (*tree.Node, []int32, error) {
	var chain []int32
	id := h.rootID
	for {
		chain = append(chain, id)
		p := h.arena[id]
		switch p.k {
		case kindInternal:
			left, right := h.arena[p.left], h.arena[p.right]
			var lv, rv int
			if useMax {
				lv, rv = left.dMaxPath+left.diffPath, right.dMaxPath+right.diffPath
			} else {
				lv, rv = left.dMinPath+left.diffPath, right.dMinPath+right.diffPath
			}
			switch target {
			case rv:
				id = p.right
			case lv:
				id = p.left
			default:
				return nil, nil, &tree.InvariantFailure{Reason: "transfer-set descent: no matching PT child"}
			}

		case kindPendant:
			ownVal := p.dMinPath + p.diffPath
			if useMax {
				ownVal = p.dMaxPath + p.diffPath
			}
			if ownVal == target {
				return p.node, chain, nil
			}
			found := false
			for _, cID := range p.childHeavyPaths {
				c := h.arena[cID]
				cv := c.dMinPath + c.diffPath
				if useMax {
					cv = c.dMaxPath + c.diffPath
				}
				if cv == target {
					id = cID
					found = true
					break
				}
			}
			if !found {
				return nil, nil, &tree.InvariantFailure{Reason: "transfer-set descent: no matching child heavypath"}
			}

		case kindHPTLeaf:
			return p.node, chain, nil
		}
	}
}

func collectSubtreeLeaves(v *tree.Node) []*tree.Node {
	if v.Tip() {
		return []*tree.Node{v}
	}
	var leaves []*tree.Node
	for _, c := range v.Children() {
		leaves = append(leaves, collectSubtreeLeaves(c)...)
	}
	return leaves
}
