package heavypath

import "github.com/thekswenson/booster/tree"

// buildPathToRoot returns, in leaf-to-root order, the arena ids of every
// Path on the climb from leafID to the HPT root: following .parent while
// inside one PT, then jumping via .parentHeavyPath at a PT root into the
// enclosing pendant. Reuses h.pathToRoot as scratch.
func (h *HPT) buildPathToRoot(leafID int32) []int32 {
	buf := h.pathToRoot[:0]
	cur := leafID
	for {
		buf = append(buf, cur)
		if cur == h.rootID {
			break
		}
		p := h.arena[cur]
		if p.parent != noPath {
			cur = p.parent
		} else {
			cur = p.parentHeavyPath
		}
	}
	h.pathToRoot = buf
	return buf
}

// AddLeaf folds leaf into every d_min/d_max/transfer-set accumulator along
// its HPT path (§4.4), analogous to tree.AddLeaf's single root-to-leaf walk
// but amortised to O(log n) via the path/subtree lazy split.
func (h *HPT) AddLeaf(leaf *tree.Node) error {
	if !leaf.Tip() {
		return &tree.InvariantFailure{Reason: "heavypath.AddLeaf requires a tip"}
	}
	pathID := leaf.PathID()
	if pathID == tree.NoPathID {
		return &tree.InvariantFailure{Reason: "leaf has no Path assigned"}
	}

	order := h.buildPathToRoot(pathID)
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	k := len(order) - 1

	for i := 0; i < k; i++ {
		p := &h.arena[order[i]]
		childID := order[i+1]

		switch p.k {
		case kindPendant:
			for _, cID := range p.childHeavyPaths {
				c := &h.arena[cID]
				c.diffPath += p.diffSubtree
				c.diffSubtree += p.diffSubtree
				if cID != childID {
					c.diffPath++
					c.diffSubtree++
					if h.wantSets {
						appendLeaf(&c.includeSubtree, leaf)
						appendLeaf(&c.includePath, leaf)
					}
				}
			}
			if h.wantSets {
				appendLeaf(&p.exclude, leaf)
			}
			p.dMinPath += p.diffPath - 1
			p.dMaxPath = p.dMinPath
			p.diffPath, p.diffSubtree = 0, 0

		case kindInternal:
			onPathIsRight := childID == p.right
			child := &h.arena[childID]
			child.diffPath += p.diffPath
			child.diffSubtree += p.diffSubtree

			var sibID int32
			if onPathIsRight {
				sibID = p.left
			} else {
				sibID = p.right
			}
			sib := &h.arena[sibID]
			if onPathIsRight {
				sib.diffPath += p.diffPath - 1
				sib.diffSubtree += p.diffSubtree + 1
				if h.wantSets {
					appendLeaf(&sib.includeSubtree, leaf)
					appendLeaf(&sib.excludePath, leaf)
				}
			} else {
				sib.diffPath += p.diffPath + 1
				sib.diffSubtree += p.diffSubtree + 1
				if h.wantSets {
					appendLeaf(&sib.includePath, leaf)
					appendLeaf(&sib.includeSubtree, leaf)
				}
			}
			p.diffPath, p.diffSubtree = 0, 0

		case kindHPTLeaf:
			// An HPT leaf has no children to push into; only reachable
			// here if it is an internal waypoint of its own trivial PT,
			// which never happens (it would be order[k]).
		}
	}

	leafP := &h.arena[order[k]]
	leafP.dMinPath += leafP.diffPath - 1
	leafP.dMaxPath = leafP.dMinPath
	if h.wantSets {
		appendLeaf(&leafP.exclude, leaf)
	}
	leafP.diffPath, leafP.diffSubtree = 0, 0

	for i := k - 1; i >= 0; i-- {
		p := &h.arena[order[i]]
		switch p.k {
		case kindPendant:
			first := true
			for _, cID := range p.childHeavyPaths {
				c := h.arena[cID]
				pathMin, pathMax := c.dMinPath+c.diffPath, c.dMaxPath+c.diffPath
				subMin, subMax := pathMin, pathMax
				if c.k != kindHPTLeaf {
					subMin = minInt(pathMin, c.dMinSubtree+c.diffSubtree)
					subMax = maxInt(pathMax, c.dMaxSubtree+c.diffSubtree)
				}
				if first {
					p.dMinSubtree, p.dMaxSubtree = subMin, subMax
					first = false
				} else {
					p.dMinSubtree = minInt(p.dMinSubtree, subMin)
					p.dMaxSubtree = maxInt(p.dMaxSubtree, subMax)
				}
			}

		case kindInternal:
			left, right := h.arena[p.left], h.arena[p.right]
			leftPathMin, leftPathMax := left.dMinPath+left.diffPath, left.dMaxPath+left.diffPath
			rightPathMin, rightPathMax := right.dMinPath+right.diffPath, right.dMaxPath+right.diffPath
			p.dMinPath = minInt(leftPathMin, rightPathMin)
			p.dMaxPath = maxInt(leftPathMax, rightPathMax)

			leftSubMin, leftSubMax := leftPathMin, leftPathMax
			if left.k != kindHPTLeaf {
				leftSubMin = left.dMinSubtree + left.diffSubtree
				leftSubMax = left.dMaxSubtree + left.diffSubtree
			}
			rightSubMin, rightSubMax := rightPathMin, rightPathMax
			if right.k != kindHPTLeaf {
				rightSubMin = right.dMinSubtree + right.diffSubtree
				rightSubMax = right.dMaxSubtree + right.diffSubtree
			}
			p.dMinSubtree = minInt(leftSubMin, rightSubMin)
			p.dMaxSubtree = maxInt(leftSubMax, rightSubMax)

		case kindHPTLeaf:
		}
	}

	return nil
}

// ResetLeaf undoes AddLeaf for leaf, restoring every touched Path to its
// pristine (no-leaves-added) state (§4.4). Must be called on leaves in an
// order consistent with how they were added, matching the Driver's rolling
// add/reset discipline (§4.6); it is not safe to reset a leaf while sibling
// leaves added after it remain active.
func (h *HPT) ResetLeaf(leaf *tree.Node) error {
	if !leaf.Tip() {
		return &tree.InvariantFailure{Reason: "heavypath.ResetLeaf requires a tip"}
	}
	pathID := leaf.PathID()
	if pathID == tree.NoPathID {
		return &tree.InvariantFailure{Reason: "leaf has no Path assigned"}
	}

	leafP := &h.arena[pathID]
	leafP.diffPath, leafP.diffSubtree = 0, 0
	leafP.dMinPath = leaf.SubtreeSize()
	leafP.dMaxPath = leaf.SubtreeSize()
	if h.wantSets {
		clearLeafSet(&leafP.exclude)
	}

	lastw := pathID
	for {
		cur := lastw
		for h.arena[cur].parent != noPath {
			parentID := h.arena[cur].parent
			p := &h.arena[parentID]
			p.diffPath, p.diffSubtree = 0, 0

			left, right := h.arena[p.left], h.arena[p.right]
			p.dMinPath = minInt(left.dMinPath, right.dMinPath)
			p.dMaxPath = maxInt(left.dMaxPath, right.dMaxPath)
			p.dMinSubtree = 1
			p.dMaxSubtree = maxInt(left.dMaxSubtree, right.dMaxSubtree)

			for _, sid := range [2]int32{p.left, p.right} {
				s := &h.arena[sid]
				s.diffPath, s.diffSubtree = 0, 0
				if h.wantSets {
					clearLeafSet(&s.includePath)
					clearLeafSet(&s.includeSubtree)
					clearLeafSet(&s.exclude)
					clearLeafSet(&s.excludePath)
				}
			}
			cur = parentID
		}

		if cur == h.rootID {
			break
		}

		parentHeavyPathID := h.arena[cur].parentHeavyPath
		pp := &h.arena[parentHeavyPathID]
		pp.diffPath, pp.diffSubtree = 0, 0
		pp.dMinPath = pp.node.SubtreeSize()
		pp.dMaxPath = pp.node.SubtreeSize()

		first := true
		for _, cID := range pp.childHeavyPaths {
			c := h.arena[cID]
			var cMin, cMax int
			if c.k == kindHPTLeaf {
				cMin, cMax = c.dMinPath, c.dMaxPath
			} else {
				cMin = minInt(c.dMinPath, c.dMinSubtree)
				cMax = maxInt(c.dMaxPath, c.dMaxSubtree)
			}
			if first {
				pp.dMinSubtree, pp.dMaxSubtree = cMin, cMax
				first = false
			} else {
				pp.dMinSubtree = minInt(pp.dMinSubtree, cMin)
				pp.dMaxSubtree = maxInt(pp.dMaxSubtree, cMax)
			}

			if cID != cur {
				c2 := &h.arena[cID]
				c2.diffPath, c2.diffSubtree = 0, 0
				if h.wantSets {
					clearLeafSet(&c2.includePath)
					clearLeafSet(&c2.includeSubtree)
				}
			}
		}
		if h.wantSets {
			clearLeafSet(&pp.exclude)
		}

		lastw = parentHeavyPathID
	}

	return nil
}

// QueryMin returns TI_min(u): the minimum over every alt-tree node of the
// symmetric difference against the leaves added so far (§4.4).
func (h *HPT) QueryMin() int {
	r := h.arena[h.rootID]
	if r.k == kindHPTLeaf {
		return r.dMinPath + r.diffPath
	}
	return minInt(r.dMinPath+r.diffPath, r.dMinSubtree+r.diffSubtree)
}

// QueryMax returns TI_max(u), the complementary maximum (§4.4).
func (h *HPT) QueryMax() int {
	r := h.arena[h.rootID]
	if r.k == kindHPTLeaf {
		return r.dMaxPath + r.diffPath
	}
	return maxInt(r.dMaxPath+r.diffPath, r.dMaxSubtree+r.diffSubtree)
}
