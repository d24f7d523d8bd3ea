package heavypath

import "github.com/thekswenson/booster/tree"

// BuildHPT decomposes altRoot's tree into heavy paths (§4.3), returning the
// owning arena. altRoot must already have gone through tree.Prepare (so that
// subtreeSize/heavyChild are set).
func BuildHPT(altRoot *tree.Node, numLeaves int, wantSets bool) *HPT {
	h := &HPT{altRoot: altRoot, numLeaves: numLeaves, wantSets: wantSets}
	maxDepth := 0
	h.rootID = h.decompose(altRoot, 0, &maxDepth)
	h.pathToRoot = make([]int32, maxDepth+2)
	return h
}

// decompose walks v's heavy-child chain to find the maximal heavy path
// starting at v, then builds its PT via partitionHeavypath. Returns the PT
// root's arena index.
func (h *HPT) decompose(v *tree.Node, depth int, maxDepth *int) int32 {
	seq := []*tree.Node{v}
	for cur := v; cur.HeavyChild() != nil; cur = cur.HeavyChild() {
		seq = append(seq, cur.HeavyChild())
	}
	return h.partitionHeavypath(seq, depth, maxDepth)
}

// partitionHeavypath builds a balanced binary tree over a heavy-path
// sequence, splitting the range into ceil(len/2) and the remainder (§4.3).
func (h *HPT) partitionHeavypath(seq []*tree.Node, depth int, maxDepth *int) int32 {
	if len(seq) == 1 {
		return h.heavypathLeaf(seq[0], depth, maxDepth)
	}

	l1 := (len(seq) + 1) / 2
	leftID := h.partitionHeavypath(seq[:l1], depth+1, maxDepth)
	rightID := h.partitionHeavypath(seq[l1:], depth+1, maxDepth)

	pid := h.alloc(kindInternal)
	h.arena[leftID].parent = pid
	h.arena[rightID].parent = pid
	h.arena[leftID].sibling = rightID
	h.arena[rightID].sibling = leftID

	left, right := h.arena[leftID], h.arena[rightID]
	p := &h.arena[pid]
	p.left, p.right = leftID, rightID
	p.totalDepth = depth
	p.dMinPath = minInt(left.dMinPath, right.dMinPath)
	p.dMaxPath = maxInt(left.dMaxPath, right.dMaxPath)
	p.dMaxSubtree = maxInt(left.dMaxSubtree, right.dMaxSubtree)
	p.numHPTLeaves = left.numHPTLeaves + right.numHPTLeaves
	return pid
}

// heavypathLeaf builds the PT leaf tied to alt-tree node v: either an HPT
// leaf (v is itself an alt-tree leaf) or a pendant (v has non-heavy
// children, each the root of its own recursively-decomposed heavy path).
//
// v's own heavy child, if any, is never a pendant: it is the next element
// of the same heavy-path sequence that decompose() is already walking, so
// it is represented by a sibling Path elsewhere in this PT, not here.
func (h *HPT) heavypathLeaf(v *tree.Node, depth int, maxDepth *int) int32 {
	if v.Tip() {
		pid := h.alloc(kindHPTLeaf)
		p := &h.arena[pid]
		p.node = v
		p.totalDepth = depth
		p.dMaxPath = v.SubtreeSize()
		p.numHPTLeaves = 1
		v.SetPathID(pid)
		if depth > *maxDepth {
			*maxDepth = depth
		}
		return pid
	}

	heavy := v.HeavyChild()
	var childIDs []int32
	for _, c := range v.Children() {
		if c == heavy {
			continue
		}
		childIDs = append(childIDs, h.decompose(c, depth+1, maxDepth))
	}

	pid := h.alloc(kindPendant)
	for _, cid := range childIDs {
		h.arena[cid].parentHeavyPath = pid
	}

	dMinSub, dMaxSub, numLeaves := 1, 1, 0
	for i, cid := range childIDs {
		c := h.arena[cid]
		cMin, cMax := minInt(c.dMinPath, c.dMinSubtree), maxInt(c.dMaxPath, c.dMaxSubtree)
		if i == 0 {
			dMinSub, dMaxSub = cMin, cMax
		} else {
			dMinSub, dMaxSub = minInt(dMinSub, cMin), maxInt(dMaxSub, cMax)
		}
		numLeaves += c.numHPTLeaves
	}

	p := &h.arena[pid]
	p.node = v
	p.childHeavyPaths = childIDs
	p.totalDepth = depth
	p.dMinPath = v.SubtreeSize()
	p.dMaxPath = v.SubtreeSize()
	p.dMinSubtree = dMinSub
	p.dMaxSubtree = dMaxSub
	p.numHPTLeaves = numLeaves
	v.SetPathID(pid)
	return pid
}
