package piecetree

// This file implements the CLRS red-black insertion and deletion
// fix-up routines, specialized to the per-left-subtree augmentation
// this package maintains. Rotations (node.go) keep the augmentation
// exact in O(1); the structural fix-up loops below only ever rotate
// or recolor, so they never need to touch leftSubtreeLength /
// leftSubtreeLineCount themselves.

// insertLeftOf splices newNode in as the left child of parent, replacing
// parent's sentinel left link, and colors it red per CLRS. Because
// newNode's own piece now lies in the left subtree of every ancestor
// that reaches it through a left turn, those ancestors' aggregates are
// seeded via recomputeMetadata before fixInsert starts rotating; the
// rotation formulas in node.go then keep that seed correct through any
// restructuring the fix-up performs.
func (t *Tree) insertLeftOf(parent, newNode *node) {
	parent.left = newNode
	newNode.parent = parent
	newNode.left, newNode.right = t.nilNode, t.nilNode
	newNode.color = red
	t.recomputeMetadata(newNode, newNode.piece.Length, newNode.piece.LineCount)
	t.fixInsert(newNode)
}

// insertRightOf splices newNode in as the right child of parent.
func (t *Tree) insertRightOf(parent, newNode *node) {
	parent.right = newNode
	newNode.parent = parent
	newNode.left, newNode.right = t.nilNode, t.nilNode
	newNode.color = red
	t.recomputeMetadata(newNode, newNode.piece.Length, newNode.piece.LineCount)
	t.fixInsert(newNode)
}

// insertAsRoot makes newNode the tree's only node.
func (t *Tree) insertAsRoot(newNode *node) {
	newNode.parent = t.nilNode
	newNode.left, newNode.right = t.nilNode, t.nilNode
	newNode.color = red
	t.root = newNode
	t.fixInsert(newNode)
}

// fixInsert restores the red-black properties after a red leaf has been
// spliced in at z, by the standard CLRS case analysis on z's uncle.
func (t *Tree) fixInsert(z *node) {
	for z.parent.color == red {
		if z.parent == z.parent.parent.left {
			uncle := z.parent.parent.right
			if uncle.color == red {
				z.parent.color = black
				uncle.color = black
				z.parent.parent.color = red
				z = z.parent.parent
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateRight(z.parent.parent)
		} else {
			uncle := z.parent.parent.left
			if uncle.color == red {
				z.parent.color = black
				uncle.color = black
				z.parent.parent.color = red
				z = z.parent.parent
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateLeft(z.parent.parent)
		}
	}
	t.root.color = black
}

// insertBefore splices newNode in as n's in-order predecessor: directly
// as n's left child if that slot is free, otherwise as the right child
// of n's current predecessor (which, being the rightmost node of n's
// left subtree, never has a right child of its own).
func (t *Tree) insertBefore(n, newNode *node) {
	if t.isNil(n.left) {
		t.insertLeftOf(n, newNode)
		return
	}
	pred := t.rightmost(n.left)
	t.insertRightOf(pred, newNode)
}

// insertAfter splices newNode in as n's in-order successor.
func (t *Tree) insertAfter(n, newNode *node) {
	if t.isNil(n.right) {
		t.insertRightOf(n, newNode)
		return
	}
	succ := t.leftmost(n.right)
	t.insertLeftOf(succ, newNode)
}

// transplant replaces the subtree rooted at u with the subtree rooted
// at v, wiring v into u's parent. It does not touch u or v's children.
func (t *Tree) transplant(u, v *node) {
	if t.isNil(u.parent) {
		t.root = v
	} else if u == u.parent.left {
		u.parent.left = v
	} else {
		u.parent.right = v
	}
	v.parent = u.parent
}

// remove deletes z from the tree and restores both the red-black
// properties and the left-subtree aggregates. Aggregate repair after a
// delete is harder to express incrementally than after an insert or
// rotation — the node physically removed from the tree's structure
// (y below) is not always z itself, and the subtree whose aggregates
// changed is not generally representable as a short ancestor chain — so
// this falls back to recomputeUp, which walks from the lowest
// structurally-disturbed node to the root recalculating every
// augmentation from scratch along the way. That costs O(log^2 n) instead
// of the O(log n) an exact incremental formula would cost, traded here
// for not having to re-derive CLRS's case analysis under augmentation.
func (t *Tree) remove(z *node) {
	y := z
	yOriginalColor := y.color
	var x, xParent *node

	if t.isNil(z.left) {
		x = z.right
		xParent = z.parent
		t.transplant(z, z.right)
	} else if t.isNil(z.right) {
		x = z.left
		xParent = z.parent
		t.transplant(z, z.left)
	} else {
		y = t.leftmost(z.right)
		yOriginalColor = y.color
		x = y.right
		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
		y.leftSubtreeLength = z.leftSubtreeLength
		y.leftSubtreeLineCount = z.leftSubtreeLineCount
	}

	if yOriginalColor == black {
		t.fixDelete(x, xParent)
	}

	t.recomputeUp(xParent)
	t.resetSentinel()
}

// resetSentinel restores the sentinel to its resting state (parent, left
// and right pointing at itself, colored black) after remove's transplant
// and fix-up steps may have written to its fields.
func (t *Tree) resetSentinel() {
	s := t.nilNode
	s.parent, s.left, s.right = s, s, s
	s.color = black
}

// fixDelete restores the red-black properties after a black node has
// been removed from the tree, following the standard CLRS case analysis.
// x may be the sentinel, in which case xParent locates it for the
// sibling lookups the loop needs; the sentinel's parent link is kept in
// sync for exactly this purpose and reset once the loop exits
// (see (*Tree).resetSentinel).
func (t *Tree) fixDelete(x, xParent *node) {
	for x != t.root && x.color == black {
		if x == xParent.left {
			w := xParent.right
			if w.color == red {
				w.color = black
				xParent.color = red
				t.rotateLeft(xParent)
				w = xParent.right
			}
			if w.left.color == black && w.right.color == black {
				w.color = red
				x = xParent
				xParent = x.parent
				continue
			}
			if w.right.color == black {
				w.left.color = black
				w.color = red
				t.rotateRight(w)
				w = xParent.right
			}
			w.color = xParent.color
			xParent.color = black
			w.right.color = black
			t.rotateLeft(xParent)
			x = t.root
			xParent = t.nilNode
		} else {
			w := xParent.left
			if w.color == red {
				w.color = black
				xParent.color = red
				t.rotateRight(xParent)
				w = xParent.left
			}
			if w.right.color == black && w.left.color == black {
				w.color = red
				x = xParent
				xParent = x.parent
				continue
			}
			if w.left.color == black {
				w.right.color = black
				w.color = red
				t.rotateLeft(w)
				w = xParent.left
			}
			w.color = xParent.color
			xParent.color = black
			w.left.color = black
			t.rotateRight(xParent)
			x = t.root
			xParent = t.nilNode
		}
	}
	x.color = black
}

// recomputeUp recalculates leftSubtreeLength and leftSubtreeLineCount
// for n and every ancestor up to the root, each from its (already
// correct) children's augmentations plus its own piece. Used after
// remove, whose restructuring can relocate whole subtrees in ways that
// don't reduce to a simple per-ancestor delta.
func (t *Tree) recomputeUp(n *node) {
	for !t.isNil(n) {
		t.updateAugmentation(n)
		n = n.parent
	}
}

// updateAugmentation sets n's left-subtree aggregates from n.left's
// totals, leaving n's children untouched.
func (t *Tree) updateAugmentation(n *node) {
	if t.isNil(n) {
		return
	}
	n.leftSubtreeLength = t.subtreeLength(n.left)
	n.leftSubtreeLineCount = t.subtreeLineCount(n.left)
}

// recomputeMetadata walks from n up to the root, adding deltaLength and
// deltaLineCount to the leftSubtreeLength/leftSubtreeLineCount of every
// ancestor for which n lies in its left subtree. This is the cheap exact
// path used after changes that only alter a single piece's length (an
// in-place shrink, or a leaf splice whose position is already final) —
// no rotation or relocation has happened, so the delta is well-defined
// along the ancestor chain.
func (t *Tree) recomputeMetadata(n *node, deltaLength, deltaLineCount int) {
	for !t.isNil(n.parent) {
		if n == n.parent.left {
			n.parent.leftSubtreeLength += deltaLength
			n.parent.leftSubtreeLineCount += deltaLineCount
		}
		n = n.parent
	}
}
