package service

import (
	"sort"

	"bookclub/internal/models"
)

// commentForest is an arena-style index over one post's comments: a flat node
// table keyed by ID plus a parent-id → ordered-children map. Siblings are
// ordered by creation time, ties broken by the insertion sequence, so the
// traversal is deterministic even when timestamps collide at clock resolution.
type commentForest struct {
	byID     map[uint]*models.Comment
	children map[uint][]*models.Comment // key 0 holds the roots
}

// newCommentForest builds the index from a post's comments. Nodes whose
// parent is absent from the set (deleted mid-listing) are treated as roots so
// the traversal never drops reachable nodes.
func newCommentForest(comments []*models.Comment) *commentForest {
	f := &commentForest{
		byID:     make(map[uint]*models.Comment, len(comments)),
		children: make(map[uint][]*models.Comment),
	}
	for _, c := range comments {
		f.byID[c.ID] = c
	}
	for _, c := range comments {
		parent := uint(0)
		if c.ParentID != nil {
			if _, ok := f.byID[*c.ParentID]; ok {
				parent = *c.ParentID
			}
		}
		f.children[parent] = append(f.children[parent], c)
	}
	for _, siblings := range f.children {
		sort.SliceStable(siblings, func(i, j int) bool {
			if !siblings[i].CreatedAt.Equal(siblings[j].CreatedAt) {
				return siblings[i].CreatedAt.Before(siblings[j].CreatedAt)
			}
			return siblings[i].Seq < siblings[j].Seq
		})
	}
	return f
}

// renderOrder returns the display order: for each tree, oldest root first,
// the root followed by its descendants in pre-order, children oldest first.
func (f *commentForest) renderOrder() []*models.Comment {
	ordered := make([]*models.Comment, 0, len(f.byID))

	var visit func(id uint)
	visit = func(id uint) {
		for _, child := range f.children[id] {
			ordered = append(ordered, child)
			visit(child.ID)
		}
	}
	visit(0)
	return ordered
}

// subtreeIDs returns rootID and the IDs of all of its descendants. The walk
// is bounded by the index, so deletion touches exactly the subtree.
func (f *commentForest) subtreeIDs(rootID uint) []uint {
	ids := []uint{rootID}
	for i := 0; i < len(ids); i++ {
		for _, child := range f.children[ids[i]] {
			ids = append(ids, child.ID)
		}
	}
	return ids
}
