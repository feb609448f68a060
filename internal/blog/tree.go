package blog

import (
	"github.com/google/uuid"

	"customblog/internal/models"
)

// Tree is an arena of one blog's categories indexed by id. Parent and
// child links are ids into the arena, so walking the tree never follows
// owning pointers.
type Tree struct {
	nodes    map[uuid.UUID]*models.Category
	order    []uuid.UUID
	children map[uuid.UUID][]uuid.UUID
}

// NewTree builds the arena from a flat list in insertion order. Child ids
// are recorded on each parent in the same order.
func NewTree(flat []models.Category) *Tree {
	t := &Tree{
		nodes:    make(map[uuid.UUID]*models.Category, len(flat)),
		order:    make([]uuid.UUID, 0, len(flat)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for i := range flat {
		c := flat[i]
		c.ChildIDs = nil
		t.nodes[c.ID] = &c
		t.order = append(t.order, c.ID)
	}
	for _, id := range t.order {
		c := t.nodes[id]
		if c.ParentID == nil {
			continue
		}
		if _, ok := t.nodes[*c.ParentID]; ok {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], id)
		}
	}
	for _, id := range t.order {
		c := t.nodes[id]
		if c.IsParent() {
			c.ChildIDs = append([]uuid.UUID{}, t.children[id]...)
		}
	}
	return t
}

// Get returns the category with the given id.
func (t *Tree) Get(id uuid.UUID) (*models.Category, bool) {
	c, ok := t.nodes[id]
	return c, ok
}

// Len returns the number of categories in the tree.
func (t *Tree) Len() int {
	return len(t.order)
}

// Roots returns the parent categories in insertion order.
func (t *Tree) Roots() []uuid.UUID {
	var roots []uuid.UUID
	for _, id := range t.order {
		if t.nodes[id].IsParent() {
			roots = append(roots, id)
		}
	}
	return roots
}

// Children returns the child ids of a category in insertion order.
func (t *Tree) Children(id uuid.UUID) []uuid.UUID {
	return t.children[id]
}

// Subtree returns id followed by the ids of its children.
func (t *Tree) Subtree(id uuid.UUID) []uuid.UUID {
	ids := []uuid.UUID{id}
	return append(ids, t.children[id]...)
}

// Flat returns copies of every category in insertion order, with ChildIDs
// populated on parent categories.
func (t *Tree) Flat() []models.Category {
	out := make([]models.Category, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.nodes[id])
	}
	return out
}
