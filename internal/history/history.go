// Package history keeps the recently viewed entities of a tracker, oldest
// first, with each entity present at most once.
//
// Nodes live in a map keyed by entity id and link to their neighbours by id,
// so Touch and Remove are O(1) regardless of history length.
package history

import "github.com/baiirun/tracker/internal/model"

type node struct {
	entity model.Entity
	// prev is meaningful only when the node is not the head, next only when
	// it is not the tail.
	prev int
	next int
}

// History is not safe for concurrent use; the tracker serializes access.
type History struct {
	nodes map[int]*node
	head  int
	tail  int
}

func New() *History {
	return &History{nodes: make(map[int]*node)}
}

// Touch records entity as the most recently viewed. A previous snapshot with
// the same id is dropped, not merged. A nil entity is ignored.
func (h *History) Touch(entity model.Entity) {
	if entity == nil {
		return
	}
	id := entity.EntityID()
	h.unlink(id)
	h.linkLast(id, entity)
}

// Remove drops id from the history. Unknown ids are ignored.
func (h *History) Remove(id int) {
	h.unlink(id)
}

// List returns the entities from oldest to newest. The slice is owned by the
// caller.
func (h *History) List() []model.Entity {
	entities := make([]model.Entity, 0, len(h.nodes))
	if len(h.nodes) == 0 {
		return entities
	}
	for id := h.head; ; {
		n := h.nodes[id]
		entities = append(entities, n.entity)
		if id == h.tail {
			break
		}
		id = n.next
	}
	return entities
}

func (h *History) Len() int {
	return len(h.nodes)
}

func (h *History) Contains(id int) bool {
	_, ok := h.nodes[id]
	return ok
}

func (h *History) linkLast(id int, entity model.Entity) {
	n := &node{entity: entity}
	if len(h.nodes) == 0 {
		h.head = id
	} else {
		h.nodes[h.tail].next = id
		n.prev = h.tail
	}
	h.tail = id
	h.nodes[id] = n
}

func (h *History) unlink(id int) {
	n, ok := h.nodes[id]
	if !ok {
		return
	}
	isHead, isTail := id == h.head, id == h.tail

	switch {
	case isHead && isTail:
		h.head, h.tail = 0, 0
	case isHead:
		h.head = n.next
	case isTail:
		h.tail = n.prev
		h.nodes[n.prev].next = 0
	default:
		h.nodes[n.prev].next = n.next
		h.nodes[n.next].prev = n.prev
	}
	delete(h.nodes, id)
}
