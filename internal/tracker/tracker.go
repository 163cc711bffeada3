// Package tracker provides the in-memory store for tasks, epics and subtasks.
//
// Every read of a single entity is recorded in the view history, and every
// change to a subtask recomputes the status of the epic that owns it.
// Use New() to create a Manager.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/baiirun/tracker/internal/history"
	"github.com/baiirun/tracker/internal/model"
)

var (
	ErrAlreadyExists = errors.New("item already exists")
	ErrNotFound      = errors.New("item not found")
	ErrEpicNotFound  = errors.New("epic not found")
	ErrInvalidStatus = errors.New("invalid status")
)

// Option mutates Manager configuration.
type Option func(*Manager)

// WithLogger injects a structured logger. Nil keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHistory shares an existing history with the manager.
func WithHistory(h *history.History) Option {
	return func(m *Manager) {
		if h != nil {
			m.history = h
		}
	}
}

// WithFirstID sets the first id the allocator hands out.
func WithFirstID(id int) Option {
	return func(m *Manager) {
		if id > 0 {
			m.ids.next = id
		}
	}
}

// idAllocator hands out ids shared by all entity kinds.
type idAllocator struct {
	next int
}

func (a *idAllocator) allocate() int {
	id := a.next
	a.next++
	return id
}

// observe moves the allocator past an id that was supplied by the caller.
func (a *idAllocator) observe(id int) {
	if id >= a.next {
		a.next = id + 1
	}
}

// Manager stores tasks, epics and subtasks in memory.
type Manager struct {
	logger *slog.Logger

	mu       sync.Mutex
	ids      idAllocator
	tasks    map[int]model.Task
	epics    map[int]*model.Epic
	subtasks map[int]model.Subtask
	history  *history.History
}

// New creates an empty manager with its own id sequence starting at 1.
func New(options ...Option) *Manager {
	m := &Manager{
		logger:   slog.Default(),
		ids:      idAllocator{next: 1},
		tasks:    make(map[int]model.Task),
		epics:    make(map[int]*model.Epic),
		subtasks: make(map[int]model.Subtask),
		history:  history.New(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// NextID reserves and returns the next id.
func (m *Manager) NextID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ids.allocate()
}

// History returns the viewed entities from oldest to newest.
func (m *Manager) History() []model.Entity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.List()
}

// Peek returns the entity with id, whatever its kind, without recording a
// view.
func (m *Manager) Peek(id int) (model.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if task, ok := m.tasks[id]; ok {
		return task, nil
	}
	if epic, ok := m.epics[id]; ok {
		return epic.Clone(), nil
	}
	if subtask, ok := m.subtasks[id]; ok {
		return subtask, nil
	}
	return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
}

// claimIDLocked assigns an id when id is zero and rejects ids used by any kind.
func (m *Manager) claimIDLocked(id int) (int, error) {
	if id == 0 {
		return m.ids.allocate(), nil
	}
	if m.existsLocked(id) {
		return 0, ErrAlreadyExists
	}
	m.ids.observe(id)
	return id, nil
}

func (m *Manager) existsLocked(id int) bool {
	if _, ok := m.tasks[id]; ok {
		return true
	}
	if _, ok := m.epics[id]; ok {
		return true
	}
	_, ok := m.subtasks[id]
	return ok
}

// subtasksOfLocked reads the epic's current subtasks straight from the store.
func (m *Manager) subtasksOfLocked(epic *model.Epic) []model.Subtask {
	ids := epic.SubtaskIDs()
	subtasks := make([]model.Subtask, 0, len(ids))
	for _, id := range ids {
		if s, ok := m.subtasks[id]; ok {
			subtasks = append(subtasks, s)
		}
	}
	return subtasks
}

// recomputeLocked refreshes the derived status of an epic. Missing epics are
// ignored. History is left untouched.
func (m *Manager) recomputeLocked(epicID int) {
	epic, ok := m.epics[epicID]
	if !ok {
		return
	}
	before := epic.Status()
	after := epic.Recompute(m.subtasksOfLocked(epic))
	if before != after {
		m.logger.Debug("epic status recomputed",
			"id", epicID,
			"from", before,
			"to", after,
		)
	}
}

func sortedValues[T any](items map[int]T) []T {
	keys := make([]int, 0, len(items))
	for id := range items {
		keys = append(keys, id)
	}
	sort.Ints(keys)

	values := make([]T, 0, len(keys))
	for _, id := range keys {
		values = append(values, items[id])
	}
	return values
}
