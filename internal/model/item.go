package model

import (
	"slices"
	"strings"
)

type Kind string

const (
	KindTask    Kind = "task"
	KindEpic    Kind = "epic"
	KindSubtask Kind = "subtask"
)

// IsValid reports whether k is a known entity kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindTask, KindEpic, KindSubtask:
		return true
	}
	return false
}

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// ParseStatus accepts user input such as "done", "in-progress" or "In Progress".
func ParseStatus(raw string) (Status, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	s := Status(normalized)
	return s, s.IsValid()
}

// Entity is implemented by Task, Epic and Subtask.
type Entity interface {
	EntityID() int
	EntityKind() Kind
	EntityName() string
	EntityStatus() Status
}

// SameEntity reports whether a and b refer to the same logical entity.
// Identity is the id alone; two snapshots with different fields are the same
// entity if their ids match.
func SameEntity(a, b Entity) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.EntityID() == b.EntityID()
}

type Task struct {
	ID          int
	Name        string
	Description *string
	Status      Status
}

// NewTask returns a task in status NEW. The id is assigned by the store.
func NewTask(name string, description *string) Task {
	return Task{Name: name, Description: description, Status: StatusNew}
}

func (t Task) EntityID() int        { return t.ID }
func (t Task) EntityKind() Kind     { return KindTask }
func (t Task) EntityName() string   { return t.Name }
func (t Task) EntityStatus() Status { return t.Status }

// Subtask is a task owned by an epic.
type Subtask struct {
	ID          int
	Name        string
	Description *string
	Status      Status
	EpicID      int
}

func NewSubtask(name string, description *string, epicID int) Subtask {
	return Subtask{Name: name, Description: description, Status: StatusNew, EpicID: epicID}
}

func (s Subtask) EntityID() int        { return s.ID }
func (s Subtask) EntityKind() Kind     { return KindSubtask }
func (s Subtask) EntityName() string   { return s.Name }
func (s Subtask) EntityStatus() Status { return s.Status }

// Epic groups subtasks. Its status is never assigned directly; it is derived
// from the subtasks through Recompute.
type Epic struct {
	ID          int
	Name        string
	Description *string

	status   Status
	subtasks map[int]struct{}
}

func NewEpic(name string, description *string) Epic {
	return Epic{Name: name, Description: description, status: StatusNew}
}

func (e Epic) EntityID() int        { return e.ID }
func (e Epic) EntityKind() Kind     { return KindEpic }
func (e Epic) EntityName() string   { return e.Name }
func (e Epic) EntityStatus() Status { return e.Status() }

// Status returns the derived status. A zero Epic reports NEW.
func (e Epic) Status() Status {
	if e.status == "" {
		return StatusNew
	}
	return e.status
}

// SubtaskIDs returns the owned subtask ids in ascending order.
func (e Epic) SubtaskIDs() []int {
	ids := make([]int, 0, len(e.subtasks))
	for id := range e.subtasks {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e Epic) HasSubtask(id int) bool {
	_, ok := e.subtasks[id]
	return ok
}

// AddSubtask records id as owned by e. Adding an id twice is a no-op.
func (e *Epic) AddSubtask(id int) {
	if e.subtasks == nil {
		e.subtasks = make(map[int]struct{})
	}
	e.subtasks[id] = struct{}{}
}

func (e *Epic) RemoveSubtask(id int) {
	delete(e.subtasks, id)
}

// ClearSubtasks drops every owned subtask id. The caller recomputes status.
func (e *Epic) ClearSubtasks() {
	e.subtasks = nil
}

// Clone returns a copy that shares no state with e.
func (e Epic) Clone() Epic {
	clone := e
	clone.subtasks = nil
	for id := range e.subtasks {
		clone.AddSubtask(id)
	}
	return clone
}
