package tracker

import (
	"fmt"

	"github.com/baiirun/tracker/internal/model"
)

// CreateSubtask stores a new subtask under an existing epic and recomputes
// the epic's status. A zero ID is replaced by the next id.
func (m *Manager) CreateSubtask(subtask model.Subtask) (model.Subtask, error) {
	if subtask.Status == "" {
		subtask.Status = model.StatusNew
	}
	if !subtask.Status.IsValid() {
		return model.Subtask{}, fmt.Errorf("%w: %s", ErrInvalidStatus, subtask.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Only epics can own subtasks; a task or subtask id is rejected here too.
	epic, ok := m.epics[subtask.EpicID]
	if !ok {
		return model.Subtask{}, fmt.Errorf("failed to create subtask: %w: %d", ErrEpicNotFound, subtask.EpicID)
	}
	id, err := m.claimIDLocked(subtask.ID)
	if err != nil {
		return model.Subtask{}, fmt.Errorf("failed to create subtask %d: %w", subtask.ID, err)
	}
	subtask.ID = id
	m.subtasks[id] = subtask
	epic.AddSubtask(id)
	m.recomputeLocked(epic.ID)

	m.logger.Debug("subtask created", "id", id, "epic", epic.ID, "status", subtask.Status)
	return subtask, nil
}

// Subtask returns a subtask by id and records the view.
func (m *Manager) Subtask(id int) (model.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtask, ok := m.subtasks[id]
	if !ok {
		return model.Subtask{}, fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	m.history.Touch(subtask)
	return subtask, nil
}

// Subtasks returns every subtask ordered by id. History is not affected.
func (m *Manager) Subtasks() []model.Subtask {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.subtasks)
}

// UpdateSubtask replaces a stored subtask with the same id and recomputes its
// epic. If EpicID changed, the subtask moves to the new epic and both epics
// are recomputed.
func (m *Manager) UpdateSubtask(subtask model.Subtask) error {
	if !subtask.Status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, subtask.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.subtasks[subtask.ID]
	if !ok {
		return fmt.Errorf("subtask %d: %w", subtask.ID, ErrNotFound)
	}

	if stored.EpicID != subtask.EpicID {
		target, ok := m.epics[subtask.EpicID]
		if !ok {
			return fmt.Errorf("failed to move subtask %d: %w: %d", subtask.ID, ErrEpicNotFound, subtask.EpicID)
		}
		if previous, ok := m.epics[stored.EpicID]; ok {
			previous.RemoveSubtask(subtask.ID)
		}
		target.AddSubtask(subtask.ID)
		m.subtasks[subtask.ID] = subtask
		m.recomputeLocked(stored.EpicID)
		m.recomputeLocked(subtask.EpicID)

		m.logger.Debug("subtask moved", "id", subtask.ID, "from", stored.EpicID, "to", subtask.EpicID)
		return nil
	}

	m.subtasks[subtask.ID] = subtask
	m.recomputeLocked(subtask.EpicID)
	return nil
}

// DeleteSubtask removes a subtask, detaches it from its epic and recomputes
// the epic's status.
func (m *Manager) DeleteSubtask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	subtask, ok := m.subtasks[id]
	if !ok {
		return fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	delete(m.subtasks, id)
	if epic, ok := m.epics[subtask.EpicID]; ok {
		epic.RemoveSubtask(id)
	}
	m.recomputeLocked(subtask.EpicID)
	m.history.Remove(id)

	m.logger.Debug("subtask deleted", "id", id, "epic", subtask.EpicID)
	return nil
}

// ClearSubtasks removes every subtask. Each epic is left empty and NEW.
func (m *Manager) ClearSubtasks() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subtasks {
		m.history.Remove(id)
	}
	n := len(m.subtasks)
	clear(m.subtasks)
	for id, epic := range m.epics {
		epic.ClearSubtasks()
		m.recomputeLocked(id)
	}

	m.logger.Debug("subtasks cleared", "count", n)
}
