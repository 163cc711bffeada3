package tracker

import (
	"fmt"

	"github.com/baiirun/tracker/internal/model"
)

// CreateEpic stores a new epic with no subtasks. A zero ID is replaced by the
// next id. Any subtask ids or status carried by epic are discarded; both are
// owned by the store.
func (m *Manager) CreateEpic(epic model.Epic) (model.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.claimIDLocked(epic.ID)
	if err != nil {
		return model.Epic{}, fmt.Errorf("failed to create epic %d: %w", epic.ID, err)
	}

	stored := model.NewEpic(epic.Name, epic.Description)
	stored.ID = id
	stored.Recompute(nil)
	m.epics[id] = &stored

	m.logger.Debug("epic created", "id", id)
	return stored.Clone(), nil
}

// Epic returns an epic by id and records the view.
func (m *Manager) Epic(id int) (model.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[id]
	if !ok {
		return model.Epic{}, fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	m.history.Touch(epic.Clone())
	return epic.Clone(), nil
}

// Epics returns every epic ordered by id. History is not affected.
func (m *Manager) Epics() []model.Epic {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := sortedValues(m.epics)
	epics := make([]model.Epic, 0, len(stored))
	for _, epic := range stored {
		epics = append(epics, epic.Clone())
	}
	return epics
}

// EpicSubtasks returns the current subtasks of an epic ordered by id.
func (m *Manager) EpicSubtasks(epicID int) ([]model.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[epicID]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}
	return m.subtasksOfLocked(epic), nil
}

// UpdateEpic replaces the name and description of a stored epic. Status and
// subtask membership are kept.
func (m *Manager) UpdateEpic(epic model.Epic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.epics[epic.ID]
	if !ok {
		return fmt.Errorf("epic %d: %w", epic.ID, ErrNotFound)
	}
	stored.Name = epic.Name
	stored.Description = epic.Description
	return nil
}

// DeleteEpic removes an epic together with its subtasks. All of them leave
// the history.
func (m *Manager) DeleteEpic(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	epic, ok := m.epics[id]
	if !ok {
		return fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	subtaskIDs := epic.SubtaskIDs()
	for _, subtaskID := range subtaskIDs {
		delete(m.subtasks, subtaskID)
		m.history.Remove(subtaskID)
	}
	delete(m.epics, id)
	m.history.Remove(id)

	m.logger.Debug("epic deleted", "id", id, "subtasks", len(subtaskIDs))
	return nil
}

// ClearEpics removes every epic. Subtasks cannot outlive their epic, so they
// are removed too.
func (m *Manager) ClearEpics() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subtasks {
		m.history.Remove(id)
	}
	for id := range m.epics {
		m.history.Remove(id)
	}
	n := len(m.epics)
	clear(m.subtasks)
	clear(m.epics)

	m.logger.Debug("epics cleared", "count", n)
}
