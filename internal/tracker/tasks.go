package tracker

import (
	"fmt"

	"github.com/baiirun/tracker/internal/model"
)

// CreateTask stores a new task. A zero ID is replaced by the next id.
func (m *Manager) CreateTask(task model.Task) (model.Task, error) {
	if task.Status == "" {
		task.Status = model.StatusNew
	}
	if !task.Status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %s", ErrInvalidStatus, task.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.claimIDLocked(task.ID)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task %d: %w", task.ID, err)
	}
	task.ID = id
	m.tasks[id] = task

	m.logger.Debug("task created", "id", id, "status", task.Status)
	return task, nil
}

// Task returns a task by id and records the view.
func (m *Manager) Task(id int) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[id]
	if !ok {
		return model.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	m.history.Touch(task)
	return task, nil
}

// Tasks returns every task ordered by id. History is not affected.
func (m *Manager) Tasks() []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sortedValues(m.tasks)
}

// UpdateTask replaces a stored task with the same id.
func (m *Manager) UpdateTask(task model.Task) error {
	if !task.Status.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, task.Status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[task.ID]; !ok {
		return fmt.Errorf("task %d: %w", task.ID, ErrNotFound)
	}
	m.tasks[task.ID] = task
	return nil
}

// DeleteTask removes a task and its history entry.
func (m *Manager) DeleteTask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	delete(m.tasks, id)
	m.history.Remove(id)

	m.logger.Debug("task deleted", "id", id)
	return nil
}

// ClearTasks removes every task.
func (m *Manager) ClearTasks() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.tasks {
		m.history.Remove(id)
	}
	n := len(m.tasks)
	clear(m.tasks)

	m.logger.Debug("tasks cleared", "count", n)
}
