package model

// DeriveEpicStatus computes an epic's status from its subtasks.
//
// Rules:
//   - No subtasks, or all subtasks NEW: NEW.
//   - All subtasks DONE: DONE.
//   - Anything else: IN_PROGRESS.
//
// Subtasks that belong to a different epic are ignored.
func DeriveEpicStatus(epic Epic, subtasks []Subtask) Status {
	allNew, allDone := true, true
	for _, s := range subtasks {
		if s.EpicID != epic.ID {
			continue
		}
		switch s.Status {
		case StatusNew:
			allDone = false
		case StatusDone:
			allNew = false
		default:
			allNew = false
			allDone = false
		}
	}

	// Checked first so an empty set is NEW, not DONE.
	if allNew {
		return StatusNew
	}
	if allDone {
		return StatusDone
	}
	return StatusInProgress
}

// Recompute stores the status derived from subtasks on e and returns it.
// It is the only way an epic's status changes.
func (e *Epic) Recompute(subtasks []Subtask) Status {
	e.status = DeriveEpicStatus(*e, subtasks)
	return e.status
}
