package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/baiirun/tracker/internal/model"
	"github.com/baiirun/tracker/internal/tracker"
)

var errUsage = errors.New("usage")

// scriptRunner executes tracker commands, one per line, against a single
// manager. Lines starting with # are comments.
type scriptRunner struct {
	m   *tracker.Manager
	out printer
}

func (r *scriptRunner) run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		words, err := shellquote.Split(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := r.exec(words); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	return nil
}

func (r *scriptRunner) exec(words []string) error {
	if len(words) == 0 {
		return nil
	}
	cmd, args := words[0], words[1:]

	switch cmd {
	case "echo":
		return r.out.echo(strings.Join(args, " "))
	case "task":
		return r.createTask(args)
	case "epic":
		return r.createEpic(args)
	case "subtask":
		return r.createSubtask(args)
	case "status":
		return r.setStatus(args)
	case "rename":
		return r.rename(args)
	case "move":
		return r.move(args)
	case "show":
		return r.show(args)
	case "delete":
		return r.delete(args)
	case "clear":
		return r.clear(args)
	case "list":
		return r.list()
	case "history":
		return r.out.section("History", r.m.History())
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// nameAndDescription reads NAME [DESCRIPTION].
func nameAndDescription(cmd string, args []string) (string, *string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", nil, fmt.Errorf("%w: %s NAME [DESCRIPTION]", errUsage, cmd)
	}
	if len(args) == 1 {
		return args[0], nil, nil
	}
	desc := args[1]
	return args[0], &desc, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id: %s", raw)
	}
	return id, nil
}

func (r *scriptRunner) createTask(args []string) error {
	name, desc, err := nameAndDescription("task", args)
	if err != nil {
		return err
	}
	task, err := r.m.CreateTask(model.NewTask(name, desc))
	if err != nil {
		return err
	}
	return r.out.entity(task)
}

func (r *scriptRunner) createEpic(args []string) error {
	name, desc, err := nameAndDescription("epic", args)
	if err != nil {
		return err
	}
	epic, err := r.m.CreateEpic(model.NewEpic(name, desc))
	if err != nil {
		return err
	}
	return r.out.entity(epic)
}

func (r *scriptRunner) createSubtask(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: subtask EPIC_ID NAME [DESCRIPTION]", errUsage)
	}
	epicID, err := parseID(args[0])
	if err != nil {
		return err
	}
	name, desc, err := nameAndDescription("subtask EPIC_ID", args[1:])
	if err != nil {
		return err
	}
	subtask, err := r.m.CreateSubtask(model.NewSubtask(name, desc, epicID))
	if err != nil {
		return err
	}
	return r.out.entity(subtask)
}

func (r *scriptRunner) setStatus(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: status ID STATUS", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	status, ok := model.ParseStatus(args[1])
	if !ok {
		return fmt.Errorf("%w: %s", tracker.ErrInvalidStatus, args[1])
	}

	entity, err := r.m.Peek(id)
	if err != nil {
		return err
	}
	switch v := entity.(type) {
	case model.Task:
		v.Status = status
		return r.m.UpdateTask(v)
	case model.Subtask:
		v.Status = status
		return r.m.UpdateSubtask(v)
	default:
		return fmt.Errorf("epic status is derived from its subtasks; cannot set it on #%d", id)
	}
}

func (r *scriptRunner) rename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: rename ID NAME", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	entity, err := r.m.Peek(id)
	if err != nil {
		return err
	}
	switch v := entity.(type) {
	case model.Task:
		v.Name = args[1]
		return r.m.UpdateTask(v)
	case model.Epic:
		v.Name = args[1]
		return r.m.UpdateEpic(v)
	case model.Subtask:
		v.Name = args[1]
		return r.m.UpdateSubtask(v)
	}
	return nil
}

func (r *scriptRunner) move(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: move SUBTASK_ID EPIC_ID", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	epicID, err := parseID(args[1])
	if err != nil {
		return err
	}

	entity, err := r.m.Peek(id)
	if err != nil {
		return err
	}
	subtask, ok := entity.(model.Subtask)
	if !ok {
		return fmt.Errorf("#%d is a %s, only subtasks can move", id, entity.EntityKind())
	}
	subtask.EpicID = epicID
	return r.m.UpdateSubtask(subtask)
}

func (r *scriptRunner) show(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: show ID", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	entity, err := r.m.Peek(id)
	if err != nil {
		return err
	}
	var viewed model.Entity
	switch entity.EntityKind() {
	case model.KindTask:
		viewed, err = r.m.Task(id)
	case model.KindEpic:
		viewed, err = r.m.Epic(id)
	case model.KindSubtask:
		viewed, err = r.m.Subtask(id)
	}
	if err != nil {
		return err
	}
	return r.out.entity(viewed)
}

func (r *scriptRunner) delete(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: delete ID", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	entity, err := r.m.Peek(id)
	if err != nil {
		return err
	}
	switch entity.EntityKind() {
	case model.KindTask:
		return r.m.DeleteTask(id)
	case model.KindEpic:
		return r.m.DeleteEpic(id)
	default:
		return r.m.DeleteSubtask(id)
	}
}

func (r *scriptRunner) clear(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: clear tasks|epics|subtasks", errUsage)
	}
	switch args[0] {
	case "tasks":
		r.m.ClearTasks()
	case "epics":
		r.m.ClearEpics()
	case "subtasks":
		r.m.ClearSubtasks()
	default:
		return fmt.Errorf("%w: clear tasks|epics|subtasks", errUsage)
	}
	return nil
}

func (r *scriptRunner) list() error {
	if err := r.out.section("Tasks", tasksAsEntities(r.m.Tasks())); err != nil {
		return err
	}
	if err := r.out.section("Epics", epicsAsEntities(r.m.Epics())); err != nil {
		return err
	}
	return r.out.section("Subtasks", subtasksAsEntities(r.m.Subtasks()))
}
