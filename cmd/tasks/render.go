package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/baiirun/tracker/internal/config"
	"github.com/baiirun/tracker/internal/model"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusColors = map[model.Status]lipgloss.Color{
		model.StatusNew:        lipgloss.Color("252"),
		model.StatusInProgress: lipgloss.Color("214"),
		model.StatusDone:       lipgloss.Color("42"),
	}
)

// EntityJSON is the JSON shape of a task, epic or subtask.
type EntityJSON struct {
	ID          int     `json:"id"`
	Kind        string  `json:"kind"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	EpicID      *int    `json:"epic_id,omitempty"`
	Subtasks    []int   `json:"subtasks,omitempty"`
}

type SectionJSON struct {
	Title string       `json:"title"`
	Items []EntityJSON `json:"items"`
}

type EchoJSON struct {
	Echo string `json:"echo"`
}

func toEntityJSON(e model.Entity) EntityJSON {
	out := EntityJSON{
		ID:     e.EntityID(),
		Kind:   string(e.EntityKind()),
		Name:   e.EntityName(),
		Status: string(e.EntityStatus()),
	}
	switch v := e.(type) {
	case model.Task:
		out.Description = v.Description
	case model.Epic:
		out.Description = v.Description
		out.Subtasks = v.SubtaskIDs()
	case model.Subtask:
		out.Description = v.Description
		epicID := v.EpicID
		out.EpicID = &epicID
	}
	return out
}

// printer writes results in the configured output format.
type printer struct {
	w      io.Writer
	format string
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p printer) echo(text string) error {
	if p.format == config.OutputJSON {
		return p.json(EchoJSON{Echo: text})
	}
	_, err := fmt.Fprintln(p.w, titleStyle.Render(text))
	return err
}

func (p printer) entity(e model.Entity) error {
	if p.format == config.OutputJSON {
		return p.json(toEntityJSON(e))
	}
	_, err := fmt.Fprintln(p.w, formatEntity(e))
	return err
}

func (p printer) section(title string, entities []model.Entity) error {
	if p.format == config.OutputJSON {
		items := make([]EntityJSON, 0, len(entities))
		for _, e := range entities {
			items = append(items, toEntityJSON(e))
		}
		return p.json(SectionJSON{Title: title, Items: items})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d)\n", titleStyle.Render(title), len(entities))
	if len(entities) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, e := range entities {
		b.WriteString("  ")
		b.WriteString(formatEntity(e))
		b.WriteString("\n")
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

func formatEntity(e model.Entity) string {
	status := e.EntityStatus()
	statusStyle := lipgloss.NewStyle().Foreground(statusColors[status])

	line := fmt.Sprintf("#%d %s %s %s",
		e.EntityID(),
		kindStyle.Render(fmt.Sprintf("%-7s", e.EntityKind())),
		statusStyle.Render(fmt.Sprintf("%-11s", status)),
		e.EntityName(),
	)

	switch v := e.(type) {
	case model.Epic:
		if ids := v.SubtaskIDs(); len(ids) > 0 {
			line += fmt.Sprintf(" subtasks=%v", ids)
		}
	case model.Subtask:
		line += fmt.Sprintf(" epic=#%d", v.EpicID)
	}

	if desc := description(e); desc != "" {
		line += " - " + desc
	}
	return line
}

func description(e model.Entity) string {
	var desc *string
	switch v := e.(type) {
	case model.Task:
		desc = v.Description
	case model.Epic:
		desc = v.Description
	case model.Subtask:
		desc = v.Description
	}
	if desc == nil {
		return ""
	}
	return *desc
}

func tasksAsEntities(tasks []model.Task) []model.Entity {
	out := make([]model.Entity, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t)
	}
	return out
}

func epicsAsEntities(epics []model.Epic) []model.Entity {
	out := make([]model.Entity, 0, len(epics))
	for _, e := range epics {
		out = append(out, e)
	}
	return out
}

func subtasksAsEntities(subtasks []model.Subtask) []model.Entity {
	out := make([]model.Entity, 0, len(subtasks))
	for _, s := range subtasks {
		out = append(out, s)
	}
	return out
}
