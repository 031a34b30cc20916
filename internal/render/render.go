// Package render maps the task board to card descriptions.
//
// Board is a pure function: the same tasks and drag source always produce
// the same cards. The terminal and browser adapters only lay cards out.
package render

import (
	"github.com/SyrineLarbi/Daily-planner/internal/model"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
)

// Card classes, shared with the browser stylesheet
const (
	ClassCard      = "task-card"
	ClassCompleted = "completed"
	ClassDragging  = "dragging"
)

// NoDrag is passed to Board when no card is being dragged
const NoDrag = -1

// Card describes one rendered task
type Card struct {
	Position    int      `json:"position"`
	Title       string   `json:"title"`
	Color       string   `json:"color"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	TimeRange   string   `json:"time_range"`
	Description string   `json:"description"` // stored HTML, unsanitized
	Lines       []string `json:"lines,omitempty"`
	Image       string   `json:"image"`
	CustomImage bool     `json:"custom_image"`
	Completed   bool     `json:"completed"`
	Dragging    bool     `json:"dragging"`
	Classes     []string `json:"classes"`
}

// Board renders every task in order
func Board(tasks []model.Task, dragSource int) []Card {
	cards := make([]Card, 0, len(tasks))
	for i := range tasks {
		cards = append(cards, TaskCard(tasks[i], i, i == dragSource))
	}
	return cards
}

// TaskCard renders a single task at position
func TaskCard(task model.Task, position int, dragging bool) Card {
	classes := []string{ClassCard}
	if task.Completed {
		classes = append(classes, ClassCompleted)
	}
	if dragging {
		classes = append(classes, ClassDragging)
	}

	return Card{
		Position:    position,
		Title:       task.Title,
		Color:       task.Color,
		Start:       task.Start,
		End:         task.End,
		TimeRange:   task.TimeRange(),
		Description: task.Description,
		Lines:       richtext.Lines(task.Description),
		Image:       task.IconRef(),
		CustomImage: task.HasCustomImage(),
		Completed:   task.Completed,
		Dragging:    dragging,
		Classes:     classes,
	}
}
