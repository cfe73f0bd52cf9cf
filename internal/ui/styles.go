package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/claw-todo-go/internal/todo"
)

// Styles renders terminal text. With color disabled every method returns
// its input unchanged.
type Styles struct {
	enabled bool

	title    lipgloss.Style
	dim      lipgloss.Style
	success  lipgloss.Style
	warning  lipgloss.Style
	failure  lipgloss.Style
	overdue  lipgloss.Style
	tag      lipgloss.Style
	priority map[todo.Priority]lipgloss.Style
}

// NewStyles returns the output styles. color false yields plain text.
func NewStyles(color bool) *Styles {
	return &Styles{
		enabled: color,
		title:   lipgloss.NewStyle().Bold(true),
		dim:     lipgloss.NewStyle().Faint(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		overdue: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		tag:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		priority: map[todo.Priority]lipgloss.Style{
			todo.PriorityHigh:   lipgloss.NewStyle().Bold(true),
			todo.PriorityMedium: lipgloss.NewStyle(),
			todo.PriorityLow:    lipgloss.NewStyle().Faint(true),
		},
	}
}

func (s *Styles) render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// Title renders a heading.
func (s *Styles) Title(text string) string { return s.render(s.title, text) }

// Dim renders secondary text such as ids.
func (s *Styles) Dim(text string) string { return s.render(s.dim, text) }

// Success renders a confirmation.
func (s *Styles) Success(text string) string { return s.render(s.success, text) }

// Warning renders a warning.
func (s *Styles) Warning(text string) string { return s.render(s.warning, text) }

// Failure renders an error message.
func (s *Styles) Failure(text string) string { return s.render(s.failure, text) }

// Overdue renders a past due date.
func (s *Styles) Overdue(text string) string { return s.render(s.overdue, text) }

// Tag renders a tag list.
func (s *Styles) Tag(text string) string { return s.render(s.tag, text) }

// TaskText renders task text weighted by priority.
func (s *Styles) TaskText(p todo.Priority, text string) string {
	style, ok := s.priority[p]
	if !ok {
		return text
	}
	return s.render(style, text)
}
