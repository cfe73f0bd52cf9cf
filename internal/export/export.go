// Package export renders the task collection in formats meant for other
// tools: a Markdown checklist, YAML and the JSON store document.
package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/claw-todo-go/internal/query"
	"github.com/nibzard/claw-todo-go/internal/store"
	"github.com/nibzard/claw-todo-go/internal/todo"
)

// Format names an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMarkdown, FormatYAML, FormatJSON}

// ParseFormat maps a format name (or common alias) to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format %q (want markdown, yaml or json)", s)
}

// Write renders tasks to w in the given format.
func Write(w io.Writer, format Format, tasks []todo.Task) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatMarkdown:
		data = []byte(Markdown(tasks))
	case FormatYAML:
		data, err = YAML(tasks)
	case FormatJSON:
		data, err = store.Marshal(tasks)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Markdown renders a checklist with an Active section (by priority) and a
// Completed section (document order). Each line carries the task id in an
// HTML comment so the list can be mapped back to the store.
func Markdown(tasks []todo.Task) string {
	var active, done []todo.Task
	for _, t := range tasks {
		if t.IsActive() {
			active = append(active, t)
		} else {
			done = append(done, t)
		}
	}

	var b strings.Builder
	b.WriteString("# TODO List\n\n")

	if len(active) > 0 {
		b.WriteString("## Active\n")
		for _, t := range query.ByPriority(active) {
			fmt.Fprintf(&b, "- [ ] %s %s", markdownIcon(t.Priority), t.Text)
			if len(t.Tags) > 0 {
				b.WriteString(" #" + strings.Join(t.Tags, " #"))
			}
			if t.Due != "" {
				fmt.Fprintf(&b, " (Due: %s)", t.DueLabel())
			}
			fmt.Fprintf(&b, " <!-- id: %s -->\n", t.ID)
		}
		b.WriteString("\n")
	}

	if len(done) > 0 {
		b.WriteString("## Completed\n")
		for _, t := range done {
			fmt.Fprintf(&b, "- [x] %s <!-- id: %s -->\n", t.Text, t.ID)
		}
	}

	return b.String()
}

// markdownIcon maps anything that is not high or medium to the low marker.
func markdownIcon(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh, todo.PriorityMedium:
		return p.Icon()
	default:
		return todo.PriorityLow.Icon()
	}
}

// YAML renders the collection as a YAML sequence with 2-space indentation.
func YAML(tasks []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}
