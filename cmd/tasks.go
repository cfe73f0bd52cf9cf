package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/claw-todo-go/internal/store"
	"github.com/nibzard/claw-todo-go/internal/todo"
)

const (
	usageAdd      = "Usage: claw-todo add <task> [--priority high|medium|low] [--tag tagname] [--due YYYY-MM-DD]"
	usageFind     = "Usage: claw-todo find <query>"
	usageDone     = "Usage: claw-todo done <id>"
	usageDoing    = "Usage: claw-todo doing <id>"
	usageBlock    = "Usage: claw-todo block <id>"
	usagePriority = "Usage: claw-todo priority <id> <high|medium|low>"
	usageDue      = "Usage: claw-todo due <id> <YYYY-MM-DD>"
	usageTag      = "Usage: claw-todo tag <id> <tag1> [tag2...]"
	usageEdit     = "Usage: claw-todo edit <id> <text>"
	usageRm       = "Usage: claw-todo rm <id>"

	priorityMessage = "Priority must be: high, medium, or low"
)

// addArgs is the result of parsing the add command's inline flags, which
// may appear anywhere among the words of the task text.
type addArgs struct {
	text     string
	priority string
	tags     []string
	due      string
	json     bool
}

func parseAddArgs(args []string) addArgs {
	var (
		out   addArgs
		words []string
	)
	next := func(i *int) string {
		if *i+1 < len(args) {
			*i++
			return args[*i]
		}
		return ""
	}
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--priority", "-p":
			out.priority = next(&i)
		case "--tag", "-t":
			if tag := next(&i); tag != "" {
				out.tags = append(out.tags, tag)
			}
		case "--due", "-d":
			out.due = next(&i)
		case "--json":
			out.json = true
		default:
			words = append(words, arg)
		}
	}
	out.text = strings.Join(words, " ")
	return out
}

// splitJSONFlag removes --json from args and reports whether it was present.
func splitJSONFlag(args []string) ([]string, bool) {
	rest := make([]string, 0, len(args))
	found := false
	for _, arg := range args {
		if arg == "--json" {
			found = true
			continue
		}
		rest = append(rest, arg)
	}
	return rest, found
}

func (a *app) addCommand(args []string) error {
	in := parseAddArgs(args)
	if strings.TrimSpace(in.text) == "" {
		fmt.Fprintln(a.stdout, usageAdd)
		return reported("add: task text is empty")
	}

	task, warnings, err := a.svc.Add(in.text, in.priority, in.tags, in.due)
	for _, w := range warnings {
		fmt.Fprintln(a.stdout, a.styles.Warning(w))
	}
	if err != nil {
		return a.report(err, usageAdd)
	}

	if in.json {
		return writeJSON(a.stdout, task)
	}

	var extras []string
	if task.Priority != todo.PriorityMedium {
		extras = append(extras, fmt.Sprintf("%s %s", task.Priority.Icon(), task.Priority))
	}
	if len(task.Tags) > 0 {
		extras = append(extras, a.styles.Tag(hashTags(task.Tags)))
	}
	if task.Due != "" {
		extras = append(extras, "📅 "+task.DueLabel())
	}
	extra := ""
	if len(extras) > 0 {
		extra = " (" + strings.Join(extras, ", ") + ")"
	}
	fmt.Fprintf(a.stdout, "%s %s%s %s\n", a.styles.Success("✓ Added:"), task.Text, extra, a.styles.Dim("["+task.ID+"]"))
	return nil
}

func (a *app) listCommand(args []string) error {
	args, asJSON := splitJSONFlag(args)
	criterion := ""
	if len(args) > 0 {
		criterion = args[0]
	}
	return a.printTasks(a.svc.List(criterion), asJSON)
}

func (a *app) findCommand(args []string) error {
	args, asJSON := splitJSONFlag(args)
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		fmt.Fprintln(a.stdout, usageFind)
		return reported("find: empty query")
	}
	return a.printTasks(a.svc.Find(q), asJSON)
}

func (a *app) doneCommand(args []string) error {
	return a.statusCommand(args, usageDone, a.svc.Done, "✓ Completed:")
}

func (a *app) doingCommand(args []string) error {
	return a.statusCommand(args, usageDoing, a.svc.Doing, "◐ In progress:")
}

func (a *app) blockCommand(args []string) error {
	return a.statusCommand(args, usageBlock, a.svc.Block, "✖ Blocked:")
}

func (a *app) statusCommand(args []string, usage string, op func(string) (todo.Task, error), label string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stdout, usage)
		return reported("missing task id")
	}
	task, err := op(args[0])
	if err != nil {
		return a.report(err, usage)
	}
	fmt.Fprintf(a.stdout, "%s %s\n", a.styles.Success(label), task.Text)
	return nil
}

func (a *app) priorityCommand(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stdout, usagePriority)
		return reported("priority: missing arguments")
	}
	if _, ok := todo.ParsePriority(args[1]); !ok {
		fmt.Fprintln(a.stdout, priorityMessage)
		return reported("priority: invalid level %q", args[1])
	}
	task, err := a.svc.Priority(args[0], args[1])
	if err != nil {
		return a.report(err, priorityMessage)
	}
	fmt.Fprintf(a.stdout, "%s Priority set: %s\n", task.Priority.Icon(), task.Text)
	return nil
}

func (a *app) dueCommand(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stdout, usageDue)
		return reported("due: missing arguments")
	}
	task, err := a.svc.Due(args[0], args[1])
	if err != nil {
		return a.report(err, usageDue)
	}
	fmt.Fprintf(a.stdout, "📅 Due date set: %s → %s\n", task.Text, task.DueLabel())
	return nil
}

func (a *app) tagCommand(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stdout, usageTag)
		return reported("tag: missing arguments")
	}
	task, err := a.svc.Tag(args[0], args[1:])
	if err != nil {
		return a.report(err, usageTag)
	}
	fmt.Fprintf(a.stdout, "🏷️  Tagged: %s %s\n", task.Text, a.styles.Tag(hashTags(args[1:])))
	return nil
}

func (a *app) editCommand(args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.stdout, usageEdit)
		return reported("edit: missing arguments")
	}
	task, err := a.svc.Edit(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return a.report(err, usageEdit)
	}
	fmt.Fprintf(a.stdout, "✏️  Edited: %s\n", task.Text)
	return nil
}

func (a *app) rmCommand(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.stdout, usageRm)
		return reported("rm: missing task id")
	}
	task, err := a.svc.Remove(args[0])
	if err != nil {
		return a.report(err, usageRm)
	}
	fmt.Fprintf(a.stdout, "🗑️  Removed: %s\n", task.Text)
	return nil
}

func (a *app) clearCommand(_ []string) error {
	n, err := a.svc.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "🧹 Cleared %d completed task(s)\n", n)
	return nil
}

func (a *app) statsCommand(_ []string) error {
	st := a.svc.Stats()
	w := a.stdout
	fmt.Fprintf(w, "\n  %s\n  %s\n", a.styles.Title("STATS"), strings.Repeat("─", 30))
	fmt.Fprintf(w, "  %s Todo:     %d\n", todo.StatusTodo.Icon(), st.Count(todo.StatusTodo))
	fmt.Fprintf(w, "  %s Doing:    %d\n", todo.StatusDoing.Icon(), st.Count(todo.StatusDoing))
	fmt.Fprintf(w, "  %s Done:     %d\n", todo.StatusDone.Icon(), st.Count(todo.StatusDone))
	fmt.Fprintf(w, "  %s Blocked:  %d\n", todo.StatusBlocked.Icon(), st.Count(todo.StatusBlocked))
	fmt.Fprintln(w, "  ─────────────────")
	fmt.Fprintf(w, "  Total:      %d\n\n", st.Total)
	return nil
}

// report prints the user-facing message for a service error. NotFound
// names the id; Rejected prints the usage or constraint line.
func (a *app) report(err error, rejectedMsg string) error {
	var notFound *todo.NotFoundError
	switch {
	case errors.As(err, &notFound):
		fmt.Fprintln(a.stdout, a.styles.Failure("Task not found: "+notFound.ID))
		return fmt.Errorf("%w: %w", errReported, err)
	case errors.Is(err, todo.ErrRejected):
		fmt.Fprintln(a.stdout, rejectedMsg)
		return fmt.Errorf("%w: %w", errReported, err)
	}
	return err
}

func (a *app) printTasks(list []todo.Task, asJSON bool) error {
	if len(list) == 0 {
		if asJSON {
			fmt.Fprintln(a.stdout, "[]")
		} else {
			fmt.Fprintln(a.stdout, "No tasks found.")
		}
		return nil
	}
	if asJSON {
		data, err := store.Marshal(list)
		if err != nil {
			return err
		}
		_, err = a.stdout.Write(data)
		return err
	}

	now := a.svc.Now()
	w := a.stdout
	fmt.Fprintf(w, "\n  %s\n  %s\n", a.styles.Title("TASKS"), strings.Repeat("─", 50))
	for i := range list {
		t := &list[i]
		line := fmt.Sprintf("  %s %s %s", t.Status.Icon(), t.Priority.Icon(), a.styles.TaskText(t.Priority, t.Text))
		if label := t.DueLabel(); label != "" {
			due := "📅 " + label
			if t.IsOverdue(now) {
				due = a.styles.Overdue(due)
			}
			line += " " + due
		}
		if len(t.Tags) > 0 {
			line += " " + a.styles.Tag(hashTags(t.Tags))
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    └─ %s %s\n", a.styles.Dim("["+t.ID+"]"), t.Status)
	}
	fmt.Fprintln(w)
	return nil
}

func hashTags(tags []string) string {
	return "#" + strings.Join(tags, " #")
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
