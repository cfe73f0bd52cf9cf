// Package ui provides terminal output styling and an optional full-screen
// task viewer.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/claw-todo-go/internal/query"
	"github.com/nibzard/claw-todo-go/internal/todo"
)

// Source supplies the task collection the viewer displays.
type Source interface {
	All() []todo.Task
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	interval time.Duration
	color    bool
	now      func() time.Time
}

// WithInterval sets how often the viewer reloads the store.
func WithInterval(d time.Duration) TUIOption {
	return func(c *tuiConfig) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithColor toggles styled output.
func WithColor(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.color = enabled
	}
}

// WithClock sets the time source used for overdue checks.
func WithClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// RunTUI starts the viewer on src until the user quits or ctx ends.
func RunTUI(ctx context.Context, src Source, storePath string, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	return runProgram(ctx, newTUIModel(src, storePath, opts...))
}

func runProgram(ctx context.Context, model *tuiModel) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// viewFilter narrows the task list. An empty key shows every active task.
type viewFilter struct {
	key   string
	label string
	crit  query.Criterion
	state todo.Status
}

var viewFilters = map[string]viewFilter{
	"1": {key: "1", label: "todo", state: todo.StatusTodo},
	"2": {key: "2", label: "doing", state: todo.StatusDoing},
	"3": {key: "3", label: "blocked", state: todo.StatusBlocked},
	"4": {key: "4", label: "done", state: todo.StatusDone},
	"5": {key: "5", label: "all", crit: query.Criterion{Kind: query.KindAll}},
	"6": {key: "6", label: "overdue", crit: query.Criterion{Kind: query.KindOverdue}},
}

func (f viewFilter) apply(tasks []todo.Task, now time.Time) []todo.Task {
	if f.state != "" {
		out := make([]todo.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Status == f.state {
				out = append(out, t)
			}
		}
		return query.Sort(out)
	}
	crit := f.crit
	if crit.Kind == "" {
		crit = query.Criterion{Kind: query.KindActive}
	}
	return query.Filter(tasks, crit, now)
}

type tuiModel struct {
	src          Source
	storePath    string
	styles       *Styles
	now          func() time.Time
	tickInterval time.Duration
	data         *tuiData
	filter       viewFilter
	showHelp     bool
}

type tuiData struct {
	stats        query.Stats
	currentLabel string
	currentTask  *todo.Task
	allDone      bool
	listed       []todo.Task
	recent       []todo.Task
}

type tickMsg time.Time

func newTUIModel(src Source, storePath string, opts ...TUIOption) *tuiModel {
	c := &tuiConfig{interval: 2 * time.Second, color: true, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return &tuiModel{
		src:          src,
		storePath:    storePath,
		styles:       NewStyles(c.color),
		now:          c.now,
		tickInterval: c.interval,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "0":
			m.filter = viewFilter{}
			m.refresh()
			return m, nil
		}
		if f, ok := viewFilters[key]; ok {
			m.filter = f
			m.refresh()
		}
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeTitle(&b)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b, m.tickInterval)
		return b.String()
	}
	if m.data == nil {
		b.WriteString("Loading...\n\n")
		writeFooter(&b, m.tickInterval)
		return b.String()
	}

	m.writeOverview(&b)
	m.writeCurrentTask(&b)
	m.writeList(&b)
	m.writeRecent(&b)
	fmt.Fprintf(&b, "%s\n\n", m.styles.Dim("Store: "+m.storePath))
	writeFooter(&b, m.tickInterval)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) refresh() {
	m.data = buildTUIData(m.src.All(), m.filter, m.now())
}

func buildTUIData(tasks []todo.Task, filter viewFilter, now time.Time) *tuiData {
	data := &tuiData{
		stats:  query.ComputeStats(tasks),
		listed: filter.apply(tasks, now),
	}

	active := query.Sort(tasks)
	for i := range tasks {
		if tasks[i].Status == todo.StatusDoing {
			data.currentLabel = "Current Task"
			data.currentTask = &tasks[i]
			break
		}
	}
	if data.currentTask == nil {
		for i := range active {
			if active[i].Status == todo.StatusTodo {
				data.currentLabel = "Next Task"
				data.currentTask = &active[i]
				break
			}
		}
	}
	if data.currentTask == nil {
		data.currentLabel = "All Tasks Done"
		data.allDone = data.stats.Active() == 0
	}

	for _, t := range tasks {
		if t.Status == todo.StatusDone && t.Completed != nil {
			data.recent = append(data.recent, t)
		}
	}
	sort.SliceStable(data.recent, func(i, j int) bool {
		return data.recent[i].Completed.After(*data.recent[j].Completed)
	})
	if len(data.recent) > 5 {
		data.recent = data.recent[:5]
	}
	return data
}

func (m *tuiModel) writeTitle(b *strings.Builder) {
	title := "claw-todo"
	b.WriteString(m.styles.Title(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *tuiModel) writeOverview(b *strings.Builder) {
	st := m.data.stats
	b.WriteString(m.styles.Title("Task Overview") + "\n\n")
	fmt.Fprintf(b, "  %s Todo: %d  %s Doing: %d  %s Blocked: %d  %s Done: %d\n\n",
		todo.StatusTodo.Icon(), st.Count(todo.StatusTodo),
		todo.StatusDoing.Icon(), st.Count(todo.StatusDoing),
		todo.StatusBlocked.Icon(), st.Count(todo.StatusBlocked),
		todo.StatusDone.Icon(), st.Count(todo.StatusDone),
	)
}

func (m *tuiModel) writeCurrentTask(b *strings.Builder) {
	b.WriteString(m.styles.Title(m.data.currentLabel) + "\n\n")
	switch {
	case m.data.currentTask != nil:
		b.WriteString(m.formatTask(m.data.currentTask))
		b.WriteString("\n\n")
	case m.data.allDone:
		b.WriteString("  No pending tasks remaining.\n\n")
	default:
		b.WriteString("  Only blocked tasks remain.\n\n")
	}
}

func (m *tuiModel) writeList(b *strings.Builder) {
	label := "active"
	if m.filter.key != "" {
		label = m.filter.label
	}
	fmt.Fprintf(b, "%s\n\n", m.styles.Title(fmt.Sprintf("Tasks (%s)", label)))
	if len(m.data.listed) == 0 {
		b.WriteString("  No tasks found.\n\n")
		return
	}
	for i := range m.data.listed {
		b.WriteString(m.formatTask(&m.data.listed[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeRecent(b *strings.Builder) {
	b.WriteString(m.styles.Title("Recently Completed") + "\n\n")
	if len(m.data.recent) == 0 {
		b.WriteString("  No completed tasks yet.\n\n")
		return
	}
	for i := range m.data.recent {
		b.WriteString(m.formatTask(&m.data.recent[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Refresh data\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  1            Filter by todo\n")
	b.WriteString("  2            Filter by doing\n")
	b.WriteString("  3            Filter by blocked\n")
	b.WriteString("  4            Filter by done\n")
	b.WriteString("  5            Show all tasks\n")
	b.WriteString("  6            Show overdue tasks\n")
	b.WriteString("  0            Clear filter\n\n")
}

func writeFooter(b *strings.Builder, interval time.Duration) {
	fmt.Fprintf(b, "Press h for help | q to quit | Refreshing every %s\n", interval)
}

func (m *tuiModel) formatTask(t *todo.Task) string {
	line := fmt.Sprintf("  %s %s %s", t.Status.Icon(), t.Priority.Icon(), m.styles.TaskText(t.Priority, t.Text))
	if label := t.DueLabel(); label != "" {
		due := "📅 " + label
		if t.IsOverdue(m.now()) {
			due = m.styles.Overdue(due)
		}
		line += " " + due
	}
	if len(t.Tags) > 0 {
		line += " " + m.styles.Tag("#"+strings.Join(t.Tags, " #"))
	}
	return line + " " + m.styles.Dim("["+t.ID+"]")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
