package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/claw-todo-go/internal/todo"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func task(id string, status todo.Status, priority todo.Priority, due string, tags ...string) todo.Task {
	if tags == nil {
		tags = []string{}
	}
	return todo.Task{
		ID:       id,
		Text:     "task " + id,
		Status:   status,
		Priority: priority,
		Created:  now.Add(-24 * time.Hour),
		Due:      due,
		Tags:     tags,
	}
}

func fixture() []todo.Task {
	return []todo.Task{
		task("a", todo.StatusTodo, todo.PriorityLow, ""),
		task("b", todo.StatusDone, todo.PriorityHigh, "2024-06-01T00:00:00.000Z", "work"),
		task("c", todo.StatusDoing, todo.PriorityHigh, "2024-06-20T00:00:00.000Z", "work"),
		task("d", todo.StatusTodo, todo.PriorityHigh, "2024-06-10T00:00:00.000Z", "home"),
		task("e", todo.StatusBlocked, todo.PriorityMedium, "", "Work"),
		task("f", todo.StatusTodo, todo.PriorityHigh, ""),
		task("g", todo.StatusTodo, todo.PriorityMedium, "someday"),
		task("h", todo.StatusTodo, todo.PriorityMedium, "2024-06-14T23:59:59.000Z"),
	}
}

func ids(tasks []todo.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in   string
		want Criterion
	}{
		{"", Criterion{Kind: KindActive}},
		{"all", Criterion{Kind: KindAll}},
		{"done", Criterion{Kind: KindDone}},
		{"active", Criterion{Kind: KindActive}},
		{"overdue", Criterion{Kind: KindOverdue}},
		{"high", Criterion{Kind: KindPriority, Priority: todo.PriorityHigh}},
		{"low", Criterion{Kind: KindPriority, Priority: todo.PriorityLow}},
		{"work", Criterion{Kind: KindTag, Tag: "work"}},
		{"HIGH", Criterion{Kind: KindTag, Tag: "HIGH"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseCriterion(tt.in)
			assert.Equal(t, tt.want, got)
			if tt.in != "" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		criterion string
		want      []string
	}{
		{"all", []string{"b", "d", "c", "f", "h", "e", "g", "a"}},
		{"active", []string{"d", "c", "f", "h", "e", "g", "a"}},
		{"", []string{"d", "c", "f", "h", "e", "g", "a"}},
		{"done", []string{"b"}},
		{"overdue", []string{"d", "h"}},
		{"high", []string{"d", "c", "f"}},
		{"medium", []string{"h", "e", "g"}},
		{"work", []string{"b", "c"}},
		{"nothing", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.criterion, func(t *testing.T) {
			got := Filter(fixture(), ParseCriterion(tt.criterion), now)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterDoesNotReorderInput(t *testing.T) {
	tasks := fixture()
	before := ids(tasks)
	got := Filter(tasks, Criterion{Kind: KindAll}, now)
	require.Len(t, got, len(tasks))

	assert.Equal(t, before, ids(tasks))
	got[0].Text = "changed"
	assert.NotEqual(t, "changed", tasks[1].Text, "result must not alias the input")
}

func TestActiveAndDonePartitionCollection(t *testing.T) {
	tasks := fixture()
	active := Filter(tasks, Criterion{Kind: KindActive}, now)
	done := Filter(tasks, Criterion{Kind: KindDone}, now)

	assert.Equal(t, len(tasks), len(active)+len(done))
	seen := make(map[string]bool)
	for _, tk := range append(active, done...) {
		seen[tk.ID] = true
	}
	assert.Len(t, seen, len(tasks), "a task appeared in both partitions")
}

func TestOverdueIsSubsetOfActive(t *testing.T) {
	tasks := fixture()
	active := make(map[string]bool)
	for _, tk := range Filter(tasks, Criterion{Kind: KindActive}, now) {
		active[tk.ID] = true
	}
	for _, ov := range Filter(tasks, Criterion{Kind: KindOverdue}, now) {
		assert.True(t, active[ov.ID], "overdue task %s is not active", ov.ID)
		due, ok := ov.DueTime()
		require.True(t, ok)
		assert.True(t, due.Before(now), "task %s due %v is not before now", ov.ID, due)
	}
}

func TestSortOrderInvariant(t *testing.T) {
	sorted := Sort(fixture())
	for i := 0; i+1 < len(sorted); i++ {
		a, b := sorted[i], sorted[i+1]
		ra, rb := a.Priority.Rank(), b.Priority.Rank()
		if ra != rb {
			assert.Less(t, ra, rb, "%s before %s", a.ID, b.ID)
			continue
		}
		da, aok := a.DueTime()
		db, bok := b.DueTime()
		switch {
		case aok && bok:
			assert.False(t, db.Before(da), "%s due after %s", a.ID, b.ID)
		case !aok:
			assert.False(t, bok, "%s has no due date but precedes dated %s", a.ID, b.ID)
		}
	}
}

func TestSortIsStableForTies(t *testing.T) {
	tasks := []todo.Task{
		task("x1", todo.StatusTodo, todo.PriorityLow, ""),
		task("x2", todo.StatusTodo, todo.PriorityLow, ""),
		task("x3", todo.StatusTodo, todo.PriorityLow, ""),
	}
	assert.Equal(t, []string{"x1", "x2", "x3"}, ids(Sort(tasks)))
}

func TestSortUnknownPriorityLast(t *testing.T) {
	tasks := []todo.Task{
		task("odd", todo.StatusTodo, todo.Priority("urgent"), ""),
		task("low", todo.StatusTodo, todo.PriorityLow, ""),
	}
	assert.Equal(t, []string{"low", "odd"}, ids(Sort(tasks)))
}

func TestFind(t *testing.T) {
	tasks := []todo.Task{
		{ID: "1", Text: "Buy milk", Priority: todo.PriorityLow, Status: todo.StatusTodo, Tags: []string{}},
		{ID: "2", Text: "Call mom", Priority: todo.PriorityMedium, Status: todo.StatusDone, Tags: []string{"Family"}},
		{ID: "3", Text: "MILK the cow", Priority: todo.PriorityHigh, Status: todo.StatusTodo, Due: "2030-01-01", Tags: []string{}},
		{ID: "4", Text: "Fix milkshake machine", Priority: todo.PriorityHigh, Status: todo.StatusTodo, Due: "2020-01-01", Tags: []string{}},
	}

	assert.Equal(t, []string{"3", "4", "1"}, ids(Find(tasks, "Milk")))
	assert.Equal(t, []string{"2"}, ids(Find(tasks, "family")), "search ignores status and matches tags")
	assert.Empty(t, Find(tasks, "absent"))
	assert.NotNil(t, Find(nil, "x"))
}

func TestFindDiffersFromFilterOnDueOrder(t *testing.T) {
	tasks := []todo.Task{
		{ID: "late", Text: "report", Priority: todo.PriorityHigh, Status: todo.StatusTodo, Due: "2030-01-01", Tags: []string{}},
		{ID: "soon", Text: "report", Priority: todo.PriorityHigh, Status: todo.StatusTodo, Due: "2020-01-01", Tags: []string{}},
	}
	assert.Equal(t, []string{"late", "soon"}, ids(Find(tasks, "report")))
	assert.Equal(t, []string{"soon", "late"}, ids(Filter(tasks, Criterion{Kind: KindAll}, now)))
}

func TestComputeStats(t *testing.T) {
	tasks := fixture()
	tasks = append(tasks, task("z", todo.Status("archived"), todo.PriorityLow, ""))

	st := ComputeStats(tasks)
	assert.Equal(t, 9, st.Total)
	assert.Equal(t, 5, st.Count(todo.StatusTodo))
	assert.Equal(t, 1, st.Count(todo.StatusDoing))
	assert.Equal(t, 1, st.Count(todo.StatusDone))
	assert.Equal(t, 1, st.Count(todo.StatusBlocked))
	assert.Equal(t, 1, st.Count("archived"))
	assert.Equal(t, 8, st.Active())

	empty := ComputeStats(nil)
	assert.Equal(t, 0, empty.Total)
	for _, s := range todo.Statuses {
		_, ok := empty.Counts[s]
		assert.True(t, ok, "status %s missing from counts", s)
	}
}

func TestByPriorityIgnoresDue(t *testing.T) {
	tasks := []todo.Task{
		task("m", todo.StatusTodo, todo.PriorityMedium, ""),
		task("late", todo.StatusTodo, todo.PriorityHigh, "2030-01-01"),
		task("soon", todo.StatusTodo, todo.PriorityHigh, "2020-01-01"),
	}
	assert.Equal(t, []string{"late", "soon", "m"}, ids(ByPriority(tasks)))
	assert.Equal(t, []string{"m", "late", "soon"}, ids(tasks), "input must keep its order")
}
