package todo

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	task, warnings, err := New("Write docs", NewOptions{Now: now})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings: got %v, want none", warnings)
	}
	if task.Text != "Write docs" {
		t.Errorf("Text: got %q, want %q", task.Text, "Write docs")
	}
	if task.Status != StatusTodo {
		t.Errorf("Status: got %s, want todo", task.Status)
	}
	if task.Priority != PriorityMedium {
		t.Errorf("Priority: got %s, want medium", task.Priority)
	}
	if task.Tags == nil || len(task.Tags) != 0 {
		t.Errorf("Tags: got %#v, want empty non-nil slice", task.Tags)
	}
	if task.Completed != nil {
		t.Errorf("Completed: got %v, want nil", task.Completed)
	}
	if task.Due != "" {
		t.Errorf("Due: got %q, want empty", task.Due)
	}
	if !task.Created.Equal(now) {
		t.Errorf("Created: got %v, want %v", task.Created, now)
	}
	if task.ID == "" {
		t.Error("ID is empty")
	}
}

func TestNewRejectsEmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		_, _, err := New(text, NewOptions{})
		if !errors.Is(err, ErrRejected) {
			t.Errorf("New(%q): got err %v, want ErrRejected", text, err)
		}
	}
}

func TestNewPriority(t *testing.T) {
	tests := []struct {
		name        string
		priority    string
		want        Priority
		wantWarning bool
	}{
		{"empty defaults to medium", "", PriorityMedium, false},
		{"high", "high", PriorityHigh, false},
		{"low", "low", PriorityLow, false},
		{"uppercase coerced", "HIGH", PriorityMedium, true},
		{"padded coerced", " low", PriorityMedium, true},
		{"invalid coerced", "urgent", PriorityMedium, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, warnings, err := New("task", NewOptions{Priority: tt.priority})
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if task.Priority != tt.want {
				t.Errorf("Priority: got %s, want %s", task.Priority, tt.want)
			}
			if got := len(warnings) > 0; got != tt.wantWarning {
				t.Errorf("warning emitted = %v, want %v (%v)", got, tt.wantWarning, warnings)
			}
			if tt.wantWarning && !strings.Contains(warnings[0], tt.priority) {
				t.Errorf("warning %q does not mention %q", warnings[0], tt.priority)
			}
		})
	}
}

func TestNewTagsDeduplicated(t *testing.T) {
	task, _, err := New("task", NewOptions{Tags: []string{"work", "home", "work", " ", "home"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	want := []string{"work", "home"}
	if !reflect.DeepEqual(task.Tags, want) {
		t.Errorf("Tags: got %v, want %v", task.Tags, want)
	}
}

func TestNewIDUnique(t *testing.T) {
	now := time.Now()
	var existing []Task
	for i := 0; i < 200; i++ {
		task, _, err := New("task", NewOptions{Now: now, Existing: existing})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		for _, prior := range existing {
			if prior.ID == task.ID {
				t.Fatalf("duplicate id %s", task.ID)
			}
		}
		existing = append(existing, task)
	}
}

func TestNewIDShape(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id, err := NewID(now)
	if err != nil {
		t.Fatalf("NewID failed: %v", err)
	}
	prefix := "loyw3v28"
	if !strings.HasPrefix(id, prefix) {
		t.Errorf("id %q does not start with base36 time %q", id, prefix)
	}
	if len(id) != len(prefix)+idSuffixLength {
		t.Errorf("id length: got %d, want %d", len(id), len(prefix)+idSuffixLength)
	}
	for _, c := range id {
		if !strings.ContainsRune(idAlphabet, c) {
			t.Errorf("id %q contains %q outside base36", id, c)
		}
	}
}

func TestParseDue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"2024-01-15", "2024-01-15T00:00:00.000Z"},
		{"2024/01/15", "2024-01-15T00:00:00.000Z"},
		{"2024-01-15T10:30", "2024-01-15T10:30:00.000Z"},
		{"2024-01-15T10:30:00+02:00", "2024-01-15T08:30:00.000Z"},
		{"2024-01-15T00:00:00.000Z", "2024-01-15T00:00:00.000Z"},
		{"next tuesday", "next tuesday"},
		{"  soon  ", "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseDue(tt.in); got != tt.want {
				t.Errorf("ParseDue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDueTimeAndOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	past := Task{Status: StatusTodo, Due: ParseDue("2024-05-01")}
	if !past.IsOverdue(now) {
		t.Error("past due active task should be overdue")
	}

	done := past
	done.Status = StatusDone
	if done.IsOverdue(now) {
		t.Error("done task should never be overdue")
	}

	future := Task{Status: StatusTodo, Due: ParseDue("2024-07-01")}
	if future.IsOverdue(now) {
		t.Error("future due task should not be overdue")
	}

	garbage := Task{Status: StatusTodo, Due: "someday"}
	if _, ok := garbage.DueTime(); ok {
		t.Error("unparseable due should not report a time")
	}
	if garbage.IsOverdue(now) {
		t.Error("unparseable due should not be overdue")
	}
}

func TestParsePriorityExact(t *testing.T) {
	for _, p := range Priorities {
		if got, ok := ParsePriority(string(p)); !ok || got != p {
			t.Errorf("ParsePriority(%q) = %q, %v", p, got, ok)
		}
	}
	for _, s := range []string{"HIGH", "Low", " medium", "", "urgent"} {
		if _, ok := ParsePriority(s); ok {
			t.Errorf("ParsePriority(%q) should be rejected", s)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() < PriorityMedium.Rank() && PriorityMedium.Rank() < PriorityLow.Rank()) {
		t.Error("ranks must order high < medium < low")
	}
	if Priority("urgent").Rank() <= PriorityLow.Rank() {
		t.Error("unknown priority should rank after low")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if Status("archived").Valid() {
		t.Error("archived should not be valid")
	}
}

func TestIcons(t *testing.T) {
	if StatusDone.Icon() != "●" || StatusTodo.Icon() != "○" || Status("odd").Icon() != "○" {
		t.Error("status icons mismatch")
	}
	if PriorityHigh.Icon() != "🔴" || PriorityLow.Icon() != "🟢" || Priority("urgent").Icon() != "⚪" {
		t.Error("priority icons mismatch")
	}
}

func TestDueLabel(t *testing.T) {
	tests := []struct {
		due  string
		want string
	}{
		{"", ""},
		{"2024-03-05T00:00:00.000Z", "Mar 5"},
		{"2024-12-31", "Dec 31"},
		{"next week", "next week"},
	}
	for _, tt := range tests {
		task := Task{Due: tt.due}
		if got := task.DueLabel(); got != tt.want {
			t.Errorf("DueLabel(%q) = %q, want %q", tt.due, got, tt.want)
		}
	}
}
