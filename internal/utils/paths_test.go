package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("CLAW_TODO_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  filepath.Join(home, "test"),
		}, struct {
			input string
			want  string
		}{
			input: `%CLAW_TODO_TEST_HOME%\TODO.json`,
			want:  filepath.Join(home, "TODO.json"),
		})
	} else {
		t.Setenv("CLAW_TODO_TEST_DIR", "/srv/todo")
		tests = append(tests, struct {
			input string
			want  string
		}{
			input: `~\test`,
			want:  `~\test`,
		}, struct {
			input string
			want  string
		}{
			input: "$CLAW_TODO_TEST_DIR/TODO.json",
			want:  "/srv/todo/TODO.json",
		})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ExpandPath(tt.input)
			if got != tt.want {
				t.Errorf("ExpandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/status", "[0].status"},
		{"#/2/tags/1", "[2].tags[1]"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.in); got != tt.want {
			t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandPercentVars(t *testing.T) {
	t.Setenv("CLAW_TODO_PCT", "C:\\Users\\me")
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{`%CLAW_TODO_PCT%\TODO.json`, `C:\Users\me\TODO.json`},
		{"100% done", "100% done"},
		{"%%", "%%"},
		{"%CLAW_TODO_UNSET_VAR%", "%CLAW_TODO_UNSET_VAR%"},
		{"50% of %CLAW_TODO_PCT%", `50% of C:\Users\me`},
	}
	for _, tt := range tests {
		if got := expandPercentVars(tt.in); got != tt.want {
			t.Errorf("expandPercentVars(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
