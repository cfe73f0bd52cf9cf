package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func errorPaths(result *ValidationResult) []string {
	var paths []string
	for _, err := range result.Errors {
		if ve, ok := err.(*ValidationError); ok {
			paths = append(paths, ve.Path)
		}
	}
	return paths
}

func containsPath(paths []string, want string) bool {
	for _, p := range paths {
		if p == want {
			return true
		}
	}
	return false
}

func TestValidateAcceptsSavedDocument(t *testing.T) {
	data, err := Marshal(sampleTasks())
	if err != nil {
		t.Fatal(err)
	}
	result := Validate(data, ValidationOptions{})
	if !result.Valid {
		t.Fatalf("saved document should be valid, got errors: %v", result.Errors)
	}
	if !result.UsedSchema {
		t.Error("bundled schema should have been used")
	}
}

func TestValidateAcceptsNullOptionalFields(t *testing.T) {
	doc := `[{"id":"a1","text":"x","status":"todo","priority":"medium","created":"2024-01-01T00:00:00.000Z","due":null,"tags":[]}]`
	result := Validate([]byte(doc), ValidationOptions{})
	if !result.Valid {
		t.Errorf("null due should be accepted, got %v", result.Errors)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{
			name: "bad status",
			doc:  `[{"id":"a","text":"x","status":"started","priority":"low"}]`,
			path: "[0].status",
		},
		{
			name: "bad priority",
			doc:  `[{"id":"a","text":"x","status":"todo","priority":"urgent"}]`,
			path: "[0].priority",
		},
		{
			name: "empty text",
			doc:  `[{"id":"a","text":"","status":"todo","priority":"low"}]`,
			path: "[0].text",
		},
		{
			name: "duplicate id",
			doc:  `[{"id":"a","text":"x","status":"todo","priority":"low"},{"id":"a","text":"y","status":"todo","priority":"low"}]`,
			path: "[1].id",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate([]byte(tt.doc), ValidationOptions{})
			if result.Valid {
				t.Fatal("expected invalid document")
			}
			if paths := errorPaths(result); !containsPath(paths, tt.path) {
				t.Errorf("error paths = %v, want %q among them", paths, tt.path)
			}
		})
	}
}

func TestValidateRejectsNonArray(t *testing.T) {
	result := Validate([]byte(`{"tasks":[]}`), ValidationOptions{})
	if result.Valid {
		t.Error("object document should be invalid")
	}

	result = Validate([]byte(`[{`), ValidationOptions{})
	if result.Valid || len(result.Errors) == 0 {
		t.Error("malformed JSON should be invalid")
	}
}

func TestValidateWarnsOnUnparseableDue(t *testing.T) {
	doc := `[{"id":"a","text":"x","status":"todo","priority":"low","due":"next friday"}]`
	result := Validate([]byte(doc), ValidationOptions{})
	if !result.Valid {
		t.Fatalf("free-form due is allowed, got %v", result.Errors)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "next friday") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning about the due value, got %v", result.Warnings)
	}
}

func TestValidateMissingSchemaFileFallsBackToBundled(t *testing.T) {
	data, _ := Marshal(sampleTasks())
	result := Validate(data, ValidationOptions{SchemaPath: filepath.Join(t.TempDir(), "missing.json")})
	if !result.UsedSchema || !result.Valid {
		t.Errorf("expected bundled schema validation, got %+v", result)
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "schema file not found") {
		t.Errorf("expected a missing schema warning, got %v", result.Warnings)
	}
}

func TestValidateCustomSchemaFile(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "strict.json")
	schema := `{"$schema":"https://json-schema.org/draft/2020-12/schema","type":"array","maxItems":1}`
	if err := os.WriteFile(schemaPath, []byte(schema), 0644); err != nil {
		t.Fatal(err)
	}
	data, _ := Marshal(sampleTasks())
	result := Validate(data, ValidationOptions{SchemaPath: schemaPath})
	if result.Valid {
		t.Error("custom schema limiting items should reject three tasks")
	}
}

func TestMinimalValidation(t *testing.T) {
	result := &ValidationResult{Valid: true}
	validateMinimal([]interface{}{
		map[string]interface{}{"id": "a", "text": "x", "status": "todo", "priority": "low"},
		map[string]interface{}{"id": "b", "text": "  ", "status": "todo", "priority": "low"},
		"not an object",
	}, result)
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	paths := errorPaths(result)
	if !containsPath(paths, "[1].text") || !containsPath(paths, "[2]") {
		t.Errorf("error paths = %v", paths)
	}
}

func TestStoreValidateMissingFile(t *testing.T) {
	result := New(filepath.Join(t.TempDir(), "TODO.json")).Validate(ValidationOptions{})
	if !result.Valid {
		t.Error("missing store file is not an error")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("warnings = %v, want one", result.Warnings)
	}
}
