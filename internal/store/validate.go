package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/claw-todo-go/internal/todo"
	"github.com/nibzard/claw-todo-go/internal/utils"
)

// builtinSchemaURL is the resource name the bundled schema is registered under.
const builtinSchemaURL = "https://claw-todo.dev/schema/todo.schema.json"

// BuiltinSchema is the JSON Schema for a store document.
const BuiltinSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://claw-todo.dev/schema/todo.schema.json",
  "title": "claw-todo store document",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "status", "priority"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "text": {"type": "string", "minLength": 1},
      "status": {"enum": ["todo", "doing", "blocked", "done"]},
      "priority": {"enum": ["high", "medium", "low"]},
      "created": {"type": "string", "format": "date-time"},
      "completed": {"type": ["string", "null"], "format": "date-time"},
      "due": {"type": ["string", "null"]},
      "tags": {
        "type": "array",
        "items": {"type": "string", "minLength": 1}
      }
    }
  }
}`

// ValidationError is a single problem found in a store document.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is a JSON Schema file used instead of the bundled schema.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// Validate checks a raw store document. The bundled schema is used unless
// opts.SchemaPath names a usable schema file. When no schema compiles, the
// minimal structural checks run instead. Duplicate ids are always checked.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)})
		return result
	}

	schema, warnings := compileSchema(opts.SchemaPath)
	result.Warnings = append(result.Warnings, warnings...)

	if schema != nil {
		result.UsedSchema = true
		if err := schema.Validate(doc); err != nil {
			result.Valid = false
			appendSchemaErrors(result, err)
		}
	} else {
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
		validateMinimal(doc, result)
	}

	validateIDs(doc, result)
	warnDue(doc, result)
	return result
}

// Validate reads the store document and validates it. A missing document is
// valid and reported as a warning.
func (s *Store) Validate(opts ValidationOptions) *ValidationResult {
	data, err := os.ReadFile(s.path)
	if err != nil {
		result := &ValidationResult{Valid: true, Errors: make([]error, 0)}
		if os.IsNotExist(err) {
			result.Warnings = []string{fmt.Sprintf("store file not found: %s", s.path)}
			return result
		}
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: fmt.Errorf("read store: %w", err)})
		return result
	}
	return Validate(data, opts)
}

// compileSchema compiles the schema at path, or the bundled schema when path
// is empty or unusable. It returns nil only if nothing compiles.
func compileSchema(path string) (*jsonschema.Schema, []string) {
	var warnings []string
	if path != "" {
		schema, err := compileSchemaFile(path)
		if err == nil {
			return schema, nil
		}
		warnings = append(warnings, err.Error())
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	compiler.AssertFormat = true
	if err := compiler.AddResource(builtinSchemaURL, strings.NewReader(BuiltinSchema)); err != nil {
		return nil, append(warnings, fmt.Sprintf("bundled schema: %v", err))
	}
	schema, err := compiler.Compile(builtinSchemaURL)
	if err != nil {
		return nil, append(warnings, fmt.Sprintf("bundled schema: %v", err))
	}
	return schema, warnings
}

func compileSchemaFile(path string) (*jsonschema.Schema, error) {
	absPath, err := filepath.Abs(utils.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("invalid schema path: %v", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("schema file not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read schema file: %v", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("invalid schema file: %v", err)
	}
	return schema, nil
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// validateMinimal performs the structural checks used without a schema.
func validateMinimal(doc interface{}, result *ValidationResult) {
	items, ok := doc.([]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &ValidationError{Err: errors.New("document must be an array")})
		return
	}

	for i, item := range items {
		path := fmt.Sprintf("[%d]", i)
		obj, ok := item.(map[string]interface{})
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{Path: path, Err: errors.New("task must be an object")})
			continue
		}
		if err := validateTaskMinimal(obj, path); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

func validateTaskMinimal(obj map[string]interface{}, path string) *ValidationError {
	if id, _ := obj["id"].(string); id == "" {
		return &ValidationError{Path: path + ".id", Err: errors.New("missing required field")}
	}

	if text, _ := obj["text"].(string); strings.TrimSpace(text) == "" {
		return &ValidationError{Path: path + ".text", Err: errors.New("missing required field")}
	}

	status, _ := obj["status"].(string)
	if !todo.Status(status).Valid() {
		return &ValidationError{
			Path: path + ".status",
			Err:  fmt.Errorf("invalid status %q, must be one of: todo, doing, blocked, done", status),
		}
	}

	priority, _ := obj["priority"].(string)
	if !todo.Priority(priority).Valid() {
		return &ValidationError{
			Path: path + ".priority",
			Err:  fmt.Errorf("invalid priority %q, must be one of: high, medium, low", priority),
		}
	}

	return nil
}

// validateIDs reports ids shared by more than one task.
func validateIDs(doc interface{}, result *ValidationResult) {
	items, ok := doc.([]interface{})
	if !ok {
		return
	}
	first := make(map[string]int, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		if id == "" {
			continue
		}
		if j, seen := first[id]; seen {
			result.Valid = false
			result.Errors = append(result.Errors, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (first used at [%d])", id, j),
			})
			continue
		}
		first[id] = i
	}
}

// warnDue flags due values that cannot be read as dates. They are kept but
// never count as overdue.
func warnDue(doc interface{}, result *ValidationResult) {
	items, ok := doc.([]interface{})
	if !ok {
		return
	}
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		due, _ := obj["due"].(string)
		if due == "" {
			continue
		}
		t := todo.Task{Due: due}
		if _, ok := t.DueTime(); !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("[%d].due: unrecognized date %q", i, due))
		}
	}
}
