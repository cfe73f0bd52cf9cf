package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// timestampLayouts are accepted for created and completed values, which may
// have been edited by hand.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

var jsonNull = []byte("null")

// taskDocument is the wire shape of a task with every field left raw.
type taskDocument struct {
	ID        json.RawMessage `json:"id"`
	Text      json.RawMessage `json:"text"`
	Status    json.RawMessage `json:"status"`
	Priority  json.RawMessage `json:"priority"`
	Created   json.RawMessage `json:"created"`
	Completed json.RawMessage `json:"completed"`
	Due       json.RawMessage `json:"due"`
	Tags      json.RawMessage `json:"tags"`
}

// UnmarshalJSON decodes one task without failing on odd field types.
// Scalars are read as strings, a bare tag string becomes a one-element list
// and timestamps in common layouts or Unix milliseconds are accepted. A
// timestamp that still cannot be read is kept and written back verbatim.
func (t *Task) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		return errors.New("task entry is null")
	}
	var doc taskDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*t = Task{
		ID:       looseString(doc.ID),
		Text:     looseString(doc.Text),
		Status:   Status(looseString(doc.Status)),
		Priority: Priority(looseString(doc.Priority)),
		Due:      looseString(doc.Due),
		Tags:     looseStrings(doc.Tags),
	}
	t.Created, t.rawCreated = looseTime(doc.Created)
	completed, raw := looseTime(doc.Completed)
	if !completed.IsZero() {
		t.Completed = &completed
	}
	t.rawCompleted = raw
	return nil
}

// MarshalJSON writes the task in document field order without HTML escaping.
func (t Task) MarshalJSON() ([]byte, error) {
	out := struct {
		ID        string          `json:"id"`
		Text      string          `json:"text"`
		Status    Status          `json:"status"`
		Priority  Priority        `json:"priority"`
		Created   json.RawMessage `json:"created"`
		Completed json.RawMessage `json:"completed,omitempty"`
		Due       string          `json:"due,omitempty"`
		Tags      []string        `json:"tags"`
	}{
		ID:        t.ID,
		Text:      t.Text,
		Status:    t.Status,
		Priority:  t.Priority,
		Created:   t.rawCreated,
		Completed: t.rawCompleted,
		Due:       t.Due,
		Tags:      t.Tags,
	}
	if out.Created == nil || !t.Created.IsZero() {
		created, err := t.Created.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out.Created = created
	}
	if t.Completed != nil {
		completed, err := t.Completed.MarshalJSON()
		if err != nil {
			return nil, err
		}
		out.Completed = completed
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// looseString returns a JSON string's value, "" for null or a missing
// field, and the JSON text of anything else.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// looseStrings reads a tag list. The result is never nil.
func looseStrings(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		tags := make([]string, 0, len(items))
		for _, item := range items {
			tags = append(tags, looseString(item))
		}
		return tags
	}
	if s := looseString(raw); s != "" {
		return []string{s}
	}
	return []string{}
}

// looseTime parses a timestamp. When the value is present but unreadable
// the zero time is returned along with a copy of raw.
func looseTime(raw json.RawMessage) (time.Time, json.RawMessage) {
	s := looseString(raw)
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, append(json.RawMessage(nil), bytes.TrimSpace(raw)...)
}
