package todo

// Icon returns the glyph shown for the status in listings.
func (s Status) Icon() string {
	switch s {
	case StatusDoing:
		return "◐"
	case StatusDone:
		return "●"
	case StatusBlocked:
		return "✖"
	default:
		return "○"
	}
}

// Icon returns the glyph shown for the priority in listings. Unknown levels
// get a neutral marker.
func (p Priority) Icon() string {
	switch p {
	case PriorityHigh:
		return "🔴"
	case PriorityMedium:
		return "🟡"
	case PriorityLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// DueLabel formats the due date as a short month and day ("Mar 5"). Values
// that are not dates are returned unchanged.
func (t *Task) DueLabel() string {
	if t.Due == "" {
		return ""
	}
	due, ok := t.DueTime()
	if !ok {
		return t.Due
	}
	return due.UTC().Format("Jan 2")
}
