// Package todo defines task records and the operations that change them.
//
// A store document (TODO.json) is a JSON array of tasks:
//
//	[
//	  {
//	    "id": "m1x2y3z4ab9f",
//	    "text": "Write docs",
//	    "status": "todo",
//	    "priority": "medium",
//	    "created": "2024-01-01T00:00:00Z",
//	    "completed": "2024-01-02T09:30:00Z",
//	    "due": "2024-01-15T00:00:00.000Z",
//	    "tags": ["work"]
//	  }
//	]
//
// # Task Status Values
//
//   - "todo": Task is pending (default)
//   - "doing": Task is currently being worked on
//   - "blocked": Task is blocked
//   - "done": Task is complete
//
// # Priority Levels
//
//   - "high": sorts first
//   - "medium": default
//   - "low": sorts last
//
// # Identifiers
//
// Task ids are the creation time in milliseconds (base36) followed by four
// random base36 characters. Users may refer to a task by any prefix of its
// id; see Resolve.
//
// # Leniency
//
// Creation coerces an unknown priority to medium and reports a warning,
// while SetPriority rejects an unknown level. Due dates that cannot be
// parsed are stored as given. A completed timestamp is never cleared once
// set, even if the task later leaves the done status.
package todo
