package todo

import "strings"

// Resolve returns the index of the task identified by idOrPrefix.
// An exact id match wins anywhere in the collection; otherwise the first
// task in collection order whose id starts with idOrPrefix is returned.
// Ambiguous prefixes are not reported: the first match wins.
func Resolve(tasks []Task, idOrPrefix string) (int, error) {
	idOrPrefix = strings.TrimSpace(idOrPrefix)
	if idOrPrefix == "" {
		return -1, &NotFoundError{ID: idOrPrefix}
	}
	for i := range tasks {
		if tasks[i].ID == idOrPrefix {
			return i, nil
		}
	}
	for i := range tasks {
		if strings.HasPrefix(tasks[i].ID, idOrPrefix) {
			return i, nil
		}
	}
	return -1, &NotFoundError{ID: idOrPrefix}
}
