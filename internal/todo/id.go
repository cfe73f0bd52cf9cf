package todo

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	nanoid "github.com/jaevor/go-nanoid"
)

const (
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 4
	// maxIDAttempts bounds regeneration when an id collides.
	maxIDAttempts = 16
)

var (
	suffixOnce sync.Once
	suffixGen  func() string
	suffixErr  error
)

func randomSuffix() (string, error) {
	suffixOnce.Do(func() {
		suffixGen, suffixErr = nanoid.CustomASCII(idAlphabet, idSuffixLength)
	})
	if suffixErr != nil {
		return "", fmt.Errorf("id generator: %w", suffixErr)
	}
	return suffixGen(), nil
}

// NewID returns a short id: the time in milliseconds (base36) followed by
// four random base36 characters.
func NewID(now time.Time) (string, error) {
	suffix, err := randomSuffix()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix, nil
}

// uniqueID generates an id that does not collide with any id in existing.
func uniqueID(now time.Time, existing []Task) (string, error) {
	taken := make(map[string]bool, len(existing))
	for _, t := range existing {
		taken[t.ID] = true
	}
	for i := 0; i < maxIDAttempts; i++ {
		id, err := NewID(now)
		if err != nil {
			return "", err
		}
		if !taken[id] {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique id after %d attempts", maxIDAttempts)
}
