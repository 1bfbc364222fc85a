package board

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDFunc returns a fresh identifier on every call. It must never return the
// same value twice within a process.
type IDFunc func() string

// NewUUID returns a UUID v7 string, falling back to v4 if v7 generation fails.
func NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// Sequence returns a deterministic IDFunc yielding prefix-1, prefix-2, and
// so on. It is safe for concurrent use.
func Sequence(prefix string) IDFunc {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
