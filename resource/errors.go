package resource

import (
	"errors"
	"fmt"
)

// ErrMemoryLimit is matched by MemoryLimitError.
var ErrMemoryLimit = errors.New("resource: memory limit exceeded")

// MemoryLimitError reports a reservation that can never fit under the limit.
type MemoryLimitError struct {
	Requested int64
	Limit     int64
}

func (e *MemoryLimitError) Error() string {
	return fmt.Sprintf("resource: requested %d bytes exceeds memory limit of %d bytes", e.Requested, e.Limit)
}

func (e *MemoryLimitError) Unwrap() error {
	return ErrMemoryLimit
}
