package tasks

import (
	"encoding/json"
	"fmt"
	"time"
)

// Retry runs fn up to attempts times, sleeping delay between attempts,
// and returns nil on the first success or the final error.
func Retry(attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("tasks: retry attempts must be positive, got %d", attempts)
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if attempt < attempts {
			time.Sleep(delay)
		}
	}
	return err
}

// NormalizeJSON round-trips v through JSON encoding to normalize its
// types the way they will appear after storage: maps become
// map[string]any, slices []any, and numbers float64.
func NormalizeJSON(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("tasks: cannot encode value %v: %w", v, err)
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("tasks: cannot decode value: %w", err)
	}
	return out, nil
}
