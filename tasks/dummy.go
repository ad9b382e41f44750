package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cy-suite/quill"
)

// DummyBackend is an in-memory Backend that stores results in enqueue
// order and never executes anything. It is intended for tests and
// local development.
type DummyBackend struct {
	alias  string
	queues []string

	mu      sync.Mutex
	results []*TaskResult
}

// NewDummyBackend returns a DummyBackend registered under the given
// alias. Tasks may target any of the given queues; an empty queues
// list allows any queue.
func NewDummyBackend(alias string, queues ...string) *DummyBackend {
	return &DummyBackend{alias: alias, queues: queues}
}

// Alias returns the backend alias.
func (d *DummyBackend) Alias() string { return d.alias }

// Enqueue validates and stores the task. The returned result is an
// independent copy of the stored record, so callers cannot mutate the
// backend's state through it.
func (d *DummyBackend) Enqueue(_ context.Context, task *Task, args ...any) (*TaskResult, error) {
	if err := task.Validate(d.queues); err != nil {
		return nil, err
	}
	result := &TaskResult{
		ID:         uuid.NewString(),
		TaskName:   task.Name,
		QueueName:  task.Queue(),
		Backend:    d.alias,
		Status:     StatusNew,
		Args:       args,
		EnqueuedAt: time.Now(),
	}
	d.mu.Lock()
	d.results = append(d.results, result)
	d.mu.Unlock()
	return cloneResult(result)
}

// Result returns a copy of the result with the given id, or a
// *quill.NotFoundError if no such result exists.
func (d *DummyBackend) Result(_ context.Context, id string) (*TaskResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range d.results {
		if r.ID == id {
			return cloneResult(r)
		}
	}
	return nil, quill.NewNotFoundErrorWithID("task result", id)
}

// Results returns copies of all stored results in enqueue order.
func (d *DummyBackend) Results() ([]*TaskResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*TaskResult, 0, len(d.results))
	for _, r := range d.results {
		c, err := cloneResult(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Clear drops all stored results.
func (d *DummyBackend) Clear() {
	d.mu.Lock()
	d.results = nil
	d.mu.Unlock()
}

// cloneResult deep-copies a result through a msgpack round-trip so the
// argument slice and any nested values are independent of the stored
// record.
func cloneResult(r *TaskResult) (*TaskResult, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("tasks: cannot encode result %s: %w", r.ID, err)
	}
	var c TaskResult
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tasks: cannot decode result %s: %w", r.ID, err)
	}
	return &c, nil
}

var _ Backend = (*DummyBackend)(nil)
