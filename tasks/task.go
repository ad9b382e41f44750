// Package tasks provides a minimal deferred-task subsystem: task and
// result definitions, a backend interface, and an in-memory dummy
// backend for tests and local development.
package tasks

import (
	"context"
	"fmt"
	"time"
)

// Priority bounds for a task. Zero is the default priority; larger
// values run first on backends that honor priorities.
const (
	MinPriority     = -100
	MaxPriority     = 100
	DefaultPriority = 0
)

// DefaultQueue is the queue tasks are enqueued to unless overridden.
const DefaultQueue = "default"

// ResultStatus is the lifecycle state of a task result.
type ResultStatus string

const (
	// StatusNew means the task has been enqueued but not started.
	StatusNew ResultStatus = "NEW"
	// StatusRunning means the task is currently executing.
	StatusRunning ResultStatus = "RUNNING"
	// StatusFailed means the task finished with an error.
	StatusFailed ResultStatus = "FAILED"
	// StatusSucceeded means the task finished successfully.
	StatusSucceeded ResultStatus = "SUCCEEDED"
)

// Finished reports whether the status is terminal.
func (s ResultStatus) Finished() bool {
	return s == StatusFailed || s == StatusSucceeded
}

// Task describes a unit of deferred work.
type Task struct {
	// Name identifies the function the worker should run.
	Name string
	// QueueName is the queue the task is routed to. Empty means
	// DefaultQueue.
	QueueName string
	// Priority orders tasks within a queue. Must be within
	// [MinPriority, MaxPriority].
	Priority int
	// RunAfter defers execution until the given time, if non-zero.
	RunAfter time.Time
}

// Queue returns the effective queue name.
func (t *Task) Queue() string {
	if t.QueueName == "" {
		return DefaultQueue
	}
	return t.QueueName
}

// Validate checks the task definition against the given backend
// constraints. An empty queues slice allows any queue.
func (t *Task) Validate(queues []string) error {
	if t.Name == "" {
		return fmt.Errorf("tasks: task name must not be empty")
	}
	if t.Priority < MinPriority || t.Priority > MaxPriority {
		return fmt.Errorf("tasks: priority %d is out of range [%d, %d]", t.Priority, MinPriority, MaxPriority)
	}
	if len(queues) > 0 {
		queue := t.Queue()
		for _, q := range queues {
			if q == queue {
				return nil
			}
		}
		return fmt.Errorf("tasks: queue %q is not configured", queue)
	}
	return nil
}

// TaskResult is the record of an enqueued task.
type TaskResult struct {
	// ID uniquely identifies the enqueued task.
	ID string
	// TaskName is the name of the enqueued task.
	TaskName string
	// QueueName is the queue the task was routed to.
	QueueName string
	// Backend is the alias of the backend that holds the result.
	Backend string
	// Status is the current lifecycle state.
	Status ResultStatus
	// Args are the positional arguments the task was enqueued with.
	Args []any
	// EnqueuedAt is when the backend accepted the task.
	EnqueuedAt time.Time
	// StartedAt is when a worker picked the task up, if it has.
	StartedAt time.Time
	// FinishedAt is when the task reached a terminal status, if it has.
	FinishedAt time.Time
}

// Backend enqueues tasks and exposes their results.
type Backend interface {
	// Enqueue schedules the task with the given arguments and returns
	// its result record in StatusNew.
	Enqueue(ctx context.Context, task *Task, args ...any) (*TaskResult, error)
	// Result returns the result record for the given id.
	Result(ctx context.Context, id string) (*TaskResult, error)
}
