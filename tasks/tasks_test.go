package tasks_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cy-suite/quill"
	"github.com/cy-suite/quill/tasks"
)

func TestTaskValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		task    tasks.Task
		queues  []string
		wantErr string
	}{
		{
			name: "valid",
			task: tasks.Task{Name: "send-email"},
		},
		{
			name:    "empty name",
			task:    tasks.Task{},
			wantErr: "name must not be empty",
		},
		{
			name:    "priority too low",
			task:    tasks.Task{Name: "send-email", Priority: -101},
			wantErr: "out of range",
		},
		{
			name:    "priority too high",
			task:    tasks.Task{Name: "send-email", Priority: 101},
			wantErr: "out of range",
		},
		{
			name:   "known queue",
			task:   tasks.Task{Name: "send-email", QueueName: "mail"},
			queues: []string{"default", "mail"},
		},
		{
			name:    "unknown queue",
			task:    tasks.Task{Name: "send-email", QueueName: "bulk"},
			queues:  []string{"default", "mail"},
			wantErr: `queue "bulk" is not configured`,
		},
		{
			name:   "empty queue name uses default",
			task:   tasks.Task{Name: "send-email"},
			queues: []string{"default"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate(tt.queues)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestResultStatusFinished(t *testing.T) {
	t.Parallel()
	assert.False(t, tasks.StatusNew.Finished())
	assert.False(t, tasks.StatusRunning.Finished())
	assert.True(t, tasks.StatusFailed.Finished())
	assert.True(t, tasks.StatusSucceeded.Finished())
}

func TestDummyBackendEnqueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	result, err := backend.Enqueue(ctx, &tasks.Task{Name: "send-email"}, "user@example.com", 3)
	require.NoError(t, err)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "send-email", result.TaskName)
	assert.Equal(t, "default", result.QueueName)
	assert.Equal(t, "default", result.Backend)
	assert.Equal(t, tasks.StatusNew, result.Status)
	require.Len(t, result.Args, 2)
	assert.Equal(t, "user@example.com", result.Args[0])
	assert.EqualValues(t, 3, result.Args[1])
	assert.WithinDuration(t, time.Now(), result.EnqueuedAt, time.Minute)
}

func TestDummyBackendEnqueueInvalidTask(t *testing.T) {
	t.Parallel()
	backend := tasks.NewDummyBackend("default", "default")
	_, err := backend.Enqueue(context.Background(), &tasks.Task{Name: "send-email", QueueName: "bulk"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `queue "bulk" is not configured`)
}

func TestDummyBackendResult(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	enqueued, err := backend.Enqueue(ctx, &tasks.Task{Name: "send-email"})
	require.NoError(t, err)

	result, err := backend.Result(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, enqueued.ID, result.ID)
	assert.Equal(t, tasks.StatusNew, result.Status)
}

func TestDummyBackendResultNotFound(t *testing.T) {
	t.Parallel()
	backend := tasks.NewDummyBackend("default")
	_, err := backend.Result(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, quill.IsNotFound(err))
	assert.True(t, errors.Is(err, quill.ErrNotFound))
	var nfe *quill.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "task result", nfe.Label())
	assert.Equal(t, "missing-id", nfe.ID())
}

func TestDummyBackendReturnsIndependentCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	enqueued, err := backend.Enqueue(ctx, &tasks.Task{Name: "send-email"}, []any{"a", "b"})
	require.NoError(t, err)

	// Mutating the returned result must not affect the stored record.
	enqueued.Status = tasks.StatusFailed
	enqueued.Args[0].([]any)[0] = "mutated"

	stored, err := backend.Result(ctx, enqueued.ID)
	require.NoError(t, err)
	assert.Equal(t, tasks.StatusNew, stored.Status)
	assert.Equal(t, []any{"a", "b"}, stored.Args[0])
}

func TestDummyBackendClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	enqueued, err := backend.Enqueue(ctx, &tasks.Task{Name: "send-email"})
	require.NoError(t, err)
	backend.Clear()

	_, err = backend.Result(ctx, enqueued.ID)
	assert.True(t, quill.IsNotFound(err))
	results, err := backend.Results()
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDummyBackendPreservesEnqueueOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	for i := 0; i < 5; i++ {
		_, err := backend.Enqueue(ctx, &tasks.Task{Name: fmt.Sprintf("task-%d", i)})
		require.NoError(t, err)
	}
	results, err := backend.Results()
	require.NoError(t, err)
	require.Len(t, results, 5)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("task-%d", i), r.TaskName)
	}
}

func TestDummyBackendConcurrentEnqueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := tasks.NewDummyBackend("default")

	var g errgroup.Group
	for i := 0; i < 32; i++ {
		g.Go(func() error {
			_, err := backend.Enqueue(ctx, &tasks.Task{Name: "send-email"})
			return err
		})
	}
	require.NoError(t, g.Wait())
	results, err := backend.Results()
	require.NoError(t, err)
	assert.Len(t, results, 32)
}

func TestRetry(t *testing.T) {
	t.Parallel()
	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := tasks.Retry(3, 0, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		err := tasks.Retry(3, 0, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})
	t.Run("returns final error", func(t *testing.T) {
		calls := 0
		wantErr := errors.New("persistent")
		err := tasks.Retry(3, 0, func() error {
			calls++
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})
	t.Run("rejects non-positive attempts", func(t *testing.T) {
		err := tasks.Retry(0, 0, func() error { return nil })
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}

func TestNormalizeJSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"empty map", map[string]any{}, map[string]any{}},
		{"empty slice", []any{}, []any{}},
		{"ints become floats", map[string]int{"a": 1}, map[string]any{"a": 1.0}},
		{"struct becomes map", struct {
			Name string `json:"name"`
		}{Name: "John"}, map[string]any{"name": "John"}},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tasks.NormalizeJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	t.Run("encode error", func(t *testing.T) {
		_, err := tasks.NormalizeJSON(func() {})
		require.Error(t, err)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	cfg, err := tasks.LoadConfig(strings.NewReader(`
backends:
  default:
    backend: dummy
    queues: [default, mail]
  reporting:
    backend: dummy
`))
	require.NoError(t, err)
	require.Len(t, cfg.Backends, 2)
	assert.Equal(t, "dummy", cfg.Backends["default"].Backend)
	assert.Equal(t, []string{"default", "mail"}, cfg.Backends["default"].Queues)
	assert.Empty(t, cfg.Backends["reporting"].Queues)
}

func TestLoadConfigUnknownField(t *testing.T) {
	t.Parallel()
	_, err := tasks.LoadConfig(strings.NewReader(`
backends:
  default:
    backend: dummy
    workers: 4
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot decode config")
}

func TestConfigOpen(t *testing.T) {
	t.Parallel()
	cfg := &tasks.Config{Backends: map[string]tasks.BackendConfig{
		"default": {Backend: "dummy", Queues: []string{"default"}},
	}}
	backends, err := cfg.Open()
	require.NoError(t, err)
	require.Contains(t, backends, "default")

	_, err = backends["default"].Enqueue(context.Background(), &tasks.Task{Name: "send-email"})
	require.NoError(t, err)
	_, err = backends["default"].Enqueue(context.Background(), &tasks.Task{Name: "send-email", QueueName: "bulk"})
	require.Error(t, err)
}

func TestConfigOpenUnknownBackend(t *testing.T) {
	t.Parallel()
	cfg := &tasks.Config{Backends: map[string]tasks.BackendConfig{
		"default": {Backend: "redis"},
	}}
	_, err := cfg.Open()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown backend "redis"`)
}
