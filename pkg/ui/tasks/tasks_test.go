package tasks

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/cadence/pkg/errors"
)

func TestNewIsPending(t *testing.T) {
	h := New("idle", func(context.Context) error { return nil })
	assert.Equal(t, StatePending, h.State())
	assert.NotEmpty(t, h.ID)
	assert.Zero(t, h.Runtime())
	assert.False(t, h.Started())
}

func TestHandleIDsAreUniqueAndOrdered(t *testing.T) {
	a := New("a", nil)
	b := New("b", nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, a.ID, b.ID)
}

func TestSpawnRunsToCompletion(t *testing.T) {
	s := NewSpawner(context.Background(), Hooks{})
	var ran atomic.Bool
	h, err := s.Spawn("once", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, h.Wait(ctx))
	assert.True(t, ran.Load())
	assert.Equal(t, StateDone, h.State())
	assert.True(t, h.Started())
	require.NoError(t, s.Shutdown(ctx))
}

func TestShutdownCancelsRunningTasks(t *testing.T) {
	var exits atomic.Int32
	s := NewSpawner(context.Background(), Hooks{
		OnExit: func(*Handle, error) { exits.Add(1) },
	})
	for i := 0; i < 3; i++ {
		_, err := s.Spawn("blocker", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, s.Active())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, int32(3), exits.Load())
	assert.Equal(t, 0, s.Active())
}

func TestShutdownReportsFailure(t *testing.T) {
	s := NewSpawner(context.Background(), Hooks{})
	h, err := s.Spawn("broken", func(context.Context) error {
		return stderrors.New("boom")
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	err = s.Shutdown(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTask))
	assert.Equal(t, StateFailed, h.State())
}

func TestAdoptTwiceStartsOnce(t *testing.T) {
	s := NewSpawner(context.Background(), Hooks{})
	var starts atomic.Int32
	h := New("dup", func(ctx context.Context) error {
		starts.Add(1)
		<-ctx.Done()
		return nil
	})
	require.NoError(t, s.Adopt(h))
	require.NoError(t, s.Adopt(h))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.Equal(t, int32(1), starts.Load())
}

func TestCancelPendingNeverStarts(t *testing.T) {
	s := NewSpawner(context.Background(), Hooks{})
	var ran atomic.Bool
	h := New("skipped", func(context.Context) error {
		ran.Store(true)
		return nil
	})
	h.Cancel()
	require.NoError(t, s.Adopt(h))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.False(t, ran.Load())
	assert.Equal(t, StateCancelled, h.State())
	assert.ErrorIs(t, h.Err(), context.Canceled)
}

func TestAdoptAfterShutdownFails(t *testing.T) {
	s := NewSpawner(context.Background(), Hooks{})
	require.NoError(t, s.Shutdown(context.Background()))

	err := s.Adopt(New("late", func(context.Context) error { return nil }))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTask, errors.GetCode(err))
}
