package tarn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFutureGet(t *testing.T) {
	future, resolve := newFuture[int](context.Background(), 3)

	resolve(5, nil)

	value, err := future.Get()
	assert.NoError(t, err)
	assert.Equal(t, 5, value)
	assert.Equal(t, uint64(3), future.Index())
}

func TestFutureGetWithError(t *testing.T) {
	future, resolve := newFuture[int](context.Background(), 0)

	taskErr := errors.New("boom")
	resolve(0, taskErr)

	value, err := future.Get()
	assert.ErrorIs(t, err, taskErr)
	assert.Equal(t, 0, value)
}

func TestFutureGetIsIdempotent(t *testing.T) {
	future, resolve := newFuture[string](context.Background(), 0)

	resolve("done", nil)

	first, err1 := future.Get()
	second, err2 := future.Get()
	assert.Equal(t, first, second)
	assert.Equal(t, err1, err2)
}

func TestFutureResolvesOnlyOnce(t *testing.T) {
	future, resolve := newFuture[int](context.Background(), 0)

	resolve(1, nil)
	resolve(2, nil)

	value, err := future.Get()
	assert.NoError(t, err)
	assert.Equal(t, 1, value)
}

func TestFutureResult(t *testing.T) {
	future, resolve := newFuture[int](context.Background(), 7)

	resolve(42, nil)

	result := future.Result()
	assert.Equal(t, uint64(7), result.Index)
	assert.Equal(t, 42, result.Value)
	assert.False(t, result.Failed())
}

func TestFutureCancelBeforeStart(t *testing.T) {
	future, _ := newFuture[int](context.Background(), 0)

	cancelled := false
	future.onCancel = func() { cancelled = true }

	assert.True(t, future.Cancel())
	assert.True(t, cancelled)

	// A worker can no longer claim it
	assert.False(t, future.start())

	_, err := future.Get()
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestFutureCancelAfterStart(t *testing.T) {
	future, resolve := newFuture[int](context.Background(), 0)

	assert.True(t, future.start())
	assert.False(t, future.Cancel())

	resolve(9, nil)

	value, err := future.Get()
	assert.NoError(t, err)
	assert.Equal(t, 9, value)
}

func TestFutureParentContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	future, _ := newFuture[int](ctx, 0)

	cancel()

	value, err := future.Get()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, value)
}
