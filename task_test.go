package tarn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvokeTaskVariants(t *testing.T) {
	ctx := context.Background()
	taskErr := errors.New("task error")

	t.Run("func()", func(t *testing.T) {
		ran := false
		value, err := invokeTask[int](func() { ran = true }, ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, value)
		assert.True(t, ran)
	})

	t.Run("func() error", func(t *testing.T) {
		_, err := invokeTask[int](func() error { return taskErr }, ctx)
		assert.ErrorIs(t, err, taskErr)
	})

	t.Run("func() R", func(t *testing.T) {
		value, err := invokeTask[int](func() int { return 7 }, ctx)
		assert.NoError(t, err)
		assert.Equal(t, 7, value)
	})

	t.Run("func() (R, error)", func(t *testing.T) {
		value, err := invokeTask[int](func() (int, error) { return 7, taskErr }, ctx)
		assert.ErrorIs(t, err, taskErr)
		assert.Equal(t, 7, value)
	})

	t.Run("func(ctx) (R, error)", func(t *testing.T) {
		value, err := invokeTask[int](func(c context.Context) (int, error) {
			assert.Equal(t, ctx, c)
			return 11, nil
		}, ctx)
		assert.NoError(t, err)
		assert.Equal(t, 11, value)
	})
}

func TestInvokeTaskCapturesPanic(t *testing.T) {
	value, err := invokeTask[int](func() { panic("kaboom") }, context.Background())

	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, 0, value)
}

func TestValidateTaskRejectsUnsupportedType(t *testing.T) {
	assert.Panics(t, func() {
		validateTask[int]("not a function")
	})
	assert.Panics(t, func() {
		validateTask[int](func(a, b int) int { return a + b })
	})
}
