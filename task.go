package tarn

import (
	"context"
	"fmt"
)

// TaskFunc enumerates the function signatures accepted as tasks by a pool
// with result type R.
type TaskFunc[R any] interface {
	func() | func(context.Context) | func() error | func(context.Context) error |
		func() R | func(context.Context) R | func() (R, error) | func(context.Context) (R, error)
}

func validateTask[R any](task any) {
	switch task.(type) {
	case func():
	case func(context.Context):
	case func() error:
	case func(context.Context) error:
	case func() R:
	case func(context.Context) R:
	case func() (R, error):
	case func(context.Context) (R, error):
	default:
		panic(fmt.Sprintf("unsupported task type: %#v", task))
	}
}

// invokeTask runs a task of any supported signature, converting a panic into
// an error wrapping ErrPanic.
func invokeTask[R any](task any, ctx context.Context) (value R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
		}
	}()

	switch t := task.(type) {
	case func():
		t()
	case func(context.Context):
		t(ctx)
	case func() error:
		err = t()
	case func(context.Context) error:
		err = t(ctx)
	case func() R:
		value = t()
	case func(context.Context) R:
		value = t(ctx)
	case func() (R, error):
		value, err = t()
	case func(context.Context) (R, error):
		value, err = t(ctx)
	default:
		panic(fmt.Sprintf("unsupported task type: %#v", task))
	}
	return
}
