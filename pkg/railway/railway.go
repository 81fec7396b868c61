// Package railway provides a generic two-outcome container and the
// combinators needed to chain fallible pipeline stages: success stays on
// one track, the first failure diverts to the other and bypasses the rest.
package railway

import "errors"

// Result holds either a value or an error, never both.
// The zero value is an Ok result carrying T's zero value.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// From lifts an ordinary (T, error) return into a Result.
func From[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](err)
	}
	return Ok(v)
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

// Value returns the success value; meaningful only when IsOk.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Err() error {
	return r.err
}

// Unpack converts back to the ordinary Go return shape.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// Map applies f to the success value and passes a failure through untouched.
func Map[A, B any](r Result[A], f func(A) B) Result[B] {
	if r.err != nil {
		return Err[B](r.err)
	}
	return Ok(f(r.value))
}

// Bind chains a function that can itself fail. A failed input
// short-circuits: f is never called.
func Bind[A, B any](r Result[A], f func(A) Result[B]) Result[B] {
	if r.err != nil {
		return Err[B](r.err)
	}
	return f(r.value)
}

// MapError rewrites the error of a failed result, typically to unify a
// stage-specific error type into the pipeline-wide one. Success passes
// through untouched.
func MapError[A any](r Result[A], f func(error) error) Result[A] {
	if r.err == nil {
		return r
	}
	return Err[A](f(r.err))
}

// Sequence converts a list of results into one result of a list,
// fail-fast: the first error wins and later values are discarded.
func Sequence[A any](rs []Result[A]) Result[[]A] {
	out := make([]A, 0, len(rs))
	for _, r := range rs {
		if r.err != nil {
			return Err[[]A](r.err)
		}
		out = append(out, r.value)
	}
	return Ok(out)
}

// Partition is the collecting counterpart of Sequence: it splits the
// inputs into all success values and all errors, preserving input order
// within each slice. Callers that want a single aggregate error can join
// the second slice; see SequenceAll.
func Partition[A any](rs []Result[A]) ([]A, []error) {
	values := make([]A, 0, len(rs))
	var errs []error
	for _, r := range rs {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		values = append(values, r.value)
	}
	return values, errs
}

// SequenceAll collects every error instead of stopping at the first,
// joining them into one aggregate failure.
func SequenceAll[A any](rs []Result[A]) Result[[]A] {
	values, errs := Partition(rs)
	if len(errs) > 0 {
		return Err[[]A](errors.Join(errs...))
	}
	return Ok(values)
}
