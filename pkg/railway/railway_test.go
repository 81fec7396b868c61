package railway_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MALLLAG/Domain-Modeling-Made-Functional/pkg/railway"
)

var errBoom = errors.New("boom")

func TestMap(t *testing.T) {
	ok := railway.Map(railway.Ok(2), func(n int) string { return strconv.Itoa(n * 10) })
	require.True(t, ok.IsOk())
	assert.Equal(t, "20", ok.Value())

	failed := railway.Map(railway.Err[int](errBoom), func(n int) string {
		t.Fatal("map function must not run on a failure")
		return ""
	})
	require.False(t, failed.IsOk())
	assert.ErrorIs(t, failed.Err(), errBoom)
}

func TestBind(t *testing.T) {
	half := func(n int) railway.Result[int] {
		if n%2 != 0 {
			return railway.Err[int](errBoom)
		}
		return railway.Ok(n / 2)
	}

	ok := railway.Bind(railway.Ok(8), half)
	require.True(t, ok.IsOk())
	assert.Equal(t, 4, ok.Value())

	odd := railway.Bind(railway.Ok(7), half)
	assert.ErrorIs(t, odd.Err(), errBoom)

	upstream := errors.New("upstream")
	shortCircuit := railway.Bind(railway.Err[int](upstream), func(int) railway.Result[int] {
		t.Fatal("bind function must not run on a failure")
		return railway.Ok(0)
	})
	assert.ErrorIs(t, shortCircuit.Err(), upstream)
}

func TestMapError(t *testing.T) {
	wrapped := railway.MapError(railway.Err[int](errBoom), func(err error) error {
		return errors.New("wrapped: " + err.Error())
	})
	assert.EqualError(t, wrapped.Err(), "wrapped: boom")

	untouched := railway.MapError(railway.Ok(1), func(err error) error {
		t.Fatal("mapError function must not run on a success")
		return nil
	})
	require.True(t, untouched.IsOk())
	assert.Equal(t, 1, untouched.Value())
}

func TestSequenceFailFast(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	ok := railway.Sequence([]railway.Result[int]{railway.Ok(1), railway.Ok(2)})
	require.True(t, ok.IsOk())
	assert.Equal(t, []int{1, 2}, ok.Value())

	failed := railway.Sequence([]railway.Result[int]{
		railway.Ok(1),
		railway.Err[int](first),
		railway.Err[int](second),
	})
	require.False(t, failed.IsOk())
	assert.ErrorIs(t, failed.Err(), first)
	assert.NotErrorIs(t, failed.Err(), second)
}

func TestPartition(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	values, errs := railway.Partition([]railway.Result[int]{
		railway.Ok(1),
		railway.Err[int](first),
		railway.Ok(3),
		railway.Err[int](second),
	})
	assert.Equal(t, []int{1, 3}, values)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], first)
	assert.ErrorIs(t, errs[1], second)
}

func TestSequenceAllCollects(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	failed := railway.SequenceAll([]railway.Result[int]{
		railway.Err[int](first),
		railway.Ok(2),
		railway.Err[int](second),
	})
	require.False(t, failed.IsOk())
	assert.ErrorIs(t, failed.Err(), first)
	assert.ErrorIs(t, failed.Err(), second)
}

func TestFrom(t *testing.T) {
	ok := railway.From(5, nil)
	require.True(t, ok.IsOk())
	v, err := ok.Unpack()
	assert.Equal(t, 5, v)
	assert.NoError(t, err)

	failed := railway.From(0, errBoom)
	assert.ErrorIs(t, failed.Err(), errBoom)
}
