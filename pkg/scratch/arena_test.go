package scratch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_Sprintf(t *testing.T) {
	tests := []struct {
		name     string
		limit    int
		format   string
		args     []any
		expected string
		used     int
	}{
		{
			name:     "unbounded",
			limit:    0,
			format:   "%d+%d",
			args:     []any{2, 2},
			expected: "2+2",
			used:     3,
		},
		{
			name:     "fits exactly",
			limit:    5,
			format:   "hello",
			expected: "hello",
			used:     5,
		},
		{
			name:     "exceeds budget",
			limit:    4,
			format:   "hello",
			expected: Placeholder,
			used:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.limit)
			assert.Equal(t, tt.expected, a.Sprintf(tt.format, tt.args...))
			assert.Equal(t, tt.used, a.Used())
		})
	}
}

func TestArena_MarkRelease(t *testing.T) {
	a := New(10)
	require.NoError(t, a.Alloc(4))

	m := a.Mark()
	require.NoError(t, a.Alloc(6))
	assert.ErrorIs(t, a.Alloc(1), ErrExhausted)

	a.Release(m)
	assert.Equal(t, 4, a.Used())
	assert.NoError(t, a.Alloc(6))

	// releasing to a later mark is a no-op
	a.Release(Mark(100))
	assert.Equal(t, 10, a.Used())

	a.Reset()
	assert.Equal(t, 0, a.Used())
}

func TestArena_Nil(t *testing.T) {
	var a *Arena
	assert.Equal(t, "x=1", a.Sprintf("x=%d", 1))
	assert.NoError(t, a.Alloc(1<<20))
	assert.Equal(t, 0, a.Used())
	assert.Equal(t, Mark(0), a.Mark())
	a.Release(0)
	a.Reset()
}

type color int

type pathError struct{ path string }

func (e *pathError) Error() string { return "open " + e.path }

func (c color) String() string { return "red" }

func TestArena_Repr(t *testing.T) {
	a := Unbounded()

	assert.Equal(t, "4", a.Repr(4))
	assert.Equal(t, `"four"`, a.Repr("four"))
	assert.Equal(t, "boom", a.Repr(errors.New("boom")))
	assert.Equal(t, "red", a.Repr(color(1)))
	assert.Equal(t, "<nil>", a.Repr(nil))
	assert.Equal(t, "1.5s", a.Repr(1500*time.Millisecond))
	assert.Equal(t, "[1 2]", a.Repr([]int{1, 2}))

	var pe *pathError
	assert.Equal(t, "<nil>", a.Repr(error(pe)))
	assert.Equal(t, "open /tmp/x", a.Repr(&pathError{path: "/tmp/x"}))
}

func TestArena_ReprChargesOnce(t *testing.T) {
	a := New(5)
	assert.Equal(t, `"abc"`, a.Repr("abc"))
	assert.Equal(t, Placeholder, a.Repr("d"))
	assert.Equal(t, `"abc"`, Text("abc"))
}
