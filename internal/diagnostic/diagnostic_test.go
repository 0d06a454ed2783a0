package diagnostic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		expected string
	}{
		{"empty", nil, ""},
		{"single key", []Segment{Key("make")}, "make"},
		{"nested keys", []Segment{Key("nestedProp"), Key("baz")}, "nestedProp.baz"},
		{"index in the middle", []Segment{Key("items"), Index(2), Key("name")}, "items[2].name"},
		{"leading index", []Segment{Index(0), Key("name")}, "[0].name"},
		{"consecutive indices", []Segment{Key("grid"), Index(1), Index(3)}, "grid[1][3]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPath(tt.segments))
		})
	}
}

func TestLevel_OrderingAndString(t *testing.T) {
	assert.True(t, LevelInfo < LevelWarn)
	assert.True(t, LevelWarn < LevelError)
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "warn", LevelWarn.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("warning")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, l)

	l, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, LevelError, l)

	_, err = ParseLevel("fatal")
	assert.Error(t, err)
}

func TestCollector_PathSnapshot(t *testing.T) {
	c := NewCollector()

	c.Push(Key("items"))
	c.Push(Index(1))
	c.Push(Key("name"))
	c.Error("bad name")
	c.Pop()
	c.Warn("odd item")
	c.Pop()
	c.Pop()
	c.Info("top level")

	issues := c.Issues()
	require.Len(t, issues, 3)
	assert.Equal(t, "items[1].name", issues[0].Path)
	assert.Equal(t, "items[1]", issues[1].Path)
	assert.Empty(t, issues[2].Path)
	assert.Equal(t, 0, c.Depth())
}

func TestCollector_PopEmptyIsNoop(t *testing.T) {
	c := NewCollector()
	c.Pop()
	assert.Equal(t, 0, c.Depth())
}

func TestCollector_Queries(t *testing.T) {
	c := NewCollector()

	_, ok := c.MaxLevel()
	assert.False(t, ok)
	assert.False(t, c.HasErrors())
	assert.NoError(t, c.Err())

	c.Info("a")
	c.Warn("b")

	lvl, ok := c.MaxLevel()
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, lvl)
	assert.False(t, c.HasErrors())

	c.Error("c")
	c.Error("d")

	assert.True(t, c.HasErrors())
	assert.Equal(t, 2, c.Count(LevelError))
	assert.Len(t, c.Warnings(), 1)
	assert.Len(t, c.Errors(), 2)
}

func TestCollector_Err(t *testing.T) {
	c := NewCollector()
	c.Push(Key("year"))
	c.Error("Value (42) is greater than the maximum: 10")
	c.Pop()
	c.Warn("ignored in the summary")

	err := c.Err()
	require.Error(t, err)

	var agg *AggregateError
	require.True(t, errors.As(err, &agg))
	assert.Equal(t, 1, agg.Count)
	assert.Same(t, c, agg.Diagnostics)
	assert.Equal(t, "conversion failed with 1 error(s): year: Value (42) is greater than the maximum: 10", agg.Error())
}

func TestIssue_String(t *testing.T) {
	i := Issue{Path: "make", Level: LevelError, Message: "Required property or field not found: make"}
	assert.Equal(t, "make: Required property or field not found: make", i.String())

	i.Suggestions = []string{"mkae"}
	assert.Equal(t, "make: Required property or field not found: make (did you mean: mkae?)", i.String())

	assert.Equal(t, "msg", Issue{Message: "msg"}.String())
}

func TestTracker(t *testing.T) {
	c := NewCollector()
	tr := Track(c)

	_, seen := tr.Max()
	assert.False(t, seen)
	assert.False(t, tr.Failed())

	tr.Warn("w")
	lvl, seen := tr.Max()
	assert.True(t, seen)
	assert.Equal(t, LevelWarn, lvl)
	assert.False(t, tr.Failed())

	tr.Info("i")
	lvl, _ = tr.Max()
	assert.Equal(t, LevelWarn, lvl, "max level never decreases")

	tr.Error("e")
	assert.True(t, tr.Failed())

	assert.Len(t, c.Issues(), 3, "tracker forwards every issue")
}

func TestTracker_Nested(t *testing.T) {
	c := NewCollector()
	outer := Track(c)
	inner := Track(outer)

	inner.Error("boom")

	assert.True(t, inner.Failed())
	assert.True(t, outer.Failed())
	assert.Len(t, c.Errors(), 1)
}
