package window

import (
	"slices"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, month time.Month, day int) Day {
	t.Helper()
	d, err := NewDay(month, day)
	require.NoError(t, err)
	return d
}

func TestParseDay(t *testing.T) {
	type testCase struct {
		input    string
		expected Day
		ok       bool
	}
	testCases := []testCase{
		{"05-01", Day{time.January, 5}, true},
		{"5-1", Day{time.January, 5}, true},
		{"31-12", Day{time.December, 31}, true},
		{"29-02", Day{time.February, 29}, true},
		{"30-02", Day{}, false},
		{"01-13", Day{}, false},
		{"Jan-05", Day{}, false},
		{"", Day{}, false},
	}
	for _, c := range testCases {
		d, err := ParseDay(c.input)
		if c.ok {
			if assert.NoError(t, err, c.input) {
				assert.Equal(t, c.expected, d)
			}
		} else {
			assert.ErrorIs(t, err, ErrInvalidDay, c.input)
		}
	}
}

func TestParseLogDate(t *testing.T) {
	d, err := ParseLogDate("Jan", "5")
	if assert.NoError(t, err) {
		assert.Equal(t, Day{time.January, 5}, d)
	}
	d, err = ParseLogDate("Jan", "05")
	if assert.NoError(t, err) {
		assert.Equal(t, Day{time.January, 5}, d)
	}
	d, err = ParseLogDate("Feb", "29")
	if assert.NoError(t, err) {
		assert.Equal(t, Day{time.February, 29}, d)
	}

	for _, c := range [][2]string{
		{"Feb", "30"},
		{"Foo", "1"},
		{"Jan", "x"},
		{"2024-01-05", "10:00:00"},
		{"Jan", "005"},
	} {
		_, err := ParseLogDate(c[0], c[1])
		assert.Error(t, err, c)
	}
}

func TestDayString(t *testing.T) {
	d := mustDay(t, time.January, 5)
	assert.Equal(t, "05 Jan", d.String())
	assert.Equal(t, "01-05", d.Key())
	assert.Equal(t, "", Day{}.String())
}

func TestAddDaysAcrossLeapDay(t *testing.T) {
	d := mustDay(t, time.February, 28)
	assert.Equal(t, Day{time.February, 29}, d.AddDays(1))
	assert.Equal(t, Day{time.March, 1}, d.AddDays(2))
}

func TestWindowSingleDay(t *testing.T) {
	d := mustDay(t, time.January, 5)
	w, err := New(d, d)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, []Day{d}, slices.Collect(w.Days()))

	// zero end means start
	w, err = New(d, Day{})
	require.NoError(t, err)
	assert.Equal(t, d, w.End)
	assert.Equal(t, 1, w.Len())
}

func TestWindowAcrossLeapDay(t *testing.T) {
	w, err := New(mustDay(t, time.February, 27), mustDay(t, time.March, 2))
	require.NoError(t, err)
	assert.Equal(t, 5, w.Len())
	assert.Equal(t, []Day{
		{time.February, 27},
		{time.February, 28},
		{time.February, 29},
		{time.March, 1},
		{time.March, 2},
	}, slices.Collect(w.Days()))
}

func TestWindowRestartable(t *testing.T) {
	w, err := New(mustDay(t, time.December, 30), mustDay(t, time.December, 31))
	require.NoError(t, err)
	first := slices.Collect(w.Days())
	second := slices.Collect(w.Days())
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestWindowInvalidRange(t *testing.T) {
	_, err := New(mustDay(t, time.March, 2), mustDay(t, time.March, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	// no wrap-around over the new year
	_, err = New(mustDay(t, time.December, 31), mustDay(t, time.January, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestWindowContains(t *testing.T) {
	w, err := New(mustDay(t, time.January, 5), mustDay(t, time.January, 7))
	require.NoError(t, err)
	assert.False(t, w.Contains(Day{time.January, 4}))
	assert.True(t, w.Contains(Day{time.January, 5}))
	assert.True(t, w.Contains(Day{time.January, 7}))
	assert.False(t, w.Contains(Day{time.January, 8}))
}

func TestDayFlag(t *testing.T) {
	var f DayFlag
	assert.Equal(t, "", f.String())
	assert.NoError(t, f.Set("29-02"))
	assert.Equal(t, Day{time.February, 29}, f.Value())
	assert.Equal(t, "29-02", f.String())
	assert.Error(t, f.Set("31-04"))
}

func TestDayFlagOnFlagSet(t *testing.T) {
	var start, end DayFlag
	flags := pflag.NewFlagSet("window", pflag.ContinueOnError)
	flags.Var(&start, "start", "")
	flags.Var(&end, "end", "")
	require.NoError(t, flags.Parse([]string{"--start", "28-02"}))

	assert.Equal(t, Day{time.February, 28}, start.Value())
	assert.True(t, end.Value().IsZero())
	assert.Equal(t, "DD-MM", flags.Lookup("start").Value.Type())

	w, err := New(start.Value(), end.Value())
	require.NoError(t, err)
	assert.Equal(t, 1, w.Len())
}
