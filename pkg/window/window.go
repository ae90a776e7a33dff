package window

import (
	"errors"
	"fmt"
	"iter"
)

var ErrInvalidRange = errors.New("end day is before start day")

// Window is an inclusive range of days. Windows never wrap around the end of
// the year.
type Window struct {
	Start Day
	End   Day
}

// New returns the window [start, end]. A zero end means a single-day window.
func New(start, end Day) (Window, error) {
	if end.IsZero() {
		end = start
	}
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return Window{Start: start, End: end}, nil
}

// Len is the number of days in w.
func (w Window) Len() int {
	return int(w.End.Time().Sub(w.Start.Time()).Hours()/24) + 1
}

func (w Window) Contains(d Day) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days yields every day of w in chronological order. The sequence can be
// ranged over any number of times.
func (w Window) Days() iter.Seq[Day] {
	return func(yield func(Day) bool) {
		n := w.Len()
		for i := range n {
			if !yield(w.Start.AddDays(i)) {
				return
			}
		}
	}
}

func (w Window) String() string {
	if w.Start == w.End {
		return w.Start.String()
	}
	return w.Start.String() + " - " + w.End.String()
}
