package analyze

import (
	"github.com/courier-tools/courier-traffic/pkg/stats"
	"github.com/courier-tools/courier-traffic/pkg/window"
)

type DayReport struct {
	Day   window.Day
	Store *stats.Store
}

func (d DayReport) Total() uint64 {
	return d.Store.Total()
}

type Report struct {
	Window window.Window
	// chronological, one entry per day of Window
	Days []DayReport

	// lines read, including every pass of a rescan
	Lines   uint64
	Records uint64
}

// Skipped counts lines that contributed no record.
func (r *Report) Skipped() uint64 {
	return r.Lines - r.Records
}

// Total is the grand total over all days.
func (r *Report) Total() uint64 {
	var total uint64
	for _, d := range r.Days {
		total += d.Total()
	}
	return total
}
