package analyze

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/courier-tools/courier-traffic/pkg/config"
	"github.com/courier-tools/courier-traffic/pkg/fileiter"
	"github.com/courier-tools/courier-traffic/pkg/logging"
	"github.com/courier-tools/courier-traffic/pkg/parser"
	"github.com/courier-tools/courier-traffic/pkg/stats"
	"github.com/courier-tools/courier-traffic/pkg/util"
	"github.com/courier-tools/courier-traffic/pkg/window"
	"github.com/spf13/pflag"
)

var (
	ErrNotRewindable = errors.New("standard input cannot be rescanned")

	errFiltered      = errors.New("filtered out")
	errOutsideWindow = errors.New("outside date window")
)

type Analyzer struct {
	Config AnalyzerConfig

	window  window.Window
	markers []string
	// one store per day of the window, created on first record
	stores map[window.Day]*stats.Store

	lines   uint64
	records uint64

	logParser   parser.Parser
	logger      logging.Logger
	progressOut io.Writer
}

type AnalyzerConfig struct {
	Start      window.DayFlag
	End        window.DayFlag
	Domain     string
	Unit       UnitFlag   `validate:"oneof=B KB MB GB auto"`
	Verbose    bool
	Format     FormatFlag `validate:"oneof=text table json"`
	SortBy     SortByFlag `validate:"oneof=seen name total"`
	Parser     string     `validate:"required"`
	Rescan     bool
	Progress   bool
	Textfile   string
	NoColor    bool
	CPUProfile string
	MemProfile string
}

func (c *AnalyzerConfig) InstallFlags(flags *pflag.FlagSet) {
	flags.Var(&c.Start, "start", "The start date of calculation in DD-MM format (default today)")
	flags.Var(&c.End, "end", "The end date of calculation in DD-MM format (default --start)")
	flags.StringVarP(&c.Domain, "domain", "d", c.Domain, "Filter only specified domain records")
	flags.VarP(&c.Unit, "unit", "u", "Convert traffic from bytes (B|KB|MB|GB|auto)")
	flags.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Show verbose traffic information")
	flags.VarP(&c.Format, "format", "f", "Output format (text|table|json)")
	flags.VarP(&c.SortBy, "sort-by", "S", "Order domains and users by (seen|name|total)")
	flags.StringVarP(&c.Parser, "parser", "p", c.Parser, "Log parser (see \"courier-traffic list parsers\")")
	flags.BoolVar(&c.Rescan, "rescan", c.Rescan, "Read the whole log once per day instead of a single pass")
	flags.BoolVar(&c.Progress, "progress", c.Progress, "Show a progress bar while scanning")
	flags.StringVar(&c.Textfile, "textfile", c.Textfile, "Also write the report as Prometheus metrics to this file")
	flags.BoolVar(&c.NoColor, "no-color", c.NoColor, "Disable colored output")
	flags.StringVar(&c.CPUProfile, "cpu-profile", c.CPUProfile, "Write a CPU profile to this file")
	flags.StringVar(&c.MemProfile, "mem-profile", c.MemProfile, "Write an allocation profile to this file")
	flags.MarkHidden("cpu-profile")
	flags.MarkHidden("mem-profile")
}

// Window resolves the configured days: start defaults to today and end to
// start.
func (c *AnalyzerConfig) Window() (window.Window, error) {
	start := c.Start.Value()
	if start.IsZero() {
		start = window.Today()
	}
	return window.New(start, c.End.Value())
}

func DefaultConfig() AnalyzerConfig {
	return AnalyzerConfig{
		Unit:   UnitBytes,
		Format: FormatText,
		SortBy: SortBySeen,
		Parser: "courier",
	}
}

func NewAnalyzer(c AnalyzerConfig, logger logging.Logger) (*Analyzer, error) {
	if err := config.Validate(&c); err != nil {
		return nil, err
	}
	w, err := c.Window()
	if err != nil {
		return nil, err
	}
	logParser, err := parser.GetParser(c.Parser)
	if err != nil {
		return nil, fmt.Errorf("invalid parser: %w", err)
	}
	markers := parser.DefaultMarkers
	if cp, ok := logParser.(parser.CourierParser); ok {
		markers = cp.Markers
	}

	return &Analyzer{
		Config:      c,
		window:      w,
		markers:     markers,
		stores:      make(map[window.Day]*stats.Store),
		logParser:   logParser,
		logger:      logger,
		progressOut: os.Stderr,
	}, nil
}

func (a *Analyzer) Window() window.Window {
	return a.window
}

func (a *Analyzer) SetProgressOutput(w io.Writer) {
	a.progressOut = w
}

// RunLoop folds every line of iter into the store of its day, in a single
// pass. Lines outside the window or failing to parse are skipped.
func (a *Analyzer) RunLoop(iter fileiter.Iterator) error {
	for {
		line, err := iter.Next()
		if err != nil {
			return err
		}
		if line == nil {
			break
		}
		a.lines++
		if err := a.handleLine(line); err == nil {
			a.records++
		}
	}
	return nil
}

// RunDay scans all of iter for records dated day and returns that day's
// store, replacing any previous one.
func (a *Analyzer) RunDay(iter fileiter.Iterator, day window.Day) (*stats.Store, error) {
	store := stats.NewStore()
	for {
		line, err := iter.Next()
		if err != nil {
			return nil, err
		}
		if line == nil {
			break
		}
		a.lines++
		if r, ok := parser.Extract(line, day, a.markers, a.Config.Domain); ok {
			store.Add(r)
			a.records++
		}
	}
	a.stores[day] = store
	return store, nil
}

func (a *Analyzer) handleLine(line []byte) error {
	if a.Config.Domain != "" && !bytes.Contains(line, []byte(a.Config.Domain)) {
		return errFiltered
	}
	item, err := a.logParser.Parse(line)
	if err != nil {
		return err
	}
	if !a.window.Contains(item.Day) {
		return errOutsideWindow
	}
	a.store(item.Day).Add(item.Record)
	return nil
}

func (a *Analyzer) store(day window.Day) *stats.Store {
	s, ok := a.stores[day]
	if !ok {
		s = stats.NewStore()
		a.stores[day] = s
	}
	return s
}

// AnalyzeFiles scans the files in order and returns the report. With Rescan
// set, every file is read again for each day of the window.
func (a *Analyzer) AnalyzeFiles(filenames []string) (*Report, error) {
	if a.Config.Rescan {
		for _, filename := range filenames {
			if filename == util.Stdin {
				return nil, ErrNotRewindable
			}
		}
		for day := range a.window.Days() {
			store := stats.NewStore()
			for _, filename := range filenames {
				err := a.scanFile(filename, day.String(), func(iter fileiter.Iterator) error {
					s, err := a.RunDay(iter, day)
					if err != nil {
						return err
					}
					mergeInto(store, s)
					return nil
				})
				if err != nil {
					return nil, err
				}
			}
			a.stores[day] = store
		}
	} else {
		for _, filename := range filenames {
			if err := a.scanFile(filename, "scanning", a.RunLoop); err != nil {
				return nil, err
			}
		}
	}
	report := a.Report()
	a.logger.Debug().
		Uint64("lines", report.Lines).
		Uint64("records", report.Records).
		Uint64("skipped", report.Skipped()).
		Int("days", len(report.Days)).
		Msg("scan finished")
	return report, nil
}

func (a *Analyzer) scanFile(filename, desc string, fn func(fileiter.Iterator) error) error {
	f, err := util.OpenFile(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	a.logger.Debug().Str("file", filename).Str("pass", desc).Msg("reading log")
	var r io.Reader = f
	if a.Config.Progress {
		bar := newProgressBar(a.progressOut, util.ReadSize(filename), desc)
		defer bar.Finish()
		r = io.TeeReader(f, bar)
	}
	if err := fn(fileiter.NewWithReader(r)); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return nil
}

// mergeInto adds every counter of src to dst, keeping src's order for
// names dst has not seen yet.
func mergeInto(dst, src *stats.Store) {
	for _, d := range src.Domains {
		dd := dst.Domain(d.Name)
		for _, u := range d.Users {
			du := dd.User(u.Name)
			du.Received.POP3 += u.Received.POP3
			du.Received.IMAP += u.Received.IMAP
			du.Sent.POP3 += u.Sent.POP3
			du.Sent.IMAP += u.Sent.IMAP
		}
	}
}

// Report lists every day of the window in order, with an empty store for
// days without records.
func (a *Analyzer) Report() *Report {
	report := &Report{
		Window:  a.window,
		Lines:   a.lines,
		Records: a.records,
	}
	for day := range a.window.Days() {
		s, ok := a.stores[day]
		if !ok {
			s = stats.NewStore()
		}
		report.Days = append(report.Days, DayReport{Day: day, Store: s})
	}
	return report
}
