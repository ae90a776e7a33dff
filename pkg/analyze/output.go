package analyze

import (
	"fmt"
	"io"

	"github.com/courier-tools/courier-traffic/pkg/stats"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const noStatistics = "No statistics available with such filters"

type OutputContext struct {
	Report  *Report
	Unit    UnitFlag
	Verbose bool
	SortBy  SortByFlag
	Color   bool
}

type Outputter interface {
	Print(w io.Writer, ctx *OutputContext) error
}

type OutputterFunc func(w io.Writer, ctx *OutputContext) error

func (f OutputterFunc) Print(w io.Writer, ctx *OutputContext) error {
	return f(w, ctx)
}

var outputters = map[FormatFlag]Outputter{
	FormatText:  OutputterFunc(PrintText),
	FormatTable: OutputterFunc(PrintTable),
	FormatJSON:  OutputterFunc(PrintJSON),
}

func GetOutputter(format FormatFlag) (Outputter, error) {
	o, ok := outputters[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q", format)
	}
	return o, nil
}

// Print renders report in the configured format.
func (a *Analyzer) Print(w io.Writer, report *Report, colored bool) error {
	o, err := GetOutputter(a.Config.Format)
	if err != nil {
		return err
	}
	return o.Print(w, &OutputContext{
		Report:  report,
		Unit:    a.Config.Unit,
		Verbose: a.Config.Verbose,
		SortBy:  a.Config.SortBy,
		Color:   colored && !a.Config.NoColor,
	})
}

func newColor(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

func PrintText(w io.Writer, ctx *OutputContext) error {
	heading := newColor(ctx.Color, color.Bold)
	domainColor := newColor(ctx.Color, color.FgCyan)
	totalColor := newColor(ctx.Color, color.Bold, color.FgGreen)
	size := func(n uint64) string {
		return FormatSize(n, ctx.Unit)
	}

	for _, day := range ctx.Report.Days {
		heading.Fprintf(w, "Statistics for %s\n", day.Day)
		if day.Store.Empty() {
			fmt.Fprintln(w, noStatistics)
			continue
		}
		for _, d := range SortedDomains(day.Store, ctx.SortBy) {
			domainColor.Fprintf(w, "  Domain %s\n", d.Name)
			for _, u := range SortedUsers(d, ctx.SortBy) {
				fmt.Fprintf(w, "    User %s\n", u.Name)
				if ctx.Verbose {
					fmt.Fprintf(w, "      POP3 received: %s\n", size(u.Received.POP3))
					fmt.Fprintf(w, "      IMAP received: %s\n", size(u.Received.IMAP))
					fmt.Fprintf(w, "      POP3 sent: %s\n", size(u.Sent.POP3))
					fmt.Fprintf(w, "      IMAP sent: %s\n", size(u.Sent.IMAP))
				}
				fmt.Fprintf(w, "    Total: %s\n", size(u.Total()))
			}
			fmt.Fprintf(w, "  Total: %s\n", size(d.Total()))
		}
	}
	fmt.Fprintln(w)
	totalColor.Fprintf(w, "Total: %s\n", size(ctx.Report.Total()))
	return nil
}

func PrintTable(w io.Writer, ctx *OutputContext) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoWrap(tw.WrapNone),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithPadding(tw.Padding{
			Right:     "  ",
			Overwrite: true,
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
	)

	header := []any{"Date", "Domain", "User"}
	if ctx.Verbose {
		header = append(header, "POP3 Received", "IMAP Received", "POP3 Sent", "IMAP Sent")
	}
	header = append(header, "Total")
	table.Header(header...)

	size := func(n uint64) string {
		return FormatSize(n, ctx.Unit)
	}
	row := func(date, domain, user string, u *stats.User, total uint64) []string {
		r := []string{date, domain, user}
		if ctx.Verbose {
			if u == nil {
				r = append(r, "", "", "", "")
			} else {
				r = append(r, size(u.Received.POP3), size(u.Received.IMAP), size(u.Sent.POP3), size(u.Sent.IMAP))
			}
		}
		return append(r, size(total))
	}

	for _, day := range ctx.Report.Days {
		date := day.Day.String()
		if day.Store.Empty() {
			if err := table.Append(row(date, "-", "-", nil, 0)); err != nil {
				return err
			}
			continue
		}
		for _, d := range SortedDomains(day.Store, ctx.SortBy) {
			for _, u := range SortedUsers(d, ctx.SortBy) {
				if err := table.Append(row(date, d.Name, u.Name, u, u.Total())); err != nil {
					return err
				}
			}
		}
	}
	if err := table.Append(row("Total", "", "", nil, ctx.Report.Total())); err != nil {
		return err
	}
	return table.Render()
}

type jsonCounters struct {
	POP3 uint64 `json:"pop3"`
	IMAP uint64 `json:"imap"`
}

type jsonUser struct {
	Name     string       `json:"name"`
	Received jsonCounters `json:"received"`
	Sent     jsonCounters `json:"sent"`
	Total    uint64       `json:"total"`
}

type jsonDomain struct {
	Name  string     `json:"name"`
	Users []jsonUser `json:"users"`
	Total uint64     `json:"total"`
}

type jsonDay struct {
	Date    string       `json:"date"`
	Domains []jsonDomain `json:"domains"`
	Total   uint64       `json:"total"`
}

type jsonReport struct {
	Start   string    `json:"start"`
	End     string    `json:"end"`
	Days    []jsonDay `json:"days"`
	Total   uint64    `json:"total"`
	Lines   uint64    `json:"lines"`
	Records uint64    `json:"records"`
}

// PrintJSON always reports raw byte counts; the unit is left to the consumer.
func PrintJSON(w io.Writer, ctx *OutputContext) error {
	r := ctx.Report
	out := jsonReport{
		Start:   r.Window.Start.Key(),
		End:     r.Window.End.Key(),
		Days:    make([]jsonDay, 0, len(r.Days)),
		Total:   r.Total(),
		Lines:   r.Lines,
		Records: r.Records,
	}
	for _, day := range r.Days {
		jd := jsonDay{
			Date:    day.Day.Key(),
			Domains: make([]jsonDomain, 0, len(day.Store.Domains)),
			Total:   day.Total(),
		}
		for _, d := range SortedDomains(day.Store, ctx.SortBy) {
			jdom := jsonDomain{
				Name:  d.Name,
				Users: make([]jsonUser, 0, len(d.Users)),
				Total: d.Total(),
			}
			for _, u := range SortedUsers(d, ctx.SortBy) {
				jdom.Users = append(jdom.Users, jsonUser{
					Name:     u.Name,
					Received: jsonCounters(u.Received),
					Sent:     jsonCounters(u.Sent),
					Total:    u.Total(),
				})
			}
			jd.Domains = append(jd.Domains, jdom)
		}
		out.Days = append(out.Days, jd)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
