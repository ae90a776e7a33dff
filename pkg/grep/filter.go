package grep

import (
	"errors"
	"slices"

	"github.com/courier-tools/courier-traffic/pkg/parser"
	"github.com/courier-tools/courier-traffic/pkg/window"
	"github.com/spf13/pflag"
)

type Filter struct {
	Start    window.DayFlag
	End      window.DayFlag
	Domains  []string
	Users    []string
	Protocol string `validate:"omitempty,oneof=pop3 imap"`

	window *window.Window
}

func (f *Filter) InstallFlags(flags *pflag.FlagSet) {
	flags.Var(&f.Start, "start", "First day to match in DD-MM format")
	flags.Var(&f.End, "end", "Last day to match in DD-MM format (default --start)")
	flags.StringArrayVar(&f.Domains, "domain", f.Domains, "Domain to match exactly (can be specified multiple times)")
	flags.StringArrayVar(&f.Users, "user", f.Users, "Local user name to match exactly (can be specified multiple times)")
	flags.StringVar(&f.Protocol, "protocol", f.Protocol, "Protocol to match (pop3|imap)")
}

// Prepare resolves the day window. Without --start every day matches.
func (f *Filter) Prepare() error {
	if f.Start.Value().IsZero() {
		if !f.End.Value().IsZero() {
			return errors.New("--end requires --start")
		}
		f.window = nil
		return nil
	}
	w, err := window.New(f.Start.Value(), f.End.Value())
	if err != nil {
		return err
	}
	f.window = &w
	return nil
}

func (f *Filter) IsEmpty() bool {
	return f.window == nil && len(f.Domains) == 0 && len(f.Users) == 0 && f.Protocol == ""
}

var (
	ErrDayNoMatch      = errors.New("day does not match")
	ErrDomainNoMatch   = errors.New("domain does not match")
	ErrUserNoMatch     = errors.New("user does not match")
	ErrProtocolNoMatch = errors.New("protocol does not match")
)

func (f *Filter) Match(item parser.LogItem) error {
	if f.window != nil && !f.window.Contains(item.Day) {
		return ErrDayNoMatch
	}
	if len(f.Domains) > 0 && !slices.Contains(f.Domains, item.Domain) {
		return ErrDomainNoMatch
	}
	if len(f.Users) > 0 && !slices.Contains(f.Users, item.User) {
		return ErrUserNoMatch
	}
	if f.Protocol != "" && item.Protocol.String() != f.Protocol {
		return ErrProtocolNoMatch
	}
	return nil
}
