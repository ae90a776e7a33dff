package grep

import (
	"fmt"
	"io"

	"github.com/courier-tools/courier-traffic/pkg/config"
	"github.com/courier-tools/courier-traffic/pkg/fileiter"
	"github.com/courier-tools/courier-traffic/pkg/parser"
	"github.com/courier-tools/courier-traffic/pkg/util"
	"github.com/spf13/pflag"
)

// Grepper prints the raw log lines whose records pass a Filter.
type Grepper struct {
	f   *Filter
	p   parser.Parser
	out io.Writer

	matched uint64
}

type GrepperConfig struct {
	f      *Filter
	Parser string `validate:"required"`
}

func DefaultConfig() GrepperConfig {
	return GrepperConfig{
		f:      &Filter{},
		Parser: "courier",
	}
}

func (c *GrepperConfig) InstallFlags(flags *pflag.FlagSet) {
	c.f.InstallFlags(flags)

	flags.StringVarP(&c.Parser, "parser", "p", c.Parser, "Log parser (see \"courier-traffic list parsers\")")
}

func New(c GrepperConfig, w io.Writer) (*Grepper, error) {
	if err := config.Validate(&c); err != nil {
		return nil, err
	}
	if err := config.Validate(c.f); err != nil {
		return nil, err
	}
	if err := c.f.Prepare(); err != nil {
		return nil, err
	}
	p, err := parser.GetParser(c.Parser)
	if err != nil {
		return nil, err
	}
	g := &Grepper{
		f:   c.f,
		p:   p,
		out: w,
	}
	return g, nil
}

func (g *Grepper) IsEmpty() bool {
	return g.f.IsEmpty()
}

// Matched is the number of lines printed so far.
func (g *Grepper) Matched() uint64 {
	return g.matched
}

func (g *Grepper) RunLoop(iter fileiter.Iterator) error {
	for {
		line, err := iter.Next()
		if err != nil {
			return err
		}
		if line == nil {
			break
		}
		if err := g.handleLine(line); err != nil {
			return err
		}
	}
	return nil
}

func (g *Grepper) GrepFile(filename string) error {
	f, err := util.OpenFile(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := g.RunLoop(fileiter.NewWithReader(f)); err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	return nil
}

// handleLine only fails when writing fails; lines without a record are
// skipped.
func (g *Grepper) handleLine(line []byte) error {
	item, err := g.p.Parse(line)
	if err != nil {
		return nil
	}
	if err := g.f.Match(item); err != nil {
		return nil
	}
	g.matched++
	if _, err := g.out.Write(line); err != nil {
		return err
	}
	_, err = g.out.Write([]byte{'\n'})
	return err
}
