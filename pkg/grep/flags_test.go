package grep

import "github.com/spf13/pflag"

func newFlagSet(c *GrepperConfig) *pflag.FlagSet {
	flags := pflag.NewFlagSet("grep", pflag.ContinueOnError)
	c.InstallFlags(flags)
	return flags
}
