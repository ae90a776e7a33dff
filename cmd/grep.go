package cmd

import (
	"github.com/courier-tools/courier-traffic/pkg/grep"
	"github.com/spf13/cobra"
)

func grepCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grep [maillog...]",
		Short: "Print log lines whose records match the filters",
	}
	config := grep.DefaultConfig()
	config.InstallFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger, err := opts.logger(cmd)
		if err != nil {
			return err
		}
		filenames := filenamesFromArgs(args)
		logger.Info().Strs("files", filenames).Msg("Using log files")
		cmd.SilenceUsage = true

		g, err := grep.New(config, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if g.IsEmpty() {
			logger.Warn().Msg("no filter given, printing every record")
		}
		for _, filename := range filenames {
			if err := g.GrepFile(filename); err != nil {
				return err
			}
		}
		logger.Debug().Uint64("matched", g.Matched()).Msg("grep finished")
		return nil
	}
	return cmd
}
