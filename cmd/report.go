package cmd

import (
	"fmt"

	"github.com/courier-tools/courier-traffic/pkg/analyze"
	"github.com/courier-tools/courier-traffic/pkg/metrics"
	"github.com/courier-tools/courier-traffic/pkg/util"
	"github.com/spf13/cobra"
)

const defaultFilename = "/var/log/maillog"

func filenamesFromArgs(args []string) []string {
	if len(args) == 0 {
		return []string{defaultFilename}
	}
	return args
}

func reportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report [maillog...]",
		Aliases: []string{"run"},
		Short:   "Print per-day traffic by domain and user",
		Long: `Print per-day traffic by domain and user.

Log files are read in order. "-" reads standard input. Files ending in .gz,
.xz or .zst are decompressed on the fly.`,
	}
	config := analyze.DefaultConfig()
	config.InstallFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		logger, err := opts.logger(cmd)
		if err != nil {
			return err
		}
		filenames := filenamesFromArgs(args)
		logger.Info().Strs("files", filenames).Msg("Using log files")
		cmd.SilenceUsage = true

		a, err := analyze.NewAnalyzer(config, logger)
		if err != nil {
			return fmt.Errorf("failed to create analyzer: %w", err)
		}
		a.SetProgressOutput(cmd.ErrOrStderr())
		logger.Debug().Stringer("window", a.Window()).Bool("rescan", config.Rescan).Msg("analyzer ready")

		var report *analyze.Report
		scan := func() error {
			report, err = a.AnalyzeFiles(filenames)
			return err
		}
		if config.CPUProfile != "" {
			err = util.RunCPUProfile(config.CPUProfile, scan)
		} else {
			err = scan()
		}
		if err != nil {
			return err
		}

		if err := a.Print(cmd.OutOrStdout(), report, util.StdoutIsTerminal()); err != nil {
			return err
		}
		if config.Textfile != "" {
			if err := metrics.WriteTextfile(config.Textfile, report); err != nil {
				return err
			}
			logger.Debug().Str("file", config.Textfile).Msg("metrics written")
		}
		if config.MemProfile != "" {
			return util.MemProfile(config.MemProfile)
		}
		return nil
	}
	return cmd
}
