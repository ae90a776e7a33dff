package cmd

import (
	"github.com/courier-tools/courier-traffic/pkg/config"
	"github.com/courier-tools/courier-traffic/pkg/logging"
	"github.com/courier-tools/courier-traffic/pkg/util"
	"github.com/spf13/cobra"
)

type globalOptions struct {
	ConfigFile string
	LogLevel   string
}

func (o *globalOptions) logger(cmd *cobra.Command) (logging.Logger, error) {
	return logging.New(cmd.ErrOrStderr(), o.LogLevel, util.StderrIsTerminal())
}

func showHelp(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

func RootCmd() *cobra.Command {
	opts := &globalOptions{LogLevel: "info"}
	rootCmd := &cobra.Command{
		Use:   "courier-traffic",
		Short: "Per-day IMAP/POP3 traffic accounting for Courier mail logs",
		Args:  cobra.NoArgs,
		RunE:  showHelp,
	}
	rootCmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "Config file (YAML, TOML or JSON) providing flag defaults")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug|info|warn|error)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := config.Apply(cmd.Flags(), opts.ConfigFile); err != nil {
			return err
		}
		// reject a bad level before any work is done
		_, err := opts.logger(cmd)
		return err
	}
	rootCmd.AddCommand(
		reportCmd(opts),
		grepCmd(opts),
		listCmd(),
	)
	return rootCmd
}
