package cmd

import (
	"slices"
	"strings"

	"github.com/courier-tools/courier-traffic/pkg/analyze"
	"github.com/courier-tools/courier-traffic/pkg/parser"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <item>",
		Short: "List various items",
		Args:  cobra.NoArgs,
		RunE:  showHelp,
	}
	cmd.AddCommand(listParsersCmd(), listUnitsCmd())
	return cmd
}

func listParsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parsers",
		Short: "List available log parsers",
		Args:  cobra.NoArgs,
	}
	var all bool
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show all parsers")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		table := newListTable(cmd)
		table.Header("Name", "Description")

		parsers := parser.All()
		slices.SortFunc(parsers, func(a, b parser.ParserMeta) int {
			return strings.Compare(a.Name, b.Name)
		})
		for _, p := range parsers {
			if all || !p.Hidden {
				if err := table.Append([]string{p.Name, p.Description}); err != nil {
					return err
				}
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
		return nil
	}
	return cmd
}

func newListTable(cmd *cobra.Command) *tablewriter.Table {
	return tablewriter.NewTable(
		cmd.OutOrStdout(),
		tablewriter.WithHeaderAutoWrap(tw.WrapNone),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		// two spaces between columns
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
}

func listUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List units accepted by --unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := newListTable(cmd)
			table.Header("Unit", "1024 bytes shown as")
			for _, u := range analyze.ListUnits() {
				if err := table.Append([]string{u.String(), analyze.FormatSize(1024, u)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
