package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Cabina/internal/catalog"
	"Cabina/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cabina",
		Short: "MV/LV substation sizing tool",
		Long: `cabina - MV/LV substation sizing

Aggregates loads, selects transformers and breakers from the ABB catalog,
sizes the earthing grid and runs the full design with reports.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(
		newLoadsCmd(),
		newTransformerCmd(),
		newBreakerCmd(),
		newEarthingCmd(),
		newDesignCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cabina",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "cabina %s\n", version.String())
		},
	}
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func table(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func section(out io.Writer, title string) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.ToUpper(title))
	fmt.Fprintln(out, strings.Repeat("-", 60))
}

func okMark(ok bool) string {
	if ok {
		return "OK"
	}
	return "NOT COMPLIANT"
}

func printNotes(out io.Writer, notes []string) {
	for _, n := range notes {
		fmt.Fprintf(out, "  ! %s\n", n)
	}
}
