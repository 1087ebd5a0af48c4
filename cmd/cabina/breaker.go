package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Cabina/internal/calc/selector"
)

func newBreakerCmd() *cobra.Command {
	var (
		current   float64
		breaking  float64
		voltageKV float64
		outdoor   bool
	)
	cmd := &cobra.Command{
		Use:   "breaker",
		Short: "Select an LV or MV circuit breaker",
		Long: `Select the smallest breaker covering the current with a 1.25 margin.
With --voltage the MV catalog is used, otherwise the LV one.

Examples:
  cabina breaker --current 320 --breaking 36
  cabina breaker --current 400 --breaking 16 --voltage 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			sel := selector.New(cat)
			out := cmd.OutOrStdout()
			if voltageKV > 0 {
				res, err := sel.MVBreaker(current, voltageKV, breaking, !outdoor)
				if err != nil {
					return err
				}
				b := res.Item
				section(out, "MV breaker")
				w := table(out)
				fmt.Fprintf(w, "  Series:\t%s (%s)\n", b.Series, b.ProductCode)
				fmt.Fprintf(w, "  Rating:\t%.0f A, %.0f kV, %.0f kA\n", b.RatedCurrentA, b.RatedVoltageKV, b.BreakingKA)
				fmt.Fprintf(w, "  Required:\t%.1f A\n", res.Required)
				fmt.Fprintf(w, "  Status:\t%s\n", okMark(res.Compliant))
				if err := w.Flush(); err != nil {
					return err
				}
				printNotes(out, res.Notes)
				return nil
			}
			if breaking == 0 {
				breaking = selector.DefaultLVBreakingKA
			}
			res, err := sel.LVBreaker(current, breaking)
			if err != nil {
				return err
			}
			b := res.Item
			section(out, "LV breaker")
			w := table(out)
			fmt.Fprintf(w, "  Series:\t%s %s (%s)\n", b.Series, b.Frame, b.ProductCode)
			fmt.Fprintf(w, "  Rating:\t%.0f A, %.0f kA\n", b.RatedCurrentA, b.BreakingKA)
			fmt.Fprintf(w, "  Protection unit:\t%s\n", b.ProtectionUnit)
			fmt.Fprintf(w, "  Required:\t%.1f A\n", res.Required)
			fmt.Fprintf(w, "  Status:\t%s\n", okMark(res.Compliant))
			if err := w.Flush(); err != nil {
				return err
			}
			printNotes(out, res.Notes)
			return nil
		},
	}
	cmd.Flags().Float64VarP(&current, "current", "i", 0, "Load current (A) [required]")
	cmd.Flags().Float64Var(&breaking, "breaking", 0, "Required breaking capacity (kA)")
	cmd.Flags().Float64Var(&voltageKV, "voltage", 0, "MV network voltage (kV); selects an MV breaker")
	cmd.Flags().BoolVar(&outdoor, "outdoor", false, "MV breaker for outdoor installation")
	_ = cmd.MarkFlagRequired("current")
	return cmd
}
