package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Cabina/internal/calc/selector"
	"Cabina/internal/catalog"
)

func newTransformerCmd() *cobra.Command {
	var (
		kva        float64
		series     string
		continuity string
		double     bool
	)
	cmd := &cobra.Command{
		Use:   "transformer",
		Short: "Select the transformer bank for an apparent power",
		Long: `Recommend one transformer or two in parallel and pick the catalog
size with a 1.15 margin.

Examples:
  cabina transformer --kva 450
  cabina transformer --kva 900 --continuity privilegiata --series resibloc`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			cont := selector.Continuity(continuity)
			useDouble := selector.RecommendTransformerConfig(kva, cont).Double
			if cmd.Flags().Changed("double") {
				useDouble = double
			}
			bank, err := selector.New(cat).TransformerBank(kva, useDouble, catalog.TransformerSeries(series), cont)
			if err != nil {
				return err
			}
			t := bank.Unit.Item
			out := cmd.OutOrStdout()
			section(out, "Transformer selection")
			w := table(out)
			fmt.Fprintf(w, "  Configuration:\t%d x %d kVA\n", bank.Count, t.PowerKVA)
			fmt.Fprintf(w, "  Series:\t%s (%s)\n", t.Series, t.ProductCode)
			fmt.Fprintf(w, "  Load factor:\t%.1f %%\n", bank.LoadFactor*100)
			fmt.Fprintf(w, "  Losses:\t%d W no load, %d W load\n", bank.LossesNoLoadW, bank.LossesLoadW)
			fmt.Fprintf(w, "  Cost estimate:\t%d EUR\n", bank.TotalCost)
			fmt.Fprintf(w, "  Recommendation:\t%s\n", bank.Recommendation.Reason)
			fmt.Fprintf(w, "  Status:\t%s\n", okMark(bank.Unit.Compliant))
			if err := w.Flush(); err != nil {
				return err
			}
			printNotes(out, bank.Unit.Notes)
			return nil
		},
	}
	cmd.Flags().Float64Var(&kva, "kva", 0, "Total apparent power (kVA) [required]")
	cmd.Flags().StringVar(&series, "series", string(catalog.SeriesHiTPlus), "Transformer series: hi_t_plus, resibloc, onan")
	cmd.Flags().StringVar(&continuity, "continuity", string(selector.ContinuityNormal), "Service continuity: normale, privilegiata, essenziale")
	cmd.Flags().BoolVar(&double, "double", false, "Force two transformers in parallel (default follows the recommendation)")
	_ = cmd.MarkFlagRequired("kva")
	return cmd
}
