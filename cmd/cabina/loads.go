package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"Cabina/internal/calc/importer"
	"Cabina/internal/calc/loads"
)

func newLoadsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "loads",
		Short: "Aggregate a load list",
		Long: `Apply Ku and the category coincidence factor to every load and sum
the installation totals.

The file is either JSON (an array of loads or {"loads": [...]}) or an
XLSX sheet with columns name, category, power, quantity, Ku, cos phi,
voltage.

Examples:
  cabina loads --file loads.json
  cabina loads -f loads.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readLoads(file)
			if err != nil {
				return err
			}
			res, err := loads.Aggregate(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			section(out, "Load breakdown")
			w := table(out)
			fmt.Fprintln(w, "  Load\tCategory\tPn kW\tKu\tKc\tcos phi\tP kW\tS kVA\tI A")
			for _, l := range res.Breakdown {
				fmt.Fprintf(w, "  %s\t%s\t%.1f\t%.2f\t%.2f\t%.2f\t%.1f\t%.1f\t%.1f\n",
					l.Name, l.Category, l.NominalKW, l.Ku, l.Kc, l.CosPhi, l.EffectiveKW, l.ApparentKVA, l.CurrentA)
			}
			w.Flush()
			section(out, "Totals")
			w = table(out)
			fmt.Fprintf(w, "  Active power:\t%.1f kW\n", res.TotalKW)
			fmt.Fprintf(w, "  Apparent power:\t%.1f kVA\n", res.TotalKVA)
			fmt.Fprintf(w, "  Average cos phi:\t%.2f\n", res.AverageCosPhi)
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON or XLSX load list [required]")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readLoads(path string) ([]loads.Load, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		imp, err := importer.ParseLoads(f)
		if err != nil {
			return nil, err
		}
		for _, s := range imp.Skipped {
			fmt.Fprintf(os.Stderr, "row %d skipped: %s\n", s.Row, s.Reason)
		}
		return imp.Loads, nil
	}

	var raw json.RawMessage
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	var list []loads.Load
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var req loads.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return req.Loads, nil
}
