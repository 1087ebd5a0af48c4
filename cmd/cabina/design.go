package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"Cabina/internal/calc/report"
	"Cabina/internal/wizard"
)

func newDesignCmd() *cobra.Command {
	var file, pdfOut, xlsxOut string
	cmd := &cobra.Command{
		Use:   "design",
		Short: "Run the full substation design from a project file",
		Long: `Run every design step from a JSON project file (the same body as
POST /api/project/design) and print a summary with all warnings.

Examples:
  cabina design --file project.json
  cabina design -f project.json --pdf report.pdf --xlsx bom.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readProject(file)
			if err != nil {
				return err
			}
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			s, err := wizard.New(cat).Run(req)
			if err != nil {
				return err
			}
			printProject(cmd.OutOrStdout(), s)

			if pdfOut != "" {
				if err := writeFile(pdfOut, s, report.WritePDF); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", pdfOut)
			}
			if xlsxOut != "" {
				if err := writeFile(xlsxOut, s, report.WriteXLSX); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Bill of materials written to %s\n", xlsxOut)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON project file [required]")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "Write the PDF technical report to this path")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Write the XLSX bill of materials to this path")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readProject(path string) (wizard.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return wizard.Request{}, err
	}
	defer f.Close()
	var req wizard.Request
	if err := json.NewDecoder(f).Decode(&req); err != nil {
		return wizard.Request{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return req, nil
}

func writeFile(path string, s wizard.State, write func(io.Writer, wizard.State) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, s)
}

func printProject(out io.Writer, s wizard.State) {
	section(out, "Project "+s.ID)
	w := table(out)
	fmt.Fprintf(w, "  Loads:\t%.1f kW, %.1f kVA\n", s.LoadResult.TotalKW, s.LoadResult.TotalKVA)
	fmt.Fprintf(w, "  Transformers:\t%d x %d kVA %s\n", s.Transformers.Count, s.Transformers.Unit.Item.PowerKVA, s.Transformers.Unit.Item.Series)
	fmt.Fprintf(w, "  Earth switch:\t%s %s\n", s.EarthSwitch.Switch.Item.Series, s.EarthSwitch.Switch.Item.Kind)
	fmt.Fprintf(w, "  MV panel:\t%s, %d units, %.0f EUR\n", s.MV.Series, s.MV.UnitCount, s.MV.TotalCost)
	fmt.Fprintf(w, "  Protection:\tCEI 0-16 %s, selectivity %s\n", okMark(s.Protection.CEI016Compliant), okMark(s.Protection.Selective))
	fmt.Fprintf(w, "  LV board:\t%s %s, %.1f %% (%s)\n", s.LV.MainBreaker.Item.Series, s.LV.MainBreaker.Item.Frame, s.LV.UtilizationPct, s.LV.Utilization)
	fmt.Fprintf(w, "  Earthing:\t%s, %.3f Ohm\n", s.Earthing.Design.Configuration, s.Earthing.Design.ResistanceOhm)
	fmt.Fprintf(w, "  Status:\t%s\n", okMark(s.Compliant()))
	w.Flush()

	if len(s.Warnings) > 0 {
		section(out, "Warnings")
		for _, warn := range s.Warnings {
			fmt.Fprintf(out, "  [%s] %s\n", warn.Step, warn.Message)
		}
	}
}
