package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Cabina/internal/calc/earthing"
)

func newEarthingCmd() *cobra.Command {
	var (
		soil          string
		resistivity   float64
		faultCurrent  float64
		duration      float64
		length, width float64
		perimeter     float64
		maxResistance float64
		material      string
	)
	cmd := &cobra.Command{
		Use:   "earthing",
		Short: "Size the earth electrode for a fault current",
		Long: `Compare ring, rods and mixed earth electrodes and pick the cheapest
one meeting the required resistance. Without --resistivity the value is
estimated from the soil type.

Examples:
  cabina earthing --resistivity 100 --fault-current 50 --duration 0.5 --length 10 --width 10
  cabina earthing --soil argilla_umida --fault-current 50 --perimeter 40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := earthing.Soil{Type: earthing.SoilType(soil), ResistivityOhm: resistivity}
			req := earthing.Requirements{
				FaultCurrentA:     faultCurrent,
				FaultDurationS:    duration,
				MaxResistanceOhm:  maxResistance,
				ConductorMaterial: material,
			}
			var (
				res earthing.Result
				err error
			)
			if length != 0 || width != 0 {
				res, err = earthing.DesignForEnclosure(s, req, length, width)
			} else {
				res, err = earthing.Design(s, req, perimeter)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			section(out, "Earthing design")
			w := table(out)
			fmt.Fprintf(w, "  Configuration:\t%s\n", res.Configuration)
			fmt.Fprintf(w, "  Resistivity:\t%.0f Ohm m\n", res.ResistivityOhm)
			fmt.Fprintf(w, "  Resistance:\t%.3f Ohm (required %.3f Ohm)\n", res.ResistanceOhm, res.RequiredResistanceOhm)
			fmt.Fprintf(w, "  Conductor:\t%s\n", res.ConductorType)
			fmt.Fprintf(w, "  Electrodes:\t%d, %.1f m\n", res.ElectrodeCount, res.ElectrodeLengthM)
			fmt.Fprintf(w, "  Touch voltage:\t%.1f V\n", res.TouchVoltageV)
			fmt.Fprintf(w, "  Step voltage:\t%.1f V\n", res.StepVoltageV)
			fmt.Fprintf(w, "  Status:\t%s\n", okMark(res.Compliant))
			if err := w.Flush(); err != nil {
				return err
			}
			printNotes(out, res.Notes)

			items := earthing.Materials(res)
			section(out, "Materials")
			w = table(out)
			for _, m := range items {
				fmt.Fprintf(w, "  %s\t%.1f %s\t%.0f EUR\n", m.Item, m.Quantity, m.Unit, m.TotalCost)
			}
			fmt.Fprintf(w, "  Total\t\t%.0f EUR\n", earthing.MaterialsTotal(items))
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&soil, "soil", "", "Soil type used when --resistivity is not given")
	cmd.Flags().Float64Var(&resistivity, "resistivity", 0, "Measured soil resistivity (Ohm m)")
	cmd.Flags().Float64Var(&faultCurrent, "fault-current", 0, "Earth fault current (A) [required]")
	cmd.Flags().Float64Var(&duration, "duration", 0.5, "Fault duration (s)")
	cmd.Flags().Float64Var(&length, "length", 0, "Enclosure length (m)")
	cmd.Flags().Float64Var(&width, "width", 0, "Enclosure width (m)")
	cmd.Flags().Float64Var(&perimeter, "perimeter", 0, "Ring perimeter (m), used without --length/--width")
	cmd.Flags().Float64Var(&maxResistance, "max-resistance", 0, "Maximum earth resistance (Ohm)")
	cmd.Flags().StringVar(&material, "material", earthing.DefaultMaterial, "Conductor material: cu_nudo, acciaio_zincato, acciaio_rivestito")
	_ = cmd.MarkFlagRequired("fault-current")
	return cmd
}
