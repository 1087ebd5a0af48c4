package catalog

import (
	"errors"
	"fmt"
)

// CTFamily covers panel CTs (TRP), earth fault toroids (TO11) and
// pole VTs (TJP).
type CTFamily struct {
	StandardRatios  Ladder
	TRPCodes        map[int]string // primary A, secondary 5 A
	TRPCostSmall    float64        // up to 200 A
	TRPCostMedium   float64        // up to 600 A
	TRPCostLarge    float64
	ToroidDiameters Ladder // mm
	ToroidCodes     map[int]string
	ToroidCost      float64
	VTCodes         map[int]string // primary kV
	VTCost          float64
}

func (f CTFamily) validate() error {
	if err := f.StandardRatios.validate("CT ratios"); err != nil {
		return err
	}
	if err := f.ToroidDiameters.validate("toroid diameters"); err != nil {
		return err
	}
	if len(f.TRPCodes) == 0 || len(f.VTCodes) == 0 {
		return errors.New("instrument transformers: missing product codes")
	}
	return nil
}

// CTRatio returns the standard primary rating for a current, capped at the
// largest ratio.
func (f CTFamily) CTRatio(currentA float64) int {
	r, _ := f.StandardRatios.Ceil(currentA)
	return int(r)
}

// CT returns product code and unit cost for a 5 A secondary CT.
func (f CTFamily) CT(primaryA int) (code string, cost float64) {
	code, ok := f.TRPCodes[primaryA]
	if !ok {
		code = fmt.Sprintf("TRP %d/5A 5P10", primaryA)
	}
	switch {
	case primaryA <= 200:
		cost = f.TRPCostSmall
	case primaryA <= 600:
		cost = f.TRPCostMedium
	default:
		cost = f.TRPCostLarge
	}
	return code, cost
}

// Toroid returns the earth fault toroid for a cable bundle diameter.
func (f CTFamily) Toroid(diameterMM float64) (code string, cost float64) {
	d, _ := f.ToroidDiameters.Ceil(diameterMM)
	code, ok := f.ToroidCodes[int(d)]
	if !ok {
		code = fmt.Sprintf("TO11-%d-5P10", int(d))
	}
	return code, f.ToroidCost
}

// VT returns the pole voltage transformer for a network voltage.
func (f CTFamily) VT(voltageKV float64) (code string, cost float64) {
	for _, kv := range []int{20, 24, 30, 36} {
		if float64(kv) >= voltageKV {
			return f.VTCodes[kv], f.VTCost
		}
	}
	return f.VTCodes[36], f.VTCost
}

func currentTransformers() CTFamily {
	return CTFamily{
		StandardRatios: Ladder{5, 10, 15, 20, 25, 30, 40, 50, 75, 100, 150, 200, 250, 300, 400, 500, 600, 800, 1000, 1200, 1500, 2000},
		TRPCodes: map[int]string{
			100: "TRP 100/5A 5VA 5P10",
			200: "TRP 200/5A 5VA 5P10",
			400: "TRP 400/5A 10VA 5P10",
			600: "TRP 600/5A 15VA 5P10",
		},
		TRPCostSmall:    180,
		TRPCostMedium:   320,
		TRPCostLarge:    580,
		ToroidDiameters: Ladder{60, 80, 100, 120, 150, 200},
		ToroidCodes: map[int]string{
			80:  "TO11-80-5P10",
			120: "TO11-120-5P10",
			150: "TO11-150-5P10",
		},
		ToroidCost: 250,
		VTCodes: map[int]string{
			20: "TJP 4.0-20000/100-F",
			24: "TJP 4.0-24000/100-F",
			30: "TJP 4.0-30000/100-F",
			36: "TJP 4.0-36000/100-F",
		},
		VTCost: 650,
	}
}
