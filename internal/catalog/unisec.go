package catalog

import "fmt"

type UnitType string

const (
	UnitIncoming    UnitType = "DG"
	UnitTransformer UnitType = "TR"
	UnitOutgoing    UnitType = "OUT"
	UnitMetering    UnitType = "MEASURING"
	UnitCoupling    UnitType = "COUPLING"
)

// UniSecUnit is one modular MV switchgear cubicle.
type UniSecUnit struct {
	Key          string   `json:"key"`
	Type         UnitType `json:"type"`
	WidthMM      int      `json:"width_mm"`
	HeightMM     int      `json:"height_mm"`
	DepthMM      int      `json:"depth_mm"`
	MaxCurrentA  int      `json:"max_current_a"`
	BreakingKA   int      `json:"breaking_ka"`
	ProductCode  string   `json:"product_code"`
	CostBase     int      `json:"cost_base"`
	Manufacturer string   `json:"manufacturer"`
	Description  string   `json:"description"`
}

var unisecFallback = map[UnitType]string{
	UnitIncoming:    "DG_500",
	UnitTransformer: "TR_500",
	UnitOutgoing:    "OUT_375",
	UnitMetering:    "MEASURING_375",
	UnitCoupling:    "COUPLING_750",
}

func unisecWidth(currentA float64) int {
	switch {
	case currentA <= 630:
		return 375
	case currentA <= 800:
		return 500
	case currentA <= 1250:
		return 600
	default:
		return 750
	}
}

// UniSecFor returns the cubicle of the given type whose width suits the
// current, falling back to the type's default unit.
func (c *Catalog) UniSecFor(t UnitType, currentA float64) (UniSecUnit, error) {
	want := fmt.Sprintf("%s_%d", t, unisecWidth(currentA))
	fallback, ok := unisecFallback[t]
	if !ok {
		return UniSecUnit{}, fmt.Errorf("unknown unit type %q", t)
	}
	var fb UniSecUnit
	for _, u := range c.UniSec {
		if u.Key == want {
			return u, nil
		}
		if u.Key == fallback {
			fb = u
		}
	}
	return fb, nil
}

func unisecUnits() []UniSecUnit {
	var units []UniSecUnit
	for _, w := range []int{375, 500, 600, 750} {
		maxI := 630
		if w >= 500 {
			maxI = 1250
		}
		units = append(units,
			UniSecUnit{
				Key: fmt.Sprintf("DG_%d", w), Type: UnitIncoming, WidthMM: w, MaxCurrentA: maxI, BreakingKA: 25,
				ProductCode: fmt.Sprintf("UniSec-DG-%dmm", w), CostBase: 12000 + w*8,
				Description: fmt.Sprintf("UniSec main device unit %d mm", w),
			},
			UniSecUnit{
				Key: fmt.Sprintf("TR_%d", w), Type: UnitTransformer, WidthMM: w, MaxCurrentA: maxI, BreakingKA: 25,
				ProductCode: fmt.Sprintf("UniSec-TR-%dmm", w), CostBase: 10000 + w*6,
				Description: fmt.Sprintf("UniSec transformer feeder unit %d mm", w),
			},
			UniSecUnit{
				Key: fmt.Sprintf("OUT_%d", w), Type: UnitOutgoing, WidthMM: w, MaxCurrentA: 630, BreakingKA: 25,
				ProductCode: fmt.Sprintf("UniSec-OUT-%dmm", w), CostBase: 8500 + w*5,
				Description: fmt.Sprintf("UniSec outgoing feeder unit %d mm", w),
			},
		)
	}
	units = append(units,
		UniSecUnit{
			Key: "MEASURING_375", Type: UnitMetering, WidthMM: 375, MaxCurrentA: 630,
			ProductCode: "UniSec-MES-375mm", CostBase: 6500, Description: "UniSec metering unit 375 mm",
		},
		UniSecUnit{
			Key: "COUPLING_750", Type: UnitCoupling, WidthMM: 750, MaxCurrentA: 1600, BreakingKA: 25,
			ProductCode: "UniSec-COUP-750mm", CostBase: 15000, Description: "UniSec bus coupler unit 750 mm",
		},
	)
	for i := range units {
		units[i].HeightMM = 2000
		units[i].DepthMM = 1000
		units[i].Manufacturer = "ABB"
	}
	return units
}
