package earthing

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"Cabina/internal/calc/calcerr"
)

type SoilType string

const (
	ArgillaUmida     SoilType = "argilla_umida"
	ArgillaSecca     SoilType = "argilla_secca"
	SabbiaUmida      SoilType = "sabbia_umida"
	SabbiaSecca      SoilType = "sabbia_secca"
	GhiaiaUmida      SoilType = "ghiaia_umida"
	GhiaiaSecca      SoilType = "ghiaia_secca"
	TerrenoColtivato SoilType = "terreno_coltivato"
	Roccia           SoilType = "roccia"
)

// typical resistivity range in ohm*m
var soilRanges = map[SoilType][2]float64{
	ArgillaUmida:     {20, 100},
	ArgillaSecca:     {100, 300},
	SabbiaUmida:      {50, 200},
	SabbiaSecca:      {200, 1000},
	GhiaiaUmida:      {100, 300},
	GhiaiaSecca:      {500, 2000},
	TerrenoColtivato: {30, 150},
	Roccia:           {1000, 10000},
}

type conductor struct {
	name       string
	k          float64
	minSection float64 // mm2, MV side
	costPerM   float64
}

var conductors = map[string]conductor{
	"cu_nudo":           {"Bare copper", 143, 50, 15},
	"acciaio_zincato":   {"Galvanized steel", 78, 80, 8},
	"acciaio_rivestito": {"Copper-clad steel", 143, 50, 12},
}

const (
	DefaultMaterial       = "cu_nudo"
	DefaultSeasonalFactor = 1.2
	DefaultTouchLimitV    = 50.0
	DefaultStepLimitV     = 125.0

	conductorRadiusM = 0.005
	rodLengthM       = 1.5
	rodEfficiency    = 0.7
	safetyMargin     = 0.8
	touchFactor      = 0.3
	stepFactor       = 0.2
)

type Configuration string

const (
	Ring  Configuration = "ring"
	Rods  Configuration = "rods"
	Mixed Configuration = "mixed"
)

type Soil struct {
	Type           SoilType `json:"soil_type"`
	ResistivityOhm float64  `json:"resistivity_ohm_m"` // 0: estimate from Type
	DepthM         float64  `json:"depth_m"`
	SeasonalFactor float64  `json:"seasonal_factor"` // 0: 1.2
}

type Requirements struct {
	FaultCurrentA     float64 `json:"earth_fault_current_a"`
	FaultDurationS    float64 `json:"fault_duration_s"`
	MaxResistanceOhm  float64 `json:"max_earth_resistance_ohm"` // 0: derived from the touch limit only
	MaxTouchVoltageV  float64 `json:"max_touch_voltage_v"`
	MaxStepVoltageV   float64 `json:"max_step_voltage_v"`
	ConductorMaterial string  `json:"conductor_material"`
}

type Candidate struct {
	Configuration  Configuration `json:"configuration"`
	ResistanceOhm  float64       `json:"resistance_ohm"`
	ElectrodeLenM  float64       `json:"electrode_length_m"`
	ElectrodeCount int           `json:"electrode_count"`
	Cost           float64       `json:"cost_eur"`
}

type Result struct {
	Configuration         Configuration `json:"configuration"`
	ResistanceOhm         float64       `json:"total_resistance_ohm"`
	RequiredResistanceOhm float64       `json:"required_resistance_ohm"`
	ResistivityOhm        float64       `json:"effective_resistivity_ohm_m"`
	ConductorSectionMM2   float64       `json:"conductor_section_mm2"`
	ConductorMaterial     string        `json:"conductor_material"`
	ConductorType         string        `json:"conductor_type"`
	ElectrodeLengthM      float64       `json:"electrode_length_m"`
	ElectrodeCount        int           `json:"electrode_count"`
	TouchVoltageV         float64       `json:"touch_voltage_v"`
	StepVoltageV          float64       `json:"step_voltage_v"`
	ResistanceOK          bool          `json:"resistance_ok"`
	TouchOK               bool          `json:"touch_ok"`
	StepOK                bool          `json:"step_ok"`
	Compliant             bool          `json:"compliant"`
	CostEUR               int           `json:"total_cost_eur"`
	Candidates            []Candidate   `json:"candidates"`
	Notes                 []string      `json:"notes"`
}

// EstimateResistivity returns the midpoint of the soil's typical range with
// a 20% conservative margin, times 1.5 for dry season conditions.
func EstimateResistivity(soil SoilType, seasonal bool) (float64, error) {
	r, ok := soilRanges[SoilType(strings.ToLower(string(soil)))]
	if !ok {
		return 0, calcerr.Invalid("soil_type", "unknown soil type %q", soil)
	}
	rho := (r[0] + r[1]) / 2 * 1.2
	if seasonal {
		rho *= 1.5
	}
	return rho, nil
}

// RequiredResistance is the largest earth resistance that keeps the touch
// voltage under the limit, with a 20% margin.
func RequiredResistance(faultCurrentA, touchLimitV float64) (float64, error) {
	if faultCurrentA <= 0 {
		return 0, calcerr.Invalid("earth_fault_current_a", "must be positive, got %v", faultCurrentA)
	}
	if touchLimitV <= 0 {
		return 0, calcerr.Invalid("max_touch_voltage_v", "must be positive, got %v", touchLimitV)
	}
	return touchLimitV / faultCurrentA * safetyMargin, nil
}

// ConductorSection is I*sqrt(t)/k floored at the material's MV minimum.
func ConductorSection(faultCurrentA, durationS float64, material string) (float64, error) {
	c, ok := conductors[material]
	if !ok {
		return 0, calcerr.Invalid("conductor_material", "unknown material %q", material)
	}
	if durationS < 0 {
		return 0, calcerr.Invalid("fault_duration_s", "must not be negative, got %v", durationS)
	}
	return math.Max(faultCurrentA*math.Sqrt(durationS)/c.k, c.minSection), nil
}

// RingResistance is rho/(2*pi*L) * ln(2L/a) for a buried ring of length L.
func RingResistance(perimeterM, rho float64) float64 {
	return rho / (2 * math.Pi * perimeterM) * math.Log(2*perimeterM/conductorRadiusM)
}

// RodCount is the number of 1.5 m rods needed for the target, at least two.
func RodCount(targetOhm, rho float64) int {
	single := rho / (2 * math.Pi * rodLengthM)
	return max(2, int(math.Ceil(single/(targetOhm*rodEfficiency))))
}

func rodsResistance(n int, rho float64) float64 {
	return rho / (2 * math.Pi * rodLengthM) / (float64(n) * rodEfficiency)
}

// DesignForEnclosure designs the earthing for a rectangular substation.
func DesignForEnclosure(soil Soil, req Requirements, lengthM, widthM float64) (Result, error) {
	if lengthM <= 0 {
		return Result{}, calcerr.Invalid("length_m", "must be positive, got %v", lengthM)
	}
	if widthM <= 0 {
		return Result{}, calcerr.Invalid("width_m", "must be positive, got %v", widthM)
	}
	return Design(soil, req, 2*(lengthM+widthM))
}

// Design compares a perimeter ring, vertical rods and both together, and
// returns the cheapest configuration meeting the required resistance. When
// none does the lowest resistance one is returned, non-compliant.
func Design(soil Soil, req Requirements, perimeterM float64) (Result, error) {
	res := Result{Notes: []string{}}

	if req.FaultCurrentA <= 0 {
		return Result{}, calcerr.Invalid("earth_fault_current_a", "must be positive, got %v", req.FaultCurrentA)
	}
	if perimeterM <= 0 {
		return Result{}, calcerr.Invalid("perimeter_m", "must be positive, got %v", perimeterM)
	}
	if f := soil.SeasonalFactor; f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Result{}, calcerr.Invalid("seasonal_factor", "must be positive, got %v", f)
	}
	material := req.ConductorMaterial
	if material == "" {
		material = DefaultMaterial
	}
	touchLimit := orDefault(req.MaxTouchVoltageV, DefaultTouchLimitV)
	stepLimit := orDefault(req.MaxStepVoltageV, DefaultStepLimitV)
	seasonal := orDefault(soil.SeasonalFactor, DefaultSeasonalFactor)

	rho := soil.ResistivityOhm
	switch {
	case rho < 0 || math.IsNaN(rho) || math.IsInf(rho, 0):
		return Result{}, calcerr.Invalid("resistivity_ohm_m", "must be positive, got %v", rho)
	case rho == 0 && soil.Type == "":
		return Result{}, calcerr.Invalid("resistivity_ohm_m", "required when no soil type is given")
	case rho == 0:
		est, err := EstimateResistivity(soil.Type, true)
		if err != nil {
			return Result{}, err
		}
		rho = est
		res.Notes = append(res.Notes, fmt.Sprintf("resistivity estimated from soil type: %.0f ohm*m", est))
	}
	rho *= seasonal
	res.ResistivityOhm = rho

	section, err := ConductorSection(req.FaultCurrentA, req.FaultDurationS, material)
	if err != nil {
		return Result{}, err
	}
	required, err := RequiredResistance(req.FaultCurrentA, touchLimit)
	if err != nil {
		return Result{}, err
	}
	if req.MaxResistanceOhm > 0 && req.MaxResistanceOhm < required {
		required = req.MaxResistanceOhm
	}
	res.RequiredResistanceOhm = required
	res.ConductorSectionMM2 = section
	res.ConductorMaterial = material
	res.ConductorType = fmt.Sprintf("%s %.0f mm2", conductors[material].name, section)

	ring := RingResistance(perimeterM, rho)
	n := RodCount(required, rho)
	rods := rodsResistance(n, rho)
	res.Candidates = []Candidate{
		{Ring, ring, perimeterM, 1, perimeterM*15 + 500},
		{Rods, rods, float64(n) * rodLengthM, n, float64(n)*75 + perimeterM*8},
		{Mixed, 1 / (1/ring + 1/rods), perimeterM + float64(n)*rodLengthM, n + 1, perimeterM*15 + float64(n)*75 + 800},
	}

	best, ok := Choose(res.Candidates, required)
	res.ResistanceOK = ok
	res.Configuration = best.Configuration
	res.ResistanceOhm = best.ResistanceOhm
	res.ElectrodeLengthM = best.ElectrodeLenM
	res.ElectrodeCount = best.ElectrodeCount
	res.CostEUR = int(best.Cost)

	res.TouchVoltageV = best.ResistanceOhm * req.FaultCurrentA * touchFactor
	res.StepVoltageV = best.ResistanceOhm * req.FaultCurrentA * stepFactor
	res.TouchOK = res.TouchVoltageV <= touchLimit
	res.StepOK = res.StepVoltageV <= stepLimit
	res.Compliant = res.ResistanceOK && res.TouchOK && res.StepOK
	if !ok {
		res.Notes = append(res.Notes, fmt.Sprintf("no configuration reaches %.3f ohm, lowest resistance used", required))
	}
	return res, nil
}

// Choose returns the cheapest candidate within the required resistance, or
// the lowest resistance one with ok=false.
func Choose(candidates []Candidate, requiredOhm float64) (best Candidate, ok bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	var valid []Candidate
	var costs []float64
	for _, c := range candidates {
		if c.ResistanceOhm <= requiredOhm {
			valid = append(valid, c)
			costs = append(costs, c.Cost)
		}
	}
	if len(valid) > 0 {
		return valid[floats.MinIdx(costs)], true
	}
	rs := make([]float64, len(candidates))
	for i, c := range candidates {
		rs[i] = c.ResistanceOhm
	}
	return candidates[floats.MinIdx(rs)], false
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
