package loads

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"

	"Cabina/internal/calc/calcerr"
)

const (
	DefaultCosPhi  = 0.85
	DefaultVoltage = 400.0

	sqrt3 = 1.732
)

type Load struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	PowerKW  float64 `json:"power_kw"`
	Quantity int     `json:"quantity"`
	Ku       float64 `json:"ku"`
	CosPhi   float64 `json:"cos_phi"`
	VoltageV float64 `json:"voltage_v"`
	Phases   int     `json:"phases"`
}

// UnmarshalJSON fills omitted fields with one unit at full utilisation,
// cos phi 0.85, 400 V three-phase. Fields sent explicitly are kept as is.
func (l *Load) UnmarshalJSON(data []byte) error {
	type plain Load
	v := plain{Quantity: 1, Ku: 1, CosPhi: DefaultCosPhi, VoltageV: DefaultVoltage, Phases: 3}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = Load(v)
	return nil
}

type LoadResult struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	NominalKW     float64 `json:"power_nominal_kw"`
	Ku            float64 `json:"ku"`
	Kc            float64 `json:"kc"`
	CosPhi        float64 `json:"cos_phi"`
	EffectiveKW   float64 `json:"power_used_kw"`
	ApparentKVA   float64 `json:"power_apparent_kva"`
	CurrentA      float64 `json:"current_a"`
	CoincidenceBy string  `json:"kc_rule"`
}

type Result struct {
	TotalKW       float64      `json:"total_power_kw"`
	TotalKVA      float64      `json:"total_power_kva"`
	AverageCosPhi float64      `json:"average_cos_phi"`
	Breakdown     []LoadResult `json:"load_breakdown"`
}

// Aggregate applies Ku and Kc to every load and sums the system totals.
// Per-load values and totals are rounded to 0.1, the average power factor
// to 0.01.
func Aggregate(loads []Load) (Result, error) {
	res := Result{Breakdown: make([]LoadResult, 0, len(loads))}
	kw := make([]float64, 0, len(loads))
	kva := make([]float64, 0, len(loads))

	for i, l := range loads {
		if err := l.Validate(); err != nil {
			return Result{}, fmt.Errorf("load %d (%s): %w", i, l.Name, err)
		}
		kc, rule := Coincidence(l.Category, l.Name)
		p := l.PowerKW * float64(l.Quantity) * l.Ku * kc
		s := p / l.CosPhi
		current := s * 1000 / (sqrt3 * l.VoltageV)

		kw = append(kw, p)
		kva = append(kva, s)
		res.Breakdown = append(res.Breakdown, LoadResult{
			Name:          l.Name,
			Category:      l.Category,
			NominalKW:     round1(l.PowerKW * float64(l.Quantity)),
			Ku:            l.Ku,
			Kc:            kc,
			CosPhi:        l.CosPhi,
			EffectiveKW:   round1(p),
			ApparentKVA:   round1(s),
			CurrentA:      round1(current),
			CoincidenceBy: rule,
		})
	}

	totalKW, totalKVA := floats.Sum(kw), floats.Sum(kva)
	res.TotalKW = round1(totalKW)
	res.TotalKVA = round1(totalKVA)
	res.AverageCosPhi = DefaultCosPhi
	if totalKVA > 0 {
		res.AverageCosPhi = math.Round(totalKW/totalKVA*100) / 100
	}
	return res, nil
}

// LineCurrent is the three-phase current drawn by an apparent power.
func LineCurrent(kva, voltageV float64) float64 {
	return kva * 1000 / (sqrt3 * voltageV)
}

// Validate checks the fields that would make the power or current undefined.
func (l Load) Validate() error {
	for _, v := range []struct {
		field string
		val   float64
	}{{"power_kw", l.PowerKW}, {"ku", l.Ku}, {"cos_phi", l.CosPhi}, {"voltage_v", l.VoltageV}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return calcerr.Invalid(v.field, "must be a finite number, got %v", v.val)
		}
	}
	switch {
	case l.PowerKW <= 0:
		return calcerr.Invalid("power_kw", "must be positive, got %v", l.PowerKW)
	case l.Quantity < 1:
		return calcerr.Invalid("quantity", "must be at least 1, got %d", l.Quantity)
	case l.Ku <= 0 || l.Ku > 1:
		return calcerr.Invalid("ku", "must be in (0,1], got %v", l.Ku)
	case l.CosPhi <= 0 || l.CosPhi > 1:
		return calcerr.Invalid("cos_phi", "must be in (0,1], got %v", l.CosPhi)
	case l.VoltageV <= 0:
		return calcerr.Invalid("voltage_v", "must be positive, got %v", l.VoltageV)
	}
	return nil
}

type kcRule struct {
	name       string
	kc         float64
	inCategory []string
	inName     []string
}

// Order matters: a lighting load named "office lights" is lighting, not
// office, and an outlet category wins over a motor name.
var kcRules = []kcRule{
	{"lighting", 1.0, []string{"illuminazione", "lighting"}, []string{"luci", "light"}},
	{"outlets", 0.25, []string{"prese", "presa", "outlet", "socket"}, nil},
	{"offices", 0.25, nil, []string{"uffici", "office"}},
	{"heating", 1.0, []string{"riscaldamento", "heating"}, []string{"climatizzazione", "hvac", "climate"}},
	{"motors", 0.8, []string{"motori", "motore", "motor"}, []string{"compressor", "produzione", "production"}},
	{"kitchens", 0.7, []string{"cucine", "cucina", "kitchen"}, nil},
}

const defaultKc = 0.6

// Coincidence returns Kc for a load and the name of the rule that set it.
func Coincidence(category, name string) (float64, string) {
	c := strings.ToLower(strings.TrimSpace(category))
	n := strings.ToLower(strings.TrimSpace(name))
	for _, r := range kcRules {
		if containsAny(c, r.inCategory) || containsAny(n, r.inName) {
			return r.kc, r.name
		}
	}
	return defaultKc, "default"
}

// containsAny reports whether one of keys starts a word in s, so "lights"
// matches "light" and "flight" does not.
func containsAny(s string, keys []string) bool {
	for _, k := range keys {
		for i := 0; i+len(k) <= len(s); {
			j := strings.Index(s[i:], k)
			if j < 0 {
				break
			}
			j += i
			if prev, _ := utf8.DecodeLastRuneInString(s[:j]); j == 0 || !unicode.IsLetter(prev) {
				return true
			}
			i = j + 1
		}
	}
	return false
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
