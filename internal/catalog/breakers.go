package catalog

import "fmt"

type MVBreakerSeries struct {
	Key             string
	Series          string
	Manufacturer    string
	Insulation      string
	Installation    string
	Description     string
	VoltagesKV      Ladder
	CurrentsA       Ladder
	BreakingKA      Ladder
	MakingKA        Ladder
	ProductCodes    map[string]string // "{kV}kV_{A}A"
	MechanicalLife  int
	ElectricalLife  int
	OperatingTimeMs int
	CostBase        float64
	CostPerAmp      float64
}

// MVBreakerCodeKey is the product code lookup key for a voltage/current pair.
func MVBreakerCodeKey(voltageKV, currentA float64) string {
	return fmt.Sprintf("%skV_%sA", FormatRating(voltageKV), FormatRating(currentA))
}

func (s MVBreakerSeries) validate() error {
	for name, l := range map[string]Ladder{
		"voltage": s.VoltagesKV, "current": s.CurrentsA, "breaking": s.BreakingKA, "making": s.MakingKA,
	} {
		if err := l.validate(s.Key + " " + name); err != nil {
			return err
		}
	}
	return checkCost(s.Key, s.CostBase, s.CostPerAmp)
}

// MVBreaker returns the series for the given key.
func (c *Catalog) MVBreaker(key string) (MVBreakerSeries, bool) {
	for _, s := range c.MVBreakers {
		if s.Key == key {
			return s, true
		}
	}
	return MVBreakerSeries{}, false
}

const (
	MVVacuumIndoor = "vacuum_indoor"
	MVSF6Indoor    = "sf6_indoor"
)

func mvBreakers() []MVBreakerSeries {
	return []MVBreakerSeries{
		{
			Key:          MVVacuumIndoor,
			Series:       "HySec p230",
			Manufacturer: "ABB",
			Insulation:   "Vacuum",
			Installation: "Indoor",
			Description:  "MV vacuum circuit breaker",
			VoltagesKV:   Ladder{12, 17.5, 24, 36},
			CurrentsA:    Ladder{200, 400, 630, 800, 1000, 1250, 1600},
			BreakingKA:   Ladder{16, 20, 25, 31.5, 40},
			MakingKA:     Ladder{40, 50, 63, 80, 100},
			ProductCodes: map[string]string{
				"12kV_630A":  "VD4-P/630-12-H",
				"12kV_800A":  "VD4-P/800-12-H",
				"12kV_1250A": "VD4-P/1250-12-H",
				"24kV_630A":  "VD4-P/630-24-H",
				"24kV_800A":  "VD4-P/800-24-H",
				"24kV_1250A": "VD4-P/1250-24-H",
			},
			MechanicalLife:  10000,
			ElectricalLife:  50,
			OperatingTimeMs: 60,
			CostBase:        4500,
			CostPerAmp:      3.5,
		},
		{
			Key:          MVSF6Indoor,
			Series:       "HySec SF6",
			Manufacturer: "ABB",
			Insulation:   "SF6 gas",
			Installation: "Indoor",
			Description:  "MV SF6 circuit breaker",
			VoltagesKV:   Ladder{24, 36},
			CurrentsA:    Ladder{630, 1000, 1250, 1600, 2000, 2500, 3150},
			BreakingKA:   Ladder{25, 31.5, 40, 50},
			MakingKA:     Ladder{63, 80, 100, 125},
			ProductCodes: map[string]string{
				"24kV_1250A": "HD4-P/1250-24-SF6",
				"24kV_1600A": "HD4-P/1600-24-SF6",
				"24kV_2000A": "HD4-P/2000-24-SF6",
				"36kV_1250A": "HD4-P/1250-36-SF6",
				"36kV_1600A": "HD4-P/1600-36-SF6",
				"36kV_2500A": "HD4-P/2500-36-SF6",
			},
			MechanicalLife:  10000,
			ElectricalLife:  50,
			OperatingTimeMs: 50,
			CostBase:        6500,
			CostPerAmp:      4.0,
		},
	}
}

type LVBreakerFrame struct {
	Name         string            `json:"name"`
	CurrentsA    Ladder            `json:"currents_a"`
	BreakingKA   Ladder            `json:"breaking_ka"`
	ProductCodes map[string]string `json:"-"` // "{A}A"
	Dimensions   Dimensions        `json:"dimensions"`
	WeightKg     float64           `json:"weight_kg"`
	Applications []string          `json:"applications"`
}

// MaxBreakingKA is the best breaking capacity any version of the frame offers.
func (f LVBreakerFrame) MaxBreakingKA() float64 { return f.BreakingKA.Max() }

// LVBreakerCodeKey is the product code lookup key for a rated current.
func LVBreakerCodeKey(currentA float64) string {
	return FormatRating(currentA) + "A"
}

type LVBreakerSeries struct {
	Key             string
	Series          string
	Manufacturer    string
	Type            string // ACB or MCCB
	Description     string
	Frames          []LVBreakerFrame
	ProtectionUnits []string
	Applications    []string
	CostBase        float64
	CostPerAmp      float64
}

// Frame returns a frame by name.
func (s LVBreakerSeries) Frame(name string) (LVBreakerFrame, bool) {
	for _, f := range s.Frames {
		if f.Name == name {
			return f, true
		}
	}
	return LVBreakerFrame{}, false
}

// Largest returns the last (biggest) frame.
func (s LVBreakerSeries) Largest() LVBreakerFrame {
	return s.Frames[len(s.Frames)-1]
}

func (s LVBreakerSeries) validate() error {
	if len(s.Frames) == 0 {
		return fmt.Errorf("%s: no frames", s.Key)
	}
	for _, f := range s.Frames {
		if err := f.CurrentsA.validate(s.Key + " " + f.Name + " current"); err != nil {
			return err
		}
		if err := f.BreakingKA.validate(s.Key + " " + f.Name + " breaking"); err != nil {
			return err
		}
		for _, a := range f.CurrentsA {
			if f.ProductCodes[LVBreakerCodeKey(a)] == "" {
				return fmt.Errorf("%s %s: no product code for %v A", s.Key, f.Name, a)
			}
		}
	}
	return checkCost(s.Key, s.CostBase, s.CostPerAmp)
}

func emaxSeries() LVBreakerSeries {
	return LVBreakerSeries{
		Key:          "emax_2",
		Series:       "SACE Emax 2",
		Manufacturer: "ABB",
		Type:         "ACB",
		Description:  "Air circuit breaker",
		Frames: []LVBreakerFrame{
			{
				Name:       "E1.2",
				CurrentsA:  Ladder{800, 1000, 1200},
				BreakingKA: Ladder{42, 50, 65},
				ProductCodes: map[string]string{
					"800A":  "1SDA071201R1-E1.2B08",
					"1000A": "1SDA071301R1-E1.2B10",
					"1200A": "1SDA071401R1-E1.2B12",
				},
				Dimensions:   Dimensions{210, 297, 279},
				WeightKg:     32,
				Applications: []string{"Main distribution", "Transformer protection"},
			},
			{
				Name:       "E2.2",
				CurrentsA:  Ladder{1250, 1600, 2000},
				BreakingKA: Ladder{50, 65, 85, 100},
				ProductCodes: map[string]string{
					"1250A": "1SDA072201R1-E2.2B13",
					"1600A": "1SDA072301R1-E2.2B16",
					"2000A": "1SDA072401R1-E2.2B20",
				},
				Dimensions:   Dimensions{210, 431, 279},
				WeightKg:     45,
				Applications: []string{"Main distribution", "Transformer protection"},
			},
			{
				Name:       "E4.2",
				CurrentsA:  Ladder{2500, 3200, 4000},
				BreakingKA: Ladder{65, 85, 100, 130},
				ProductCodes: map[string]string{
					"2500A": "1SDA074201R1-E4.2B25",
					"3200A": "1SDA074301R1-E4.2B32",
					"4000A": "1SDA074401R1-E4.2B40",
				},
				Dimensions:   Dimensions{297, 567, 381},
				WeightKg:     95,
				Applications: []string{"Main distribution", "Transformer protection"},
			},
			{
				Name:       "E6.2",
				CurrentsA:  Ladder{5000, 6300},
				BreakingKA: Ladder{65, 100, 130, 150},
				ProductCodes: map[string]string{
					"5000A": "1SDA076201R1-E6.2B50",
					"6300A": "1SDA076301R1-E6.2B63",
				},
				Dimensions:   Dimensions{381, 729, 432},
				WeightKg:     160,
				Applications: []string{"Main distribution", "Transformer protection"},
			},
		},
		ProtectionUnits: []string{"PR331/P", "PR332/P", "PR333/P"},
		Applications:    []string{"General distribution", "Transformer protection", "Main switchboard"},
		CostBase:        8500,
		CostPerAmp:      4.5,
	}
}

func tmaxSeries() LVBreakerSeries {
	return LVBreakerSeries{
		Key:          "tmax_series",
		Series:       "Tmax",
		Manufacturer: "ABB",
		Type:         "MCCB",
		Description:  "Moulded case circuit breaker",
		Frames: []LVBreakerFrame{
			{
				Name:       "T4",
				CurrentsA:  Ladder{160, 200, 250, 320, 400},
				BreakingKA: Ladder{25, 36, 50, 65},
				ProductCodes: map[string]string{
					"160A": "1SDA054160R1-T4N160",
					"200A": "1SDA054200R1-T4N200",
					"250A": "1SDA054250R1-T4N250",
					"320A": "1SDA054320R1-T4N320",
					"400A": "1SDA054400R1-T4N400",
				},
				Dimensions:   Dimensions{105, 187, 86},
				WeightKg:     4.5,
				Applications: []string{"Lighting", "Small motors", "Outlets"},
			},
			{
				Name:       "T5",
				CurrentsA:  Ladder{400, 500, 630},
				BreakingKA: Ladder{36, 50, 65, 70},
				ProductCodes: map[string]string{
					"400A": "1SDA055400R1-T5N400",
					"500A": "1SDA055500R1-T5N500",
					"630A": "1SDA055630R1-T5N630",
				},
				Dimensions:   Dimensions{105, 297, 86},
				WeightKg:     7.5,
				Applications: []string{"Medium motors", "Distribution feeders"},
			},
			{
				Name:       "T6",
				CurrentsA:  Ladder{500, 630, 800},
				BreakingKA: Ladder{36, 50, 65, 70},
				ProductCodes: map[string]string{
					"500A": "1SDA056500R1-T6N500",
					"630A": "1SDA056630R1-T6N630",
					"800A": "1SDA056800R1-T6N800",
				},
				Dimensions:   Dimensions{140, 297, 139},
				WeightKg:     10,
				Applications: []string{"Large motors", "Main feeders"},
			},
			{
				Name:       "T7",
				CurrentsA:  Ladder{800, 1000, 1250, 1600},
				BreakingKA: Ladder{36, 50, 65, 70},
				ProductCodes: map[string]string{
					"800A":  "1SDA062801R1-T7S800",
					"1000A": "1SDA063001R1-T7S1000",
					"1250A": "1SDA063201R1-T7S1250",
					"1600A": "1SDA063601R1-T7S1600",
				},
				Dimensions:   Dimensions{140, 297, 139},
				WeightKg:     12,
				Applications: []string{"Main distribution", "Large feeders"},
			},
			{
				Name:       "T8",
				CurrentsA:  Ladder{800, 1000, 1250, 1600},
				BreakingKA: Ladder{50, 65, 70, 85},
				ProductCodes: map[string]string{
					"800A":  "1SDA068001R1-T8S800",
					"1000A": "1SDA068101R1-T8S1000",
					"1250A": "1SDA068201R1-T8S1250",
					"1600A": "1SDA068301R1-T8S1600",
				},
				Dimensions:   Dimensions{140, 297, 139},
				WeightKg:     13,
				Applications: []string{"High performance distribution"},
			},
		},
		ProtectionUnits: []string{"PR221", "PR222", "Ekip Touch"},
		Applications:    []string{"General distribution"},
		CostBase:        1200,
		CostPerAmp:      2.0,
	}
}
