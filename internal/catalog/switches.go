package catalog

import "fmt"

type LVSwitchSeries struct {
	Key          string
	Series       string
	Manufacturer string
	Type         string
	Description  string
	LoadBreak    bool
	CurrentsA    Ladder
	VoltageV     int
	Poles        []int
	BreakingKA   float64 // 0 for pure isolators
	ProductCodes map[string]string
	Applications []string
	Standards    []string
	CostBase     float64
	CostPerAmp   float64
}

func (s LVSwitchSeries) validate() error {
	if err := s.CurrentsA.validate(s.Key + " current"); err != nil {
		return err
	}
	return checkCost(s.Key, s.CostBase, s.CostPerAmp)
}

// LVSwitch returns the load-break (OS) or isolator (OTM) series.
func (c *Catalog) LVSwitch(loadBreak bool) LVSwitchSeries {
	for _, s := range c.LVSwitches {
		if s.LoadBreak == loadBreak {
			return s
		}
	}
	return c.LVSwitches[0]
}

func lvSwitches() []LVSwitchSeries {
	otmCodes := map[string]string{}
	for i, a := range []int{125, 160, 200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600} {
		otmCodes[fmt.Sprintf("%dA", a)] = fmt.Sprintf("1SCA022471R%d-OTM%dF4CM230V", 6770+i, a)
	}
	osCodes := map[string]string{}
	for i, a := range []int{160, 200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600} {
		osCodes[fmt.Sprintf("%dA", a)] = fmt.Sprintf("1SCA1054%02dR1001-OS%dJ04", 61+i, a)
	}

	return []LVSwitchSeries{
		{
			Key:          "otm_series",
			Series:       "OTM",
			Manufacturer: "ABB",
			Type:         "Rotary switch disconnector",
			Description:  "LV rotary switch disconnector",
			CurrentsA:    Ladder{125, 160, 200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600, 2000, 2500, 3200, 4000},
			VoltageV:     690,
			Poles:        []int{3, 4},
			ProductCodes: otmCodes,
			Applications: []string{"Isolation", "Maintenance", "Emergency disconnect"},
			Standards:    []string{"IEC 60947-3", "CEI 23-51"},
			CostBase:     320,
			CostPerAmp:   0.8,
		},
		{
			Key:          "os_series",
			Series:       "OS",
			Manufacturer: "ABB",
			Type:         "Load break switch",
			Description:  "LV load break switch",
			LoadBreak:    true,
			CurrentsA:    Ladder{160, 200, 250, 315, 400, 500, 630, 800, 1000, 1250, 1600},
			VoltageV:     690,
			Poles:        []int{3, 4},
			BreakingKA:   10,
			ProductCodes: osCodes,
			Applications: []string{"Load switching", "Maintenance isolation", "Emergency disconnect"},
			Standards:    []string{"IEC 60947-3", "CEI 23-51"},
			CostBase:     580,
			CostPerAmp:   1.2,
		},
	}
}

type EarthSwitchSeries struct {
	Key                      string
	Series                   string
	Manufacturer             string
	Description              string
	FaultMaking              bool
	VoltagesKV               Ladder
	ShortCircuitKA           Ladder
	NormalCurrentsA          Ladder
	ProductCodes             map[string]string // "{kV}kV_{kA}kA"
	IECStandard              string
	IPRating                 string
	CostBase                 float64
	CostPerKA                float64
	InstallationRequirements []string
}

// EarthSwitchCodeKey is the product code lookup key for a voltage/short-circuit pair.
func EarthSwitchCodeKey(voltageKV, shortCircuitKA float64) string {
	return fmt.Sprintf("%skV_%skA", FormatRating(voltageKV), FormatRating(shortCircuitKA))
}

func (s EarthSwitchSeries) validate() error {
	for name, l := range map[string]Ladder{
		"voltage": s.VoltagesKV, "short-circuit": s.ShortCircuitKA, "normal current": s.NormalCurrentsA,
	} {
		if err := l.validate(s.Key + " " + name); err != nil {
			return err
		}
	}
	return checkCost(s.Key, s.CostBase, s.CostPerKA)
}

type MobileEarthSeries struct {
	Series                   string
	Manufacturer             string
	Description              string
	VoltagesKV               Ladder
	ShortCircuitA            Ladder
	Certifications           []string
	CostBase                 float64
	CostPerSet               float64
	InstallationRequirements []string
}

func (s MobileEarthSeries) validate() error {
	if err := s.VoltagesKV.validate("mobile earthing voltage"); err != nil {
		return err
	}
	if err := s.ShortCircuitA.validate("mobile earthing current"); err != nil {
		return err
	}
	return checkCost("mobile earthing", s.CostBase, s.CostPerSet)
}

func earthSwitches() []EarthSwitchSeries {
	ek6 := map[string]string{}
	for _, v := range []float64{12, 17.5, 20, 24, 36} {
		for _, ka := range []float64{25, 31.5, 40, 50} {
			if v == 36 && ka == 50 {
				continue
			}
			ek6[EarthSwitchCodeKey(v, ka)] = fmt.Sprintf("EK6-%s-%s", FormatRating(v), FormatRating(ka))
		}
	}
	ojwn := map[string]string{}
	for _, v := range []float64{12, 17.5, 20, 24} {
		for _, ka := range []float64{25, 31.5, 40} {
			ojwn[EarthSwitchCodeKey(v, ka)] = fmt.Sprintf("OJWN %s/%s", FormatRating(v), FormatRating(ka))
		}
	}

	return []EarthSwitchSeries{
		{
			Key:             "EK6",
			Series:          "EK6 - IEC Indoor Earthing Switch",
			Manufacturer:    "ABB",
			Description:     "High-speed closing earthing switch rated for short-circuit making",
			VoltagesKV:      Ladder{12, 17.5, 20, 24, 36, 40.5},
			ShortCircuitKA:  Ladder{25, 31.5, 40, 50, 63, 80, 100, 120},
			NormalCurrentsA: Ladder{630, 800, 1000, 1250, 1600, 2000, 2500},
			ProductCodes:    ek6,
			IECStandard:     "IEC 62271-102",
			IPRating:        "IP54",
			CostBase:        3500,
			CostPerKA:       25,
			InstallationRequirements: []string{
				"Separate delivery room",
				"Mechanical key interlock with the distributor",
				"Mandatory warning sign",
				"Coordination with distributor devices",
				"Dedicated earth connection per CEI 11-1",
			},
		},
		{
			Key:             "OJWN",
			Series:          "OJWN - IEC Indoor Earthing Switch with Fault Making Capacity",
			Manufacturer:    "ABB",
			Description:     "Shorts and earths networks disconnected from supply, reliable fault making",
			FaultMaking:     true,
			VoltagesKV:      Ladder{12, 17.5, 20, 24},
			ShortCircuitKA:  Ladder{25, 31.5, 40, 50, 63, 80, 100},
			NormalCurrentsA: Ladder{630, 800, 1000, 1250, 1600, 2000},
			ProductCodes:    ojwn,
			IECStandard:     "IEC 62271-102",
			IPRating:        "IP54",
			CostBase:        2800,
			CostPerKA:       35,
			InstallationRequirements: []string{
				"Separate delivery room",
				"Mechanical key interlock with the distributor",
				"Spring mechanism for safe closing",
				"Sign: 'OPERATE ONLY AFTER DISTRIBUTOR INTERVENTION'",
			},
		},
	}
}

func mobileEarth() MobileEarthSeries {
	return MobileEarthSeries{
		Series:         "CEI EN 61230 mobile devices",
		Manufacturer:   "Certified suppliers",
		Description:    "Portable earthing devices to CEI EN 61230",
		VoltagesKV:     Ladder{12, 17.5, 20, 24, 36},
		ShortCircuitA:  Ladder{1000, 1600, 2000, 2500, 3150},
		Certifications: []string{"CEI EN 61230", "IEC 61230"},
		CostBase:       800,
		CostPerSet:     200,
		InstallationRequirements: []string{
			"No fixed earthing switch",
			"Attachment points for mobile devices",
			"Detailed operating instructions",
			"Mandatory staff training",
		},
	}
}
