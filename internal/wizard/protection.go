package wizard

import "fmt"

// RelaySettings are the overcurrent (50/51) and earth fault (50N/51N)
// thresholds of an MV relay, currents in primary amperes.
type RelaySettings struct {
	I2A  float64 `json:"i2_a"` // I>>
	T2S  float64 `json:"t2_s"`
	I3A  float64 `json:"i3_a"` // I>>>
	T3S  float64 `json:"t3_s"`
	Io1A float64 `json:"io1_a"` // Io>
	To1S float64 `json:"to1_s"`
	Io2A float64 `json:"io2_a"` // Io>>
	To2S float64 `json:"to2_s"`
}

// CEI016Limits bounds the main device (DG) settings.
type CEI016Limits struct {
	I2MaxA  float64 `json:"i2_max_a"`
	T2MaxS  float64 `json:"t2_max_s"`
	I3MaxA  float64 `json:"i3_max_a"`
	T3MaxS  float64 `json:"t3_max_s"`
	Io1MaxA float64 `json:"io1_max_a"`
	To1MaxS float64 `json:"to1_max_s"`
	Io2MaxA float64 `json:"io2_max_a"`
	To2MaxS float64 `json:"to2_max_s"`
}

// LimitsFor returns the CEI 0-16 limits; Io>> depends on the distributor's
// earth fault current.
func LimitsFor(earthFaultCurrentA float64) CEI016Limits {
	return CEI016Limits{
		I2MaxA: 250, T2MaxS: 0.5,
		I3MaxA: 600, T3MaxS: 0.12,
		Io1MaxA: 2, To1MaxS: 0.45,
		Io2MaxA: float64(int(earthFaultCurrentA * 1.4)), To2MaxS: 0.17,
	}
}

// DefaultDGSettings sit on the limits for overcurrent and slightly inside
// them for time.
func DefaultDGSettings(earthFaultCurrentA float64) RelaySettings {
	return RelaySettings{
		I2A: 250, T2S: 0.4,
		I3A: 600, T3S: 0.05,
		Io1A: 2, To1S: 0.45,
		Io2A: float64(int(earthFaultCurrentA * 1.4)), To2S: 0.17,
	}
}

// DefaultTransformerSettings are the feeder settings coordinated below the
// DG defaults.
func DefaultTransformerSettings() RelaySettings {
	return RelaySettings{I2A: 120, T2S: 0.3, I3A: 416, T3S: 0.05}
}

type Protection struct {
	DG              RelaySettings `json:"dg_settings"`
	Transformer     RelaySettings `json:"transformer_settings"`
	Limits          CEI016Limits  `json:"limits"`
	CEI016Compliant bool          `json:"cei_016_compliant"`
	Selective       bool          `json:"selectivity_verified"`
	Issues          []string      `json:"issues"`
}

const (
	protectionTimeMargin = 0.1 // s between DG and feeder I>> stages
	timeEpsilon          = 1e-9
)

// CheckProtection validates DG settings against CEI 0-16 and their
// coordination with the transformer feeder relays.
func CheckProtection(dg, tr RelaySettings, earthFaultCurrentA float64) Protection {
	lim := LimitsFor(earthFaultCurrentA)
	p := Protection{DG: dg, Transformer: tr, Limits: lim, CEI016Compliant: true, Selective: true, Issues: []string{}}

	limit := func(name string, v, max float64, unit string) {
		if v > max+timeEpsilon {
			p.CEI016Compliant = false
			p.Issues = append(p.Issues, fmt.Sprintf("DG %s = %g %s exceeds CEI 0-16 limit %g %s", name, v, unit, max, unit))
		}
	}
	limit("I>>", dg.I2A, lim.I2MaxA, "A")
	limit("t>>", dg.T2S, lim.T2MaxS, "s")
	limit("I>>>", dg.I3A, lim.I3MaxA, "A")
	limit("t>>>", dg.T3S, lim.T3MaxS, "s")
	limit("Io>", dg.Io1A, lim.Io1MaxA, "A")
	limit("to>", dg.To1S, lim.To1MaxS, "s")
	limit("Io>>", dg.Io2A, lim.Io2MaxA, "A")
	limit("to>>", dg.To2S, lim.To2MaxS, "s")

	if dg.T2S-tr.T2S < protectionTimeMargin-timeEpsilon {
		p.Selective = false
		p.Issues = append(p.Issues, fmt.Sprintf("t>> margin between DG and transformer feeder is %.2f s, below %.2f s", dg.T2S-tr.T2S, protectionTimeMargin))
	}
	if tr.I2A >= dg.I2A || tr.I3A >= dg.I3A {
		p.Selective = false
		p.Issues = append(p.Issues, "transformer feeder thresholds must stay below the DG thresholds")
	}
	return p
}
