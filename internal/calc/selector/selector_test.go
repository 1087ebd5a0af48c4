package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/catalog"
)

func newTestSelector(t *testing.T) *Selector {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return New(cat)
}

func TestTransformer_CeilingWithMargin(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.Transformer(350, catalog.SeriesHiTPlus, 1.15)
	require.NoError(t, err)
	assert.InDelta(t, 402.5, sel.Required, 1e-9)
	assert.Equal(t, 500, sel.Item.PowerKVA)
	assert.True(t, sel.Compliant)
	assert.Empty(t, sel.Notes)
	assert.NotNil(t, sel.Notes)

	// zero margin means the default
	def, err := s.Transformer(350, catalog.SeriesHiTPlus, 0)
	require.NoError(t, err)
	assert.Equal(t, sel, def)
}

func TestTransformer_UnknownSeriesFallsBack(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.Transformer(100, "dry_magic", 0)
	require.NoError(t, err)
	assert.Equal(t, catalog.SeriesHiTPlus, sel.Item.SeriesKey)
	assert.Equal(t, 160, sel.Item.PowerKVA)
	assert.True(t, sel.Compliant)
	assert.Len(t, sel.Notes, 1)

	oil, err := s.Transformer(100, catalog.SeriesONAN, 0)
	require.NoError(t, err)
	assert.Equal(t, catalog.SeriesONAN, oil.Item.SeriesKey)
}

func TestTransformer_Fallback(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.Transformer(3000, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 2500, sel.Item.PowerKVA)
	assert.False(t, sel.Compliant)
	assert.NotEmpty(t, sel.Notes)
}

func TestTransformer_InvalidInput(t *testing.T) {
	s := newTestSelector(t)

	_, err := s.Transformer(0, "", 0)
	var ie *calcerr.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "kva", ie.Field)

	_, err = s.Transformer(100, "", -1)
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "margin", ie.Field)
}

func TestRecommendTransformerConfig(t *testing.T) {
	tests := []struct {
		kva        float64
		continuity Continuity
		double     bool
	}{
		{100, ContinuityEssential, true},
		{1300, ContinuityNormal, true},
		{250, ContinuityPrivileged, false},
		{600, ContinuityPrivileged, true},
		{450, ContinuityPrivileged, false},
		{900, ContinuityNormal, true},
		{700, ContinuityNormal, false},
		{400, ContinuityNormal, false},
	}
	for _, tt := range tests {
		rec := RecommendTransformerConfig(tt.kva, tt.continuity)
		assert.Equal(t, tt.double, rec.Double, "%v kVA %s", tt.kva, tt.continuity)
		assert.NotEmpty(t, rec.Reason)
	}
}

func TestTransformerBank(t *testing.T) {
	s := newTestSelector(t)

	bank, err := s.TransformerBank(800, true, "", ContinuityNormal)
	require.NoError(t, err)
	assert.Equal(t, 2, bank.Count)
	assert.Equal(t, 500, bank.Unit.Item.PowerKVA)
	assert.Equal(t, 1000.0, bank.InstalledKVA)
	assert.InDelta(t, 0.8, bank.LoadFactor, 1e-9)
	assert.Equal(t, bank.Unit.Item.CostEstimate*2, bank.TotalCost)
	assert.Equal(t, 2200, bank.LossesNoLoadW)
	assert.False(t, bank.Recommendation.Double)
	assert.False(t, bank.Concordant)

	single, err := s.TransformerBank(800, false, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1000, single.Unit.Item.PowerKVA)
	assert.True(t, single.Concordant)

	_, err = s.TransformerBank(800, false, "", "urgente")
	assert.Error(t, err)
}

func TestMVBreaker(t *testing.T) {
	s := newTestSelector(t)

	tests := []struct {
		name                 string
		current, kv, ka      float64
		indoor               bool
		wantKey, wantCode    string
		wantCurrent, wantKV  float64
		wantBreaking         float64
		wantCompliant        bool
	}{
		{"vacuum with code", 630, 20, 16, true, catalog.MVVacuumIndoor, "VD4-P/630-24-H", 630, 24, 16, true},
		{"vacuum synthesized code", 150, 12, 12.5, true, catalog.MVVacuumIndoor, "HySec p230-12kV-200A", 200, 12, 16, true},
		{"sf6 above 24 kV", 1100, 36, 25, true, catalog.MVSF6Indoor, "HD4-P/1250-36-SF6", 1250, 36, 25, true},
		{"outdoor uses sf6", 630, 20, 16, false, catalog.MVSF6Indoor, "HySec SF6-24kV-630A", 630, 24, 25, true},
		{"voltage above range", 630, 40, 25, true, catalog.MVSF6Indoor, "HySec SF6-36kV-630A", 630, 36, 25, false},
		{"breaking above range", 630, 20, 50, true, catalog.MVVacuumIndoor, "VD4-P/630-24-H", 630, 24, 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := s.MVBreaker(tt.current, tt.kv, tt.ka, tt.indoor)
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, sel.Item.Key)
			assert.Equal(t, tt.wantCode, sel.Item.ProductCode)
			assert.Equal(t, tt.wantCurrent, sel.Item.RatedCurrentA)
			assert.Equal(t, tt.wantKV, sel.Item.RatedVoltageKV)
			assert.Equal(t, tt.wantBreaking, sel.Item.BreakingKA)
			assert.Equal(t, tt.wantBreaking*2.5, sel.Item.MakingKA)
			assert.Equal(t, tt.wantCompliant, sel.Compliant)
		})
	}

	sel, err := s.MVBreaker(630, 20, 16, true)
	require.NoError(t, err)
	assert.Equal(t, 4500+630*3.5, sel.Item.CostEstimate)
}

func TestLVBreaker_FallbackAbsurdCurrent(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.LVBreaker(50000, 50)
	require.NoError(t, err)
	assert.Equal(t, 6300.0, sel.Item.RatedCurrentA)
	assert.Equal(t, "E6.2", sel.Item.Frame)
	assert.Equal(t, "PR333/P", sel.Item.ProtectionUnit)
	assert.False(t, sel.Compliant)
	assert.NotEmpty(t, sel.Notes)
}

func TestLVMainBreaker(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.LVMainBreaker(1000, 50)
	require.NoError(t, err)
	assert.InDelta(t, 1391.2, sel.Requirement, 0.05)
	assert.InDelta(t, 1739.1, sel.Required, 0.05)
	assert.Equal(t, "E2.2", sel.Item.Frame)
	assert.Equal(t, 2000.0, sel.Item.RatedCurrentA)
	assert.Equal(t, "1SDA072401R1-E2.2B20", sel.Item.ProductCode)
	assert.Equal(t, "PR331/P", sel.Item.ProtectionUnit)
	assert.Equal(t, "A", sel.Item.SelectivityClass)
	assert.Equal(t, 8500+2000*4.5, sel.Item.CostEstimate)
	assert.True(t, sel.Compliant)

	// frames below 120 kA are skipped
	sel, err = s.LVMainBreaker(1000, 120)
	require.NoError(t, err)
	assert.Equal(t, "E4.2", sel.Item.Frame)
	assert.Equal(t, 2500.0, sel.Item.RatedCurrentA)

	sel, err = s.LVMainBreaker(1000, 200)
	require.NoError(t, err)
	assert.False(t, sel.Compliant)
	assert.Equal(t, "E6.2", sel.Item.Frame)
}

func TestLVFeederBreaker(t *testing.T) {
	s := newTestSelector(t)

	tests := []struct {
		load    float64
		frame   string
		current float64
		unit    string
	}{
		{100, "T4", 160, "PR221DS/P"},
		{330, "T5", 500, "PR221DS/P"},
		{630, "T6", 800, "PR221DS/P"},
		// 875 A required: Emax without a second margin
		{700, "E1.2", 1000, "PR331/P"},
		{1500, "E2.2", 2000, "PR331/P"},
	}
	for _, tt := range tests {
		sel, err := s.LVFeederBreaker(tt.load)
		require.NoError(t, err)
		assert.Equal(t, tt.frame, sel.Item.Frame, "load %v", tt.load)
		assert.Equal(t, tt.current, sel.Item.RatedCurrentA, "load %v", tt.load)
		assert.Equal(t, tt.unit, sel.Item.ProtectionUnit)
		assert.Equal(t, FeederBreakerMargin, sel.Margin)
		assert.True(t, sel.Compliant)
	}

	sel, err := s.LVFeederBreaker(100)
	require.NoError(t, err)
	assert.Equal(t, "C", sel.Item.SelectivityClass)
	assert.Equal(t, 1200+160*2.0, sel.Item.CostEstimate)
	assert.Equal(t, "1SDA054160R1-T4N160", sel.Item.ProductCode)
}

func TestLVSwitch(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.LVSwitch(100, true)
	require.NoError(t, err)
	assert.Equal(t, "OS", sel.Item.Series)
	assert.Equal(t, 160.0, sel.Item.RatedCurrentA)
	assert.Equal(t, "1SCA105461R1001-OS160J04", sel.Item.ProductCode)
	assert.Equal(t, 772, sel.Item.CostEstimate)
	assert.Equal(t, 10.0, sel.Item.BreakingKA)

	sel, err = s.LVSwitch(2000, false)
	require.NoError(t, err)
	assert.Equal(t, "OTM", sel.Item.Series)
	assert.Equal(t, 2500.0, sel.Item.RatedCurrentA)
	assert.Equal(t, "OTM-2500A", sel.Item.ProductCode)
	assert.InDelta(t, 27, sel.Item.WeightKg, 1e-9)
	assert.True(t, sel.Compliant)

	sel, err = s.LVSwitch(1500, true)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, sel.Item.RatedCurrentA)
	assert.False(t, sel.Compliant)
}

func TestEarthSwitch_Fixed(t *testing.T) {
	s := newTestSelector(t)

	tests := []struct {
		name      string
		kv, maxI  float64
		code      string
		cost      int
		compliant bool
	}{
		{"ojwn cheaper", 20, 630, "OJWN 20/31.5", 3902, true},
		{"ek6 above ojwn voltage", 36, 630, "EK6-36-31.5", 4287, true},
		{"tie prefers fault making", 20, 1750, "OJWN 20/80", 5600, true},
		{"normal current above range", 40.5, 3000, "EK6-40.5-100", 6000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel, err := s.EarthSwitch(tt.kv, tt.maxI, EarthSwitchFixed)
			require.NoError(t, err)
			assert.Equal(t, tt.code, sel.Item.ProductCode)
			assert.Equal(t, tt.cost, sel.Item.CostEstimate)
			assert.Equal(t, tt.compliant, sel.Compliant)
			assert.True(t, sel.Item.KeyInterlock)
			assert.NotEmpty(t, sel.Item.InstallationRequirements)
		})
	}
}

func TestEarthSwitch_Mobile(t *testing.T) {
	s := newTestSelector(t)

	sel, err := s.EarthSwitch(20, 630, EarthSwitchMobile)
	require.NoError(t, err)
	assert.Equal(t, EarthSwitchMobile, sel.Item.Kind)
	assert.Equal(t, "EN61230-20kV-3150A", sel.Item.ProductCode)
	assert.Equal(t, 1000, sel.Item.CostEstimate)
	assert.False(t, sel.Item.KeyInterlock)

	_, err = s.EarthSwitch(20, 630, "teleport")
	assert.Error(t, err)
}

func TestShortCircuitEstimate(t *testing.T) {
	assert.Equal(t, 25.0, ShortCircuitEstimate(100))
	assert.Equal(t, 40.0, ShortCircuitEstimate(1000))
	assert.Equal(t, 100.0, ShortCircuitEstimate(5000))
}

func TestEarthSwitchSystem(t *testing.T) {
	s := newTestSelector(t)

	sys, err := s.EarthSwitchSystem(20, 630, ContinuityEssential)
	require.NoError(t, err)
	assert.Equal(t, EarthSwitchFixed, sys.RecommendedKind)
	assert.Contains(t, sys.Reason, "critical")
	assert.Contains(t, sys.Guide.Standards, "CEI 11-27")

	sys, err = s.EarthSwitchSystem(24, 630, ContinuityNormal)
	require.NoError(t, err)
	assert.Contains(t, sys.Reason, "high voltage")
}

func TestProtectionRelayAndCT(t *testing.T) {
	s := newTestSelector(t)

	r := s.ProtectionRelay("Linea")
	assert.Equal(t, "REF630", r.Series)
	r.Functions[0] = "x"
	assert.Equal(t, "21", s.ProtectionRelay("Linea").Functions[0])

	ct, err := s.CurrentTransformer(210, 0)
	require.NoError(t, err)
	assert.Equal(t, 250, ct.Item.PrimaryA)
	assert.Equal(t, "250/5A", ct.Item.Ratio)
	assert.Equal(t, 320.0, ct.Item.CostEstimate)

	ct, err = s.CurrentTransformer(3000, 0)
	require.NoError(t, err)
	assert.Equal(t, 2000, ct.Item.PrimaryA)
	assert.False(t, ct.Compliant)

	u, err := s.UniSecUnit(catalog.UnitTransformer, 1500)
	require.NoError(t, err)
	assert.Equal(t, "TR_750", u.Item.Key)
	assert.False(t, u.Compliant)
}

// Same inputs, same outputs; larger requirements never pick smaller ratings;
// non-fallback picks cover the margin-adjusted requirement.
func TestSelectorProperties(t *testing.T) {
	s := newTestSelector(t)

	type pick struct {
		rating, required float64
		compliant        bool
	}
	families := map[string]struct {
		max float64
		fn  func(req float64) pick
	}{
		"transformer": {2500, func(req float64) pick {
			sel, err := s.Transformer(req, "", 0)
			require.NoError(t, err)
			return pick{float64(sel.Item.PowerKVA), sel.Required, sel.Compliant}
		}},
		"mv breaker": {1600, func(req float64) pick {
			sel, err := s.MVBreaker(req, 20, 16, true)
			require.NoError(t, err)
			return pick{sel.Item.RatedCurrentA, sel.Required, sel.Compliant}
		}},
		"lv breaker": {6300, func(req float64) pick {
			sel, err := s.LVBreaker(req, 50)
			require.NoError(t, err)
			return pick{sel.Item.RatedCurrentA, sel.Required, sel.Compliant}
		}},
		"lv feeder": {6300, func(req float64) pick {
			sel, err := s.LVFeederBreaker(req)
			require.NoError(t, err)
			return pick{sel.Item.RatedCurrentA, sel.Required, sel.Compliant}
		}},
		"lv switch": {1600, func(req float64) pick {
			sel, err := s.LVSwitch(req, true)
			require.NoError(t, err)
			return pick{sel.Item.RatedCurrentA, sel.Required, sel.Compliant}
		}},
		"ct": {2000, func(req float64) pick {
			sel, err := s.CurrentTransformer(req, 0)
			require.NoError(t, err)
			return pick{float64(sel.Item.PrimaryA), sel.Required, sel.Compliant}
		}},
	}

	for name, fam := range families {
		t.Run(name, func(t *testing.T) {
			prev := 0.0
			for req := 1.0; req <= 8000; req *= 1.07 {
				p := fam.fn(req)
				assert.Equal(t, p, fam.fn(req), "idempotence at %v", req)
				assert.GreaterOrEqual(t, p.rating, prev, "monotonicity at %v", req)
				if p.required <= fam.max {
					assert.True(t, p.compliant, "compliance at %v", req)
					assert.GreaterOrEqual(t, p.rating, p.required, "ceiling at %v", req)
				} else {
					assert.Equal(t, fam.max, p.rating, "fallback at %v", req)
					assert.False(t, p.compliant, "fallback flag at %v", req)
				}
				prev = p.rating
			}
		})
	}
}
