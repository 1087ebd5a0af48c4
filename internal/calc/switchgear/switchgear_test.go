package switchgear

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/calc/loads"
	"Cabina/internal/calc/selectivity"
	"Cabina/internal/calc/selector"
	"Cabina/internal/catalog"
)

func newTestDesigner(t *testing.T) *Designer {
	t.Helper()
	cat, err := catalog.New()
	require.NoError(t, err)
	return New(selector.New(cat), selectivity.New(cat))
}

func TestDesignMV(t *testing.T) {
	d := newTestDesigner(t)

	panel, err := d.DesignMV(
		Network{VoltageKV: 20, MaxCurrentA: 630, BreakingKA: 16},
		[]TransformerFeed{{PowerKVA: 630, PrimaryKV: 20}, {PowerKVA: 630, PrimaryKV: 20}},
	)
	require.NoError(t, err)

	require.Len(t, panel.Units, 3)
	assert.Equal(t, 3, panel.UnitCount)
	assert.Equal(t, 2000, panel.WidthMM)
	assert.True(t, panel.Compliant)
	assert.Empty(t, panel.Notes)

	dg := panel.Units[0]
	assert.Equal(t, catalog.UnitIncoming, dg.Type)
	assert.Equal(t, "REF601", dg.Relay.Series)
	assert.Equal(t, 630.0, dg.Breaker.Item.RatedCurrentA)
	assert.Equal(t, 800, dg.CT.Item.PrimaryA)

	tr := panel.Units[1]
	assert.Equal(t, catalog.UnitTransformer, tr.Type)
	assert.Equal(t, "REF615", tr.Relay.Series)
	assert.Equal(t, 200.0, tr.Breaker.Item.RatedCurrentA)
	assert.Equal(t, 16.0, tr.Breaker.Item.BreakingKA)
	assert.Equal(t, 30, tr.CT.Item.PrimaryA)

	var total float64
	for _, u := range panel.Units {
		assert.Greater(t, u.Cost, u.Breaker.Item.CostEstimate)
		total += u.Cost
	}
	assert.InDelta(t, total, panel.TotalCost, 1e-6)
}

func TestDesignMV_NonCompliantNetwork(t *testing.T) {
	panel, err := newTestDesigner(t).DesignMV(Network{VoltageKV: 20, MaxCurrentA: 5000, BreakingKA: 16}, nil)
	require.NoError(t, err)
	assert.False(t, panel.Compliant)
	assert.NotEmpty(t, panel.Notes)
	assert.Equal(t, 1000, panel.WidthMM)
}

func TestDesignMV_InvalidInput(t *testing.T) {
	d := newTestDesigner(t)

	_, err := d.DesignMV(Network{VoltageKV: 20, MaxCurrentA: 630}, []TransformerFeed{{PowerKVA: 0, PrimaryKV: 20}})
	var ie *calcerr.InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "power_kva", ie.Field)

	_, err = d.DesignMV(Network{VoltageKV: 0, MaxCurrentA: 630}, nil)
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "voltage_kv", ie.Field)
}

func testLoads() []loads.Load {
	return []loads.Load{
		{Name: "Press", Category: "motori", PowerKW: 100, Quantity: 1, Ku: 1, CosPhi: 0.85, VoltageV: 400, Phases: 3},
		{Name: "Hall lighting", Category: "illuminazione", PowerKW: 5, Quantity: 4, Ku: 1, CosPhi: 0.9, VoltageV: 400, Phases: 3},
		{Name: "Sockets", Category: "prese", PowerKW: 2, Quantity: 5, Ku: 0.5, CosPhi: 0.8, VoltageV: 230, Phases: 1},
	}
}

func TestDesignLV(t *testing.T) {
	b, err := newTestDesigner(t).DesignLV(630, testLoads())
	require.NoError(t, err)

	assert.InDelta(t, 876.5, b.SecondaryCurrentA, 0.1)
	assert.Equal(t, "E1.2", b.MainBreaker.Item.Frame)
	assert.Equal(t, "OS", b.MainSwitch.Item.Series)
	require.Len(t, b.Feeders, 3)

	press := b.Feeders[0]
	assert.Equal(t, "high", press.Priority)
	assert.InDelta(t, 163.7, press.CurrentA, 0.1)
	assert.Equal(t, "Tmax", press.Breaker.Item.Series)
	assert.Equal(t, "OTM", press.Switch.Item.Series)
	assert.Equal(t, "low", b.Feeders[2].Priority)

	assert.InDelta(t, 125, b.DistributedKW, 1e-9)
	assert.Equal(t, UtilizationLow, b.Utilization)
	assert.Greater(t, b.AverageCosPhi, 0.8)
	assert.LessOrEqual(t, b.AverageCosPhi, 1.0)
	assert.Equal(t, 3, b.TmaxCount)
	assert.Zero(t, b.EmaxCount)
	assert.True(t, b.Selectivity.Selective)
	assert.Len(t, b.Selectivity.Checks, 3)
	assert.True(t, b.Compliant)
	assert.Equal(t, 9450.0, b.Costs.Accessories)
	assert.InDelta(t, b.Costs.MainSwitch+b.Costs.MainBreaker+b.Costs.FeederBreakers+b.Costs.FeederSwitches+b.Costs.Accessories, b.Costs.Total, 1e-6)
}

func TestDesignLV_EmaxFeeder(t *testing.T) {
	mill := loads.Load{Name: "Mill", Category: "motori", PowerKW: 600, Quantity: 1, Ku: 1, CosPhi: 0.85, VoltageV: 400, Phases: 3}
	b, err := newTestDesigner(t).DesignLV(2000, []loads.Load{mill})
	require.NoError(t, err)

	require.Len(t, b.Feeders, 1)
	assert.Equal(t, "SACE Emax 2", b.Feeders[0].Breaker.Item.Series)
	assert.Equal(t, "E2.2", b.Feeders[0].Breaker.Item.Frame)
	assert.Equal(t, 1, b.EmaxCount)
	assert.Zero(t, b.TmaxCount)
}

func TestDesignLV_Overload(t *testing.T) {
	b, err := newTestDesigner(t).DesignLV(100, testLoads())
	require.NoError(t, err)
	assert.Equal(t, UtilizationOverload, b.Utilization)
	assert.False(t, b.Compliant)
	assert.NotEmpty(t, b.Notes)
}

func TestDesignLV_InvalidInput(t *testing.T) {
	d := newTestDesigner(t)
	var ie *calcerr.InvalidInputError

	_, err := d.DesignLV(630, nil)
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "loads", ie.Field)

	bad := testLoads()
	bad[1].CosPhi = 0
	_, err = d.DesignLV(630, bad)
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "cos_phi", ie.Field)
	assert.Contains(t, err.Error(), "load 1")
}

func TestUtilizationStatus(t *testing.T) {
	assert.Equal(t, UtilizationOverload, UtilizationStatus(101))
	assert.Equal(t, UtilizationHigh, UtilizationStatus(90))
	assert.Equal(t, UtilizationOptimal, UtilizationStatus(70))
	assert.Equal(t, UtilizationLow, UtilizationStatus(40))
}

func TestTemplateLoads(t *testing.T) {
	d := newTestDesigner(t)
	lds := d.TemplateLoads(800)
	require.Len(t, lds, len(d.sel.Catalog().TemplateFor(800).Feeders))
	for _, l := range lds {
		require.NoError(t, l.Validate())
	}
	assert.Equal(t, 0.85, lds[3].CosPhi) // production motors

	b, err := d.DesignLV(800, lds)
	require.NoError(t, err)
	assert.Len(t, b.Feeders, len(lds))
}
