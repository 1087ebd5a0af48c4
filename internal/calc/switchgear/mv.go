// Package switchgear composes the MV panel and the LV main board from
// individual selections.
package switchgear

import (
	"fmt"
	"math"
	"strings"

	"Cabina/internal/calc/calcerr"
	"Cabina/internal/calc/selectivity"
	"Cabina/internal/calc/selector"
	"Cabina/internal/catalog"
)

const (
	sqrt3 = 1.732

	// transformer feeder breakers are rated on 1.25 times the primary current
	feederMargin     = 1.25
	feederBreakingKA = 16.0
	toroidDiameterMM = 120.0
	panelBaseWidthMM = 500
	unitWidthMM      = 500
)

type Designer struct {
	sel     *selector.Selector
	checker *selectivity.Checker
}

func New(sel *selector.Selector, checker *selectivity.Checker) *Designer {
	return &Designer{sel: sel, checker: checker}
}

type Network struct {
	VoltageKV   float64 `json:"voltage_kv"`
	MaxCurrentA float64 `json:"max_current_a"`
	BreakingKA  float64 `json:"breaking_capacity_ka"`
}

type TransformerFeed struct {
	PowerKVA  float64 `json:"power_kva"`
	PrimaryKV float64 `json:"voltage_primary_kv"`
}

type Device struct {
	Kind        string  `json:"kind"`
	Rating      string  `json:"rating"`
	ProductCode string  `json:"product_code,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
}

func (d Device) Cost() float64 { return float64(d.Quantity) * d.UnitCost }

type MVUnit struct {
	Name    string                                          `json:"name"`
	Type    catalog.UnitType                                `json:"type"`
	Breaker selector.Selection[selector.MVBreaker]          `json:"breaker"`
	Relay   catalog.ProtectionRelay                         `json:"protection_relay"`
	CT      selector.Selection[selector.CurrentTransformer] `json:"current_transformer"`
	Cubicle selector.Selection[catalog.UniSecUnit]          `json:"cubicle"`
	Devices []Device                                        `json:"devices"`
	Cost    float64                                         `json:"cost"`
}

func (u MVUnit) compliant() bool {
	return u.Breaker.Compliant && u.CT.Compliant && u.Cubicle.Compliant
}

type MVPanel struct {
	Series    string   `json:"series"`
	Units     []MVUnit `json:"units"`
	UnitCount int      `json:"unit_count"`
	WidthMM   int      `json:"total_width_mm"`
	TotalCost float64  `json:"total_cost"`
	Compliant bool     `json:"compliant"`
	Notes     []string `json:"notes"`
}

// DesignMV builds the incoming DG unit and one feeder unit per transformer.
func (d *Designer) DesignMV(network Network, transformers []TransformerFeed) (MVPanel, error) {
	dg, err := d.incomingUnit(network)
	if err != nil {
		return MVPanel{}, fmt.Errorf("incoming unit: %w", err)
	}
	panel := MVPanel{Series: "ABB UniSec", Units: []MVUnit{dg}, Notes: []string{}}
	for i, t := range transformers {
		u, err := d.transformerUnit(t, i+1)
		if err != nil {
			return MVPanel{}, fmt.Errorf("transformer unit %d: %w", i+1, err)
		}
		panel.Units = append(panel.Units, u)
	}

	panel.Compliant = true
	for _, u := range panel.Units {
		panel.TotalCost += u.Cost
		if !u.compliant() {
			panel.Compliant = false
			notes := append(append(append([]string{}, u.Breaker.Notes...), u.CT.Notes...), u.Cubicle.Notes...)
			panel.Notes = append(panel.Notes, u.Name+": "+strings.Join(notes, "; "))
		}
	}
	panel.UnitCount = len(panel.Units)
	panel.WidthMM = panelBaseWidthMM + unitWidthMM*panel.UnitCount
	return panel, nil
}

func (d *Designer) incomingUnit(n Network) (MVUnit, error) {
	if err := nonNegative("breaking_capacity_ka", n.BreakingKA); err != nil {
		return MVUnit{}, err
	}
	br, err := d.sel.MVBreaker(n.MaxCurrentA, n.VoltageKV, n.BreakingKA, true)
	if err != nil {
		return MVUnit{}, err
	}
	ct, err := d.sel.CurrentTransformer(math.Max(250, n.MaxCurrentA), 1)
	if err != nil {
		return MVUnit{}, err
	}
	u := MVUnit{
		Name:    "Incoming line - DG",
		Type:    catalog.UnitIncoming,
		Breaker: br,
		Relay:   d.sel.ProtectionRelay("dg"),
		CT:      ct,
	}
	u.Devices = append(d.commonDevices(u, n.VoltageKV, 3),
		Device{Kind: "multimeter", Rating: fmt.Sprintf("0-%sA 0-%skV", catalog.FormatRating(br.Item.RatedCurrentA), catalog.FormatRating(n.VoltageKV)), Quantity: 1, UnitCost: 1500},
		Device{Kind: "power meter", Rating: "0-2000kW", Quantity: 1, UnitCost: 800},
		Device{Kind: "auxiliary supply", Rating: "24V DC 5A", Quantity: 1, UnitCost: 300},
		Device{Kind: "anti-condensation heater", Rating: "100W", Quantity: 1, UnitCost: 150},
	)
	return d.finish(u, br.Item.RatedCurrentA)
}

func (d *Designer) transformerUnit(t TransformerFeed, n int) (MVUnit, error) {
	if err := positive("power_kva", t.PowerKVA); err != nil {
		return MVUnit{}, err
	}
	if err := positive("voltage_primary_kv", t.PrimaryKV); err != nil {
		return MVUnit{}, err
	}
	primary := t.PowerKVA * 1000 / (sqrt3 * t.PrimaryKV * 1000)
	br, err := d.sel.MVBreaker(primary*feederMargin, t.PrimaryKV, feederBreakingKA, true)
	if err != nil {
		return MVUnit{}, err
	}
	ct, err := d.sel.CurrentTransformer(math.Max(30, primary*1.5), 1)
	if err != nil {
		return MVUnit{}, err
	}
	u := MVUnit{
		Name:    fmt.Sprintf("Transformer feeder %d", n),
		Type:    catalog.UnitTransformer,
		Breaker: br,
		Relay:   d.sel.ProtectionRelay("trasformatore"),
		CT:      ct,
	}
	u.Devices = append(d.commonDevices(u, t.PrimaryKV, 3),
		Device{Kind: "ammeter", Rating: fmt.Sprintf("0-%dA", ct.Item.PrimaryA), Quantity: 1, UnitCost: 400},
		Device{Kind: "voltmeter", Rating: fmt.Sprintf("0-%skV", catalog.FormatRating(t.PrimaryKV)), Quantity: 1, UnitCost: 400},
		Device{Kind: "anti-condensation heater", Rating: "50W", Quantity: 1, UnitCost: 100},
	)
	return d.finish(u, br.Item.RatedCurrentA)
}

// commonDevices are the isolators, instrument transformers and voltage
// presence indicator every unit carries.
func (d *Designer) commonDevices(u MVUnit, voltageKV float64, phases int) []Device {
	cat := d.sel.Catalog().CTs
	vtCode, vtCost := cat.VT(voltageKV)
	toroidCode, toroidCost := cat.Toroid(toroidDiameterMM)
	rated := catalog.FormatRating(u.Breaker.Item.RatedCurrentA) + "A"
	return []Device{
		{Kind: "line isolator", Rating: rated, Quantity: 1, UnitCost: 1200},
		{Kind: "earthing isolator", Rating: rated, Quantity: 1, UnitCost: 800},
		{Kind: "phase CT", Rating: u.CT.Item.Ratio, ProductCode: u.CT.Item.ProductCode, Quantity: phases, UnitCost: u.CT.Item.CostEstimate},
		{Kind: "earth fault toroid", Rating: "100/1A", ProductCode: toroidCode, Quantity: 1, UnitCost: toroidCost},
		{Kind: "VT", Rating: catalog.FormatRating(voltageKV) + "kV/100V", ProductCode: vtCode, Quantity: phases, UnitCost: vtCost},
		{Kind: "voltage presence indicator", Rating: "LED", Quantity: 1, UnitCost: 200},
	}
}

func (d *Designer) finish(u MVUnit, currentA float64) (MVUnit, error) {
	cub, err := d.sel.UniSecUnit(u.Type, currentA)
	if err != nil {
		return MVUnit{}, err
	}
	u.Cubicle = cub
	u.Cost = u.Breaker.Item.CostEstimate + float64(u.Relay.CostEstimate) + float64(cub.Item.CostBase)
	for _, dev := range u.Devices {
		u.Cost += dev.Cost()
	}
	return u, nil
}

func positive(field string, v float64) error {
	if v <= 0 {
		return calcerr.Invalid(field, "must be positive, got %v", v)
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return calcerr.Invalid(field, "must not be negative, got %v", v)
	}
	return nil
}
