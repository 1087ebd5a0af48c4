package earthing

import "math"

type Material struct {
	Item      string  `json:"item"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitCost  float64 `json:"unit_cost_eur"`
	TotalCost float64 `json:"total_cost_eur"`
}

// Materials lists the bill of materials for a design: conductor, electrodes,
// joints and excavation.
func Materials(res Result) []Material {
	l := math.Ceil(res.ElectrodeLengthM)
	perM := 15.0
	if c, ok := conductors[res.ConductorMaterial]; ok {
		perM = c.costPerM
	}
	items := []Material{
		{Item: res.ConductorType, Quantity: l, Unit: "m", UnitCost: perM},
		{Item: "Earth electrode", Quantity: float64(res.ElectrodeCount), Unit: "pcs", UnitCost: 75},
		{Item: "Junction and test joint", Quantity: float64(res.ElectrodeCount + 4), Unit: "pcs", UnitCost: 25},
		{Item: "Excavation and backfill", Quantity: l, Unit: "m", UnitCost: 8},
	}
	for i := range items {
		items[i].TotalCost = items[i].Quantity * items[i].UnitCost
	}
	return items
}

// MaterialsTotal sums the list.
func MaterialsTotal(items []Material) float64 {
	var t float64
	for _, m := range items {
		t += m.TotalCost
	}
	return t
}
