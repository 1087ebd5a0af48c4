package catalog

type LoadType string

const (
	LoadMotors   LoadType = "motori"
	LoadLighting LoadType = "illuminazione"
	LoadOutlets  LoadType = "prese"
	LoadHeating  LoadType = "riscaldamento"
	LoadHVAC     LoadType = "climatizzazione"
	LoadGeneral  LoadType = "generale"
)

// LoadFactors are the typical utilisation, power factor and diversity of a
// load type.
type LoadFactors struct {
	Ku        float64 `json:"ku"`
	CosPhi    float64 `json:"cos_phi"`
	Diversity float64 `json:"diversity"`
}

var loadFactors = map[LoadType]LoadFactors{
	LoadMotors:   {0.8, 0.85, 0.7},
	LoadLighting: {1.0, 0.9, 0.8},
	LoadOutlets:  {0.6, 0.8, 0.5},
	LoadHeating:  {1.0, 1.0, 0.9},
	LoadHVAC:     {0.9, 0.85, 0.8},
	LoadGeneral:  {0.8, 0.8, 0.7},
}

// Factors returns the typical factors of a load type, general purpose
// values when the type is unknown.
func Factors(t LoadType) LoadFactors {
	if f, ok := loadFactors[t]; ok {
		return f
	}
	return loadFactors[LoadGeneral]
}

// LVFeeder is one outgoing circuit of a typical LV board.
type LVFeeder struct {
	Name       string   `json:"name"`
	Type       LoadType `json:"type"`
	PowerKW    float64  `json:"power_kw"`
	CurrentA   float64  `json:"current_a"`
	Protection string   `json:"protection"`
	Priority   string   `json:"priority"`
}

// LoadTemplate is a typical LV distribution for a transformer size.
type LoadTemplate struct {
	Key            string     `json:"key"`
	TransformerKVA float64    `json:"transformer_kva"`
	Feeders        []LVFeeder `json:"feeders"`
}

// TemplateFor returns the typical distribution for the installed power,
// scaled linearly to it.
func (c *Catalog) TemplateFor(transformerKVA float64) LoadTemplate {
	key := "large_facility"
	switch {
	case transformerKVA <= 500:
		key = "small_facility"
	case transformerKVA <= 1000:
		key = "medium_facility"
	}
	var tpl LoadTemplate
	for _, t := range c.Templates {
		if t.Key == key {
			tpl = t
		}
	}
	scale := transformerKVA / tpl.TransformerKVA
	out := LoadTemplate{Key: tpl.Key, TransformerKVA: transformerKVA, Feeders: make([]LVFeeder, len(tpl.Feeders))}
	for i, f := range tpl.Feeders {
		f.PowerKW *= scale
		f.CurrentA *= scale
		out.Feeders[i] = f
	}
	return out
}

func loadTemplates() []LoadTemplate {
	return []LoadTemplate{
		{
			Key:            "small_facility",
			TransformerKVA: 400,
			Feeders: []LVFeeder{
				{"Quadro Generale", LoadGeneral, 300, 433, "Emax2-E1.2", "essential"},
				{"Illuminazione", LoadLighting, 30, 43, "Tmax-T4", "priority"},
				{"Prese Uffici", LoadOutlets, 40, 58, "Tmax-T5", "normal"},
				{"Motori Produzione", LoadMotors, 100, 144, "Tmax-T6", "priority"},
				{"Climatizzazione", LoadHVAC, 50, 72, "Tmax-T5", "normal"},
				{"Riserva", LoadGeneral, 50, 72, "Tmax-T5", "normal"},
			},
		},
		{
			Key:            "medium_facility",
			TransformerKVA: 800,
			Feeders: []LVFeeder{
				{"Quadro Generale", LoadGeneral, 600, 866, "Emax2-E2.2", "essential"},
				{"Illuminazione", LoadLighting, 60, 87, "Tmax-T5", "priority"},
				{"Prese Uffici", LoadOutlets, 80, 115, "Tmax-T6", "normal"},
				{"Motori Produzione 1", LoadMotors, 150, 217, "Tmax-T7", "priority"},
				{"Motori Produzione 2", LoadMotors, 120, 173, "Tmax-T6", "priority"},
				{"Climatizzazione", LoadHVAC, 100, 144, "Tmax-T6", "normal"},
				{"Servizi Ausiliari", LoadGeneral, 40, 58, "Tmax-T5", "normal"},
				{"Riserva", LoadGeneral, 50, 72, "Tmax-T5", "normal"},
			},
		},
		{
			Key:            "large_facility",
			TransformerKVA: 1600,
			Feeders: []LVFeeder{
				{"Quadro Generale", LoadGeneral, 1200, 1732, "Emax2-E4.2", "essential"},
				{"Illuminazione", LoadLighting, 120, 173, "Tmax-T6", "priority"},
				{"Prese e Servizi", LoadOutlets, 160, 231, "Tmax-T7", "normal"},
				{"Motori Produzione A", LoadMotors, 300, 433, "Emax2-E1.2", "priority"},
				{"Motori Produzione B", LoadMotors, 300, 433, "Emax2-E1.2", "priority"},
				{"Climatizzazione", LoadHVAC, 200, 289, "Tmax-T7", "normal"},
				{"Servizi Ausiliari", LoadGeneral, 80, 115, "Tmax-T6", "normal"},
				{"Riserva 1", LoadGeneral, 100, 144, "Tmax-T6", "normal"},
				{"Riserva 2", LoadGeneral, 100, 144, "Tmax-T6", "normal"},
			},
		},
	}
}
