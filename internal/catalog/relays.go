package catalog

import "strings"

type ProtectionRelay struct {
	Key            string     `json:"key"`
	Series         string     `json:"series"`
	ProductCode    string     `json:"product_code"`
	Functions      []string   `json:"functions"` // ANSI codes
	Applications   []string   `json:"applications"`
	Communication  []string   `json:"communication"`
	CEI016         bool       `json:"cei_016_compliant"`
	IEC61850       bool       `json:"iec_61850_compliant"`
	Dimensions     Dimensions `json:"dimensions"`
	CostEstimate   int        `json:"cost_estimate"`
	Manufacturer   string     `json:"manufacturer"`
	Description    string     `json:"description"`
}

var relayByApplication = map[string]string{
	"dg":                   "ref601",
	"dispositivo generale": "ref601",
	"feeder":               "ref615",
	"partenza":             "ref615",
	"trasformatore":        "ref615",
	"transformer":          "ref615",
	"motor":                "ref615",
	"linea":                "ref630",
	"line":                 "ref630",
	"cavo":                 "ref630",
	"cable":                "ref630",
}

// RelayFor picks the relay model for an application label. Unknown labels
// get the general purpose REF615.
func (c *Catalog) RelayFor(application string) ProtectionRelay {
	key, ok := relayByApplication[strings.ToLower(strings.TrimSpace(application))]
	if !ok {
		key = "ref615"
	}
	for _, r := range c.Relays {
		if r.Key == key {
			return r
		}
	}
	return c.Relays[0]
}

func protectionRelays() []ProtectionRelay {
	return []ProtectionRelay{
		{
			Key:           "ref601",
			Series:        "REF601",
			ProductCode:   "1MDB07207-YN",
			Functions:     []string{"50/51", "50N/51N", "68", "25", "27", "59"},
			Applications:  []string{"DG", "Feeder protection", "Transformer"},
			Communication: []string{"Modbus RTU", "IEC 61850"},
			CEI016:        true,
			IEC61850:      true,
			Dimensions:    Dimensions{130, 160, 102},
			CostEstimate:  2500,
			Manufacturer:  "ABB",
			Description:   "Main device and feeder protection relay",
		},
		{
			Key:           "ref615",
			Series:        "REF615",
			ProductCode:   "1MRS756379",
			Functions:     []string{"50/51", "50N/51N", "67/67N", "68", "25", "27", "59", "81O/U", "46", "49RMS"},
			Applications:  []string{"Feeder", "Motor", "Generator", "Transformer"},
			Communication: []string{"Modbus RTU", "IEC 61850", "DNP3", "IEC 103"},
			CEI016:        true,
			IEC61850:      true,
			Dimensions:    Dimensions{130, 210, 110},
			CostEstimate:  3500,
			Manufacturer:  "ABB",
			Description:   "Advanced feeder protection relay",
		},
		{
			Key:           "ref630",
			Series:        "REF630",
			ProductCode:   "1MRS253200",
			Functions:     []string{"21", "50/51", "50N/51N", "67/67N", "68", "25", "27", "59", "81O/U", "79", "50BF"},
			Applications:  []string{"Line protection", "Cable", "Transformer", "Distance"},
			Communication: []string{"IEC 61850", "DNP3", "Modbus RTU", "IEC 103"},
			CEI016:        true,
			IEC61850:      true,
			Dimensions:    Dimensions{130, 210, 110},
			CostEstimate:  4500,
			Manufacturer:  "ABB",
			Description:   "Distance protection relay",
		},
	}
}
