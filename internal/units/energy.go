package units

// EnergyUnits maps engineering energy names onto registry symbols. BOE uses
// the 5.8 MMBTU barrel-of-oil equivalence.
var EnergyUnits = map[string]string{
	"J":     "J",
	"kJ":    "kJ",
	"MJ":    "MJ",
	"GJ":    "GJ",
	"Wh":    "Wh",
	"kWh":   "kWh",
	"MWh":   "MWh",
	"BTU":   "BTU",
	"MMBTU": "MMBTU",
	"therm": "therm",
	"BOE":   "BOE",
	"cal":   "cal",
	"kcal":  "kcal",
}

// ConvertEnergy converts an energy between two named units.
func ConvertEnergy(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "energy", EnergyUnits)
}
