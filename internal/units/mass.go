package units

// MassUnits maps engineering mass names onto registry symbols.
var MassUnits = map[string]string{
	"kg":    "kg",
	"g":     "g",
	"mg":    "mg",
	"t":     "t",
	"tonne": "t",
	"lb":    "lb",
	"lbs":   "lb",
	"oz":    "oz",
}

// ConvertMass converts a mass between two named units.
func ConvertMass(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "mass", MassUnits)
}
