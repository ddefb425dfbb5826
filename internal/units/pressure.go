package units

// PressureUnits maps engineering pressure names onto registry symbols.
var PressureUnits = map[string]string{
	"Pa":   "Pa",
	"hPa":  "hPa",
	"kPa":  "kPa",
	"MPa":  "MPa",
	"bar":  "bar",
	"mbar": "mbar",
	"atm":  "atm",
	"psi":  "psi",
	"mmHg": "mmHg",
	"inHg": "inHg",
	"torr": "torr",
}

// ConvertPressure converts a pressure between two named units.
func ConvertPressure(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "pressure", PressureUnits)
}
