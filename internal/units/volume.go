package units

// VolumeUnits maps engineering volume names onto registry symbols.
var VolumeUnits = map[string]string{
	"m3":     "m^3",
	"m^3":    "m^3",
	"L":      "L",
	"l":      "L",
	"mL":     "mL",
	"bbl":    "bbl",
	"barrel": "bbl",
	"gal":    "gal",
	"ft3":    "ft^3",
	"ft^3":   "ft^3",
	"in3":    "in^3",
	"in^3":   "in^3",
}

// ConvertVolume converts a volume between two named units.
func ConvertVolume(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "volume", VolumeUnits)
}
