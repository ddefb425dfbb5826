package units

// LengthUnits maps engineering length names onto registry symbols.
var LengthUnits = map[string]string{
	"m":     "m",
	"km":    "km",
	"cm":    "cm",
	"mm":    "mm",
	"in":    "in",
	"inch":  "in",
	"ft":    "ft",
	"feet":  "ft",
	"yd":    "yd",
	"mi":    "mi",
	"miles": "mi",
	"nmi":   "nmi",
}

// ConvertLength converts a length between two named units.
func ConvertLength(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "length", LengthUnits)
}
