package units

// SpeedUnits maps engineering speed names onto registry symbols.
var SpeedUnits = map[string]string{
	"m/s":   "m/s",
	"km/h":  "km/h",
	"kph":   "km/h",
	"mph":   "mph",
	"knots": "kn",
	"knot":  "kn",
	"ft/s":  "ft/s",
}

// ConvertSpeed converts a speed between two named units. A nil value passes
// through unchanged.
func ConvertSpeed(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "speed", SpeedUnits)
}
