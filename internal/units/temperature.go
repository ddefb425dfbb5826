package units

// TemperatureUnits maps engineering temperature names onto registry symbols.
var TemperatureUnits = map[string]string{
	"C":       "degC",
	"degC":    "degC",
	"celsius": "degC",
	"F":       "degF",
	"degF":    "degF",
	"K":       "K",
	"kelvin":  "K",
	"R":       "degR",
	"degR":    "degR",
}

// ConvertTemperature converts a temperature between two named units. Offset
// handling (e.g. degC vs K) happens inside the registry.
func ConvertTemperature(value *float64, fromKey, toKey string) (*float64, error) {
	return convert(value, fromKey, toKey, "temperature", TemperatureUnits)
}
