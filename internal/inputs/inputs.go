// Package inputs turns flat configuration mappings into tracked quantities.
// Each field key has a default unit under a named input unit system; parsing
// is all-or-nothing so a bad key never yields a partial result.
package inputs

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/unitflow/unitflow/internal/quantity"
)

// fieldUnits maps input unit system name -> field key -> unit symbol.
var fieldUnits = map[string]map[string]string{
	"SI": {
		"depth":       "m",
		"length":      "m",
		"width":       "m",
		"height":      "m",
		"diameter":    "m",
		"thickness":   "m",
		"mass":        "kg",
		"temperature": "K",
		"temp":        "K",
		"pressure":    "Pa",
		"energy":      "J",
		"speed":       "m/s",
		"velocity":    "m/s",
		"volume":      "m^3",
		"flow_rate":   "m^3/s",
		"force":       "N",
		"power":       "W",
		"duration":    "s",
	},
	"metric_engineering": {
		"depth":       "m",
		"length":      "m",
		"width":       "m",
		"height":      "m",
		"diameter":    "mm",
		"thickness":   "mm",
		"mass":        "kg",
		"temperature": "degC",
		"temp":        "degC",
		"pressure":    "kPa",
		"energy":      "MJ",
		"speed":       "m/s",
		"velocity":    "m/s",
		"volume":      "m^3",
		"flow_rate":   "m^3/h",
		"force":       "kN",
		"power":       "kW",
		"duration":    "h",
	},
	"inch": {
		"depth":       "ft",
		"length":      "in",
		"width":       "in",
		"height":      "in",
		"diameter":    "in",
		"thickness":   "in",
		"mass":        "lb",
		"temperature": "degF",
		"temp":        "degF",
		"pressure":    "psi",
		"energy":      "BTU",
		"speed":       "ft/s",
		"velocity":    "ft/s",
		"volume":      "ft^3",
		"flow_rate":   "bbl/d",
		"force":       "lbf",
		"power":       "hp",
		"duration":    "h",
	},
}

// ParseSection converts a flat name->value mapping into tracked quantities,
// assigning each field the unit its key carries under the named input unit
// system. The first unknown system, unknown key, or unresolvable unit aborts
// the whole parse.
func ParseSection(section map[string]float64, system, source string) (map[string]*quantity.Quantity, error) {
	units, ok := fieldUnits[system]
	if !ok {
		return nil, eris.Errorf("inputs: unknown input unit system %q", system)
	}

	out := make(map[string]*quantity.Quantity, len(section))
	for _, key := range sortedKeys(section) {
		unit, ok := units[key]
		if !ok {
			return nil, eris.Errorf("inputs: no default unit for key %q in system %q", key, system)
		}
		q, err := quantity.New(section[key], unit, source)
		if err != nil {
			return nil, eris.Wrapf(err, "inputs: key %q", key)
		}
		out[key] = q
	}
	return out, nil
}

// Overlay is a user-supplied extension of the built-in field unit tables,
// loaded from YAML. Entries replace or add to a system's defaults.
type Overlay struct {
	Systems map[string]map[string]string `yaml:"systems"`
}

// LoadOverlay reads an overlay file and merges it over the built-in tables.
// New systems may be introduced; existing keys are replaced in place.
func LoadOverlay(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrapf(err, "inputs: read overlay %s", path)
	}
	var ov Overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return eris.Wrapf(err, "inputs: parse overlay %s", path)
	}
	for system, table := range ov.Systems {
		dst, ok := fieldUnits[system]
		if !ok {
			dst = make(map[string]string, len(table))
			fieldUnits[system] = dst
		}
		for key, unit := range table {
			dst[key] = unit
		}
	}
	return nil
}

// sortedKeys gives the deterministic iteration order ParseSection promises.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
