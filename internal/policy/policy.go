// Package policy enforces that tracked quantities are expressed in the units
// a declared unit system expects, either strictly or by auto-converting.
package policy

import (
	"fmt"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/unitflow/unitflow/internal/quantity"
	"github.com/unitflow/unitflow/internal/registry"
)

// ViolationError reports a quantity rejected under strict or non-converting
// enforcement.
type ViolationError struct {
	System   string
	Category string
	Expected string
	Actual   string
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("unit system %q requires %s in %q, got %q",
		e.System, e.Category, e.Expected, e.Actual)
}

// Policy declares a target unit system and how strictly it is enforced.
// Policies are stateless; one value can serve many calculations.
type Policy struct {
	System      string
	Strict      bool
	AutoConvert bool
}

// systemUnits maps unit system name -> dimension category -> expected unit.
var systemUnits = map[string]map[string]string{
	"SI": {
		"length":      "m",
		"mass":        "kg",
		"time":        "s",
		"temperature": "K",
		"speed":       "m/s",
		"volume":      "m^3",
		"force":       "N",
		"pressure":    "Pa",
		"energy":      "J",
		"power":       "W",
	},
	"metric_engineering": {
		"length":      "m",
		"mass":        "kg",
		"time":        "s",
		"temperature": "degC",
		"speed":       "m/s",
		"volume":      "m^3",
		"force":       "kN",
		"pressure":    "kPa",
		"energy":      "MJ",
		"power":       "kW",
	},
	"inch": {
		"length":      "in",
		"mass":        "lb",
		"time":        "s",
		"temperature": "degF",
		"speed":       "ft/s",
		"volume":      "ft^3",
		"force":       "lbf",
		"pressure":    "psi",
		"energy":      "BTU",
		"power":       "hp",
	},
}

// Systems returns the known unit system names.
func Systems() []string {
	return []string{"SI", "inch", "metric_engineering"}
}

// ExpectedUnit returns the unit a system prescribes for a dimension category.
func ExpectedUnit(system, category string) (string, error) {
	units, ok := systemUnits[system]
	if !ok {
		return "", eris.Errorf("policy: unknown unit system %q", system)
	}
	u, ok := units[category]
	if !ok {
		return "", eris.Errorf("policy: unit system %q has no unit for category %q", system, category)
	}
	return u, nil
}

// Enforce checks a quantity against the system's expected unit for the given
// dimension category. Already-conformant quantities pass through unchanged;
// compatible ones convert when AutoConvert is set and are rejected otherwise.
func (p Policy) Enforce(q *quantity.Quantity, category string) (*quantity.Quantity, error) {
	expectedSymbol, err := ExpectedUnit(p.System, category)
	if err != nil {
		return nil, err
	}
	expected, err := registry.Default().Resolve(expectedSymbol)
	if err != nil {
		return nil, eris.Wrapf(err, "policy: system %q category %q", p.System, category)
	}

	if q.UnitSymbol() == expected.Symbol {
		return q, nil
	}
	if !q.Unit().Compatible(expected) {
		return nil, &registry.DimensionMismatchError{
			Actual:   q.Dimensionality(),
			Expected: expected.Dim.String(),
		}
	}
	if !p.AutoConvert {
		return nil, &ViolationError{
			System:   p.System,
			Category: category,
			Expected: expected.Symbol,
			Actual:   q.UnitSymbol(),
		}
	}

	converted, err := q.To(expected.Symbol)
	if err != nil {
		return nil, eris.Wrapf(err, "policy: convert to %q", expected.Symbol)
	}
	zap.L().Debug("policy: auto-converted quantity",
		zap.String("system", p.System),
		zap.String("category", category),
		zap.String("from", q.UnitSymbol()),
		zap.String("to", expected.Symbol),
	)
	return converted, nil
}
