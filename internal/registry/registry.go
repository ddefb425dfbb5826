// Package registry holds the canonical unit table: every unit symbol the
// engine understands, its physical dimension, and its scale/offset relative
// to the dimension's SI base unit.
package registry

import (
	"fmt"
	"sync"
)

// Unit is an immutable handle for a resolved unit symbol. Magnitudes convert
// to the SI base of the unit's dimension as value*Scale + Offset.
type Unit struct {
	Symbol string
	Dim    Dimension
	Scale  float64
	Offset float64
}

// Compatible reports whether both units share a dimension.
func (u Unit) Compatible(o Unit) bool {
	return u.Dim == o.Dim
}

// Derived returns a synthetic unit for the product or quotient of two units.
// Derived units are not registered; they exist only on computed quantities.
func (u Unit) Derived(o Unit, quotient bool) Unit {
	if quotient {
		return Unit{
			Symbol: u.Symbol + "/" + o.Symbol,
			Dim:    u.Dim.Div(o.Dim),
			Scale:  u.Scale / o.Scale,
		}
	}
	return Unit{
		Symbol: u.Symbol + "*" + o.Symbol,
		Dim:    u.Dim.Mul(o.Dim),
		Scale:  u.Scale * o.Scale,
	}
}

// UnknownUnitError reports a unit symbol the registry does not recognize.
type UnknownUnitError struct {
	Symbol string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit %q", e.Symbol)
}

// DimensionMismatchError reports an operation across incompatible dimensions.
type DimensionMismatchError struct {
	Actual   string
	Expected string
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: have %s, want %s", e.Actual, e.Expected)
}

// Registry resolves unit symbols. It is read-only after construction and safe
// to share across goroutines without locking.
type Registry struct {
	bySymbol map[string]Unit
}

// Default returns the process-wide registry, constructed on first use.
var Default = sync.OnceValue(func() *Registry {
	return newBuiltin()
})

// Resolve returns the unit for a symbol (or a registered alias).
func (r *Registry) Resolve(symbol string) (Unit, error) {
	u, ok := r.bySymbol[symbol]
	if !ok {
		return Unit{}, &UnknownUnitError{Symbol: symbol}
	}
	return u, nil
}

// Convert converts a magnitude between two resolved units.
func (r *Registry) Convert(value float64, from, to Unit) (float64, error) {
	if !from.Compatible(to) {
		return 0, &DimensionMismatchError{
			Actual:   from.Dim.String(),
			Expected: to.Dim.String(),
		}
	}
	base := value*from.Scale + from.Offset
	return (base - to.Offset) / to.Scale, nil
}

// ConvertSymbols resolves both symbols and converts.
func (r *Registry) ConvertSymbols(value float64, from, to string) (float64, error) {
	fu, err := r.Resolve(from)
	if err != nil {
		return 0, err
	}
	tu, err := r.Resolve(to)
	if err != nil {
		return 0, err
	}
	return r.Convert(value, fu, tu)
}

var (
	dimLength      = Dimension{Length: 1}
	dimMass        = Dimension{Mass: 1}
	dimTime        = Dimension{Time: 1}
	dimTemperature = Dimension{Temperature: 1}
	dimSpeed       = Dimension{Length: 1, Time: -1}
	dimArea        = Dimension{Length: 2}
	dimVolume      = Dimension{Length: 3}
	dimForce       = Dimension{Length: 1, Mass: 1, Time: -2}
	dimPressure    = Dimension{Length: -1, Mass: 1, Time: -2}
	dimEnergy      = Dimension{Length: 2, Mass: 1, Time: -2}
	dimPower       = Dimension{Length: 2, Mass: 1, Time: -3}
	dimFlow        = Dimension{Length: 3, Time: -1}
)

type unitDef struct {
	symbol  string
	dim     Dimension
	scale   float64
	offset  float64
	aliases []string
}

// builtinUnits is the canonical table. Scales follow NIST SP 811 conversion
// factors; BOE uses the 5.8 MMBTU equivalence standard in oil and gas.
var builtinUnits = []unitDef{
	// length
	{symbol: "m", dim: dimLength, scale: 1, aliases: []string{"meter", "metre"}},
	{symbol: "km", dim: dimLength, scale: 1000},
	{symbol: "cm", dim: dimLength, scale: 0.01},
	{symbol: "mm", dim: dimLength, scale: 0.001},
	{symbol: "in", dim: dimLength, scale: 0.0254, aliases: []string{"inch"}},
	{symbol: "ft", dim: dimLength, scale: 0.3048, aliases: []string{"feet", "foot"}},
	{symbol: "yd", dim: dimLength, scale: 0.9144},
	{symbol: "mi", dim: dimLength, scale: 1609.344, aliases: []string{"mile"}},
	{symbol: "nmi", dim: dimLength, scale: 1852},

	// mass
	{symbol: "kg", dim: dimMass, scale: 1},
	{symbol: "g", dim: dimMass, scale: 0.001},
	{symbol: "mg", dim: dimMass, scale: 1e-6},
	{symbol: "t", dim: dimMass, scale: 1000, aliases: []string{"tonne"}},
	{symbol: "lb", dim: dimMass, scale: 0.45359237, aliases: []string{"lbm"}},
	{symbol: "oz", dim: dimMass, scale: 0.028349523125},

	// time
	{symbol: "s", dim: dimTime, scale: 1, aliases: []string{"sec"}},
	{symbol: "min", dim: dimTime, scale: 60},
	{symbol: "h", dim: dimTime, scale: 3600, aliases: []string{"hr"}},
	{symbol: "d", dim: dimTime, scale: 86400, aliases: []string{"day"}},

	// temperature
	{symbol: "K", dim: dimTemperature, scale: 1, aliases: []string{"kelvin"}},
	{symbol: "degC", dim: dimTemperature, scale: 1, offset: 273.15, aliases: []string{"C", "celsius"}},
	{symbol: "degF", dim: dimTemperature, scale: 5.0 / 9.0, offset: 255.3722222222222, aliases: []string{"F", "fahrenheit"}},
	{symbol: "degR", dim: dimTemperature, scale: 5.0 / 9.0, aliases: []string{"R", "rankine"}},

	// speed
	{symbol: "m/s", dim: dimSpeed, scale: 1},
	{symbol: "km/h", dim: dimSpeed, scale: 1.0 / 3.6, aliases: []string{"kph"}},
	{symbol: "mph", dim: dimSpeed, scale: 0.44704},
	{symbol: "kn", dim: dimSpeed, scale: 1852.0 / 3600.0, aliases: []string{"knot", "knots"}},
	{symbol: "ft/s", dim: dimSpeed, scale: 0.3048},

	// area
	{symbol: "m^2", dim: dimArea, scale: 1},
	{symbol: "km^2", dim: dimArea, scale: 1e6},
	{symbol: "ft^2", dim: dimArea, scale: 0.09290304},
	{symbol: "in^2", dim: dimArea, scale: 0.00064516},
	{symbol: "ha", dim: dimArea, scale: 1e4},
	{symbol: "acre", dim: dimArea, scale: 4046.8564224},

	// volume
	{symbol: "m^3", dim: dimVolume, scale: 1},
	{symbol: "L", dim: dimVolume, scale: 0.001, aliases: []string{"l", "liter", "litre"}},
	{symbol: "mL", dim: dimVolume, scale: 1e-6},
	{symbol: "bbl", dim: dimVolume, scale: 0.158987294928, aliases: []string{"barrel"}},
	{symbol: "gal", dim: dimVolume, scale: 0.003785411784},
	{symbol: "ft^3", dim: dimVolume, scale: 0.028316846592},
	{symbol: "in^3", dim: dimVolume, scale: 1.6387064e-5},

	// flow
	{symbol: "m^3/s", dim: dimFlow, scale: 1},
	{symbol: "m^3/h", dim: dimFlow, scale: 1.0 / 3600.0},
	{symbol: "bbl/d", dim: dimFlow, scale: 0.158987294928 / 86400.0},
	{symbol: "L/s", dim: dimFlow, scale: 0.001},

	// force
	{symbol: "N", dim: dimForce, scale: 1},
	{symbol: "kN", dim: dimForce, scale: 1000},
	{symbol: "MN", dim: dimForce, scale: 1e6},
	{symbol: "lbf", dim: dimForce, scale: 4.4482216152605},
	{symbol: "kgf", dim: dimForce, scale: 9.80665},

	// pressure
	{symbol: "Pa", dim: dimPressure, scale: 1},
	{symbol: "hPa", dim: dimPressure, scale: 100},
	{symbol: "kPa", dim: dimPressure, scale: 1000},
	{symbol: "MPa", dim: dimPressure, scale: 1e6},
	{symbol: "GPa", dim: dimPressure, scale: 1e9},
	{symbol: "bar", dim: dimPressure, scale: 1e5},
	{symbol: "mbar", dim: dimPressure, scale: 100},
	{symbol: "atm", dim: dimPressure, scale: 101325},
	{symbol: "psi", dim: dimPressure, scale: 6894.757293168},
	{symbol: "mmHg", dim: dimPressure, scale: 133.322387415},
	{symbol: "inHg", dim: dimPressure, scale: 3386.388640341},
	{symbol: "torr", dim: dimPressure, scale: 101325.0 / 760.0},

	// energy
	{symbol: "J", dim: dimEnergy, scale: 1},
	{symbol: "kJ", dim: dimEnergy, scale: 1000},
	{symbol: "MJ", dim: dimEnergy, scale: 1e6},
	{symbol: "GJ", dim: dimEnergy, scale: 1e9},
	{symbol: "Wh", dim: dimEnergy, scale: 3600},
	{symbol: "kWh", dim: dimEnergy, scale: 3.6e6},
	{symbol: "MWh", dim: dimEnergy, scale: 3.6e9},
	{symbol: "cal", dim: dimEnergy, scale: 4.184},
	{symbol: "kcal", dim: dimEnergy, scale: 4184},
	{symbol: "BTU", dim: dimEnergy, scale: 1055.05585262, aliases: []string{"Btu"}},
	{symbol: "MMBTU", dim: dimEnergy, scale: 1.05505585262e9, aliases: []string{"MMBtu"}},
	{symbol: "therm", dim: dimEnergy, scale: 1.05505585262e8},
	{symbol: "BOE", dim: dimEnergy, scale: 5.8 * 1.05505585262e9, aliases: []string{"boe"}},

	// power
	{symbol: "W", dim: dimPower, scale: 1},
	{symbol: "kW", dim: dimPower, scale: 1000},
	{symbol: "MW", dim: dimPower, scale: 1e6},
	{symbol: "hp", dim: dimPower, scale: 745.699872},

	// dimensionless
	{symbol: "1", dim: Dimensionless, scale: 1, aliases: []string{"", "dimensionless"}},
	{symbol: "%", dim: Dimensionless, scale: 0.01, aliases: []string{"percent"}},
}

// newBuiltin indexes the canonical table, aliases included.
func newBuiltin() *Registry {
	r := &Registry{bySymbol: make(map[string]Unit, 2*len(builtinUnits))}
	for _, def := range builtinUnits {
		u := Unit{Symbol: def.symbol, Dim: def.dim, Scale: def.scale, Offset: def.offset}
		r.bySymbol[def.symbol] = u
		for _, a := range def.aliases {
			r.bySymbol[a] = u
		}
	}
	return r
}
