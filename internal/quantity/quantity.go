// Package quantity implements the unit-tracked value type at the heart of
// the engine: a magnitude, a resolved unit, and an append-only provenance
// history. Quantities are immutable; every operation returns a new instance.
package quantity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/unitflow/unitflow/internal/registry"
)

// Quantity is a magnitude (scalar or vector) tagged with a unit and the
// ordered history of operations that produced it.
type Quantity struct {
	scalar float64
	vector []float64 // nil for scalar quantities
	unit   registry.Unit
	prov   []ProvenanceEntry
}

// UnitMismatchError is raised by Add/Sub when operand dimensions differ.
// It wraps the underlying registry.DimensionMismatchError.
type UnitMismatchError struct {
	Op        string
	LeftUnit  string
	RightUnit string
	cause     error
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("cannot %s %q and %q: incompatible units", e.Op, e.LeftUnit, e.RightUnit)
}

func (e *UnitMismatchError) Unwrap() error { return e.cause }

// New creates a scalar quantity, recording a single "created" entry.
func New(magnitude float64, unitSymbol, source string) (*Quantity, error) {
	u, err := registry.Default().Resolve(unitSymbol)
	if err != nil {
		return nil, err
	}
	return &Quantity{
		scalar: magnitude,
		unit:   u,
		prov:   []ProvenanceEntry{newEntry(OpCreated, source)},
	}, nil
}

// NewVector creates a vector quantity over a copy of values.
func NewVector(values []float64, unitSymbol, source string) (*Quantity, error) {
	u, err := registry.Default().Resolve(unitSymbol)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, eris.New("quantity: vector magnitude must not be empty")
	}
	v := make([]float64, len(values))
	copy(v, values)
	return &Quantity{
		vector: v,
		unit:   u,
		prov:   []ProvenanceEntry{newEntry(OpCreated, source)},
	}, nil
}

// Magnitude returns the scalar magnitude. For vector quantities it returns
// the first element; callers should check IsVector first.
func (q *Quantity) Magnitude() float64 {
	if q.vector != nil {
		return q.vector[0]
	}
	return q.scalar
}

// Vector returns a copy of the vector magnitude, or nil for scalars.
func (q *Quantity) Vector() []float64 {
	if q.vector == nil {
		return nil
	}
	v := make([]float64, len(q.vector))
	copy(v, q.vector)
	return v
}

// IsVector reports whether the magnitude is an array.
func (q *Quantity) IsVector() bool { return q.vector != nil }

// Unit returns the resolved unit handle.
func (q *Quantity) Unit() registry.Unit { return q.unit }

// UnitSymbol returns the unit's symbol.
func (q *Quantity) UnitSymbol() string { return q.unit.Symbol }

// Dimensionality returns the unit's dimension signature, e.g. "[length]".
func (q *Quantity) Dimensionality() string { return q.unit.Dim.String() }

// Provenance returns a copy of the provenance history.
func (q *Quantity) Provenance() []ProvenanceEntry {
	p := make([]ProvenanceEntry, len(q.prov))
	copy(p, q.prov)
	return p
}

// MagnitudeString renders the magnitude deterministically: scalars with %g,
// vectors as semicolon-joined elements. The same rule feeds CSV export and
// lineage node labels.
func (q *Quantity) MagnitudeString() string {
	if q.vector == nil {
		return strconv.FormatFloat(q.scalar, 'g', -1, 64)
	}
	parts := make([]string, len(q.vector))
	for i, v := range q.vector {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ";")
}

// String renders "<magnitude> <unit>".
func (q *Quantity) String() string {
	return q.MagnitudeString() + " " + q.unit.Symbol
}

// To converts the quantity into the target unit. The receiver is unchanged;
// the result carries a "converted" provenance entry with both units.
func (q *Quantity) To(target string) (*Quantity, error) {
	reg := registry.Default()
	tu, err := reg.Resolve(target)
	if err != nil {
		return nil, err
	}

	out := &Quantity{unit: tu}
	if q.vector != nil {
		out.vector = make([]float64, len(q.vector))
		for i, v := range q.vector {
			conv, err := reg.Convert(v, q.unit, tu)
			if err != nil {
				return nil, err
			}
			out.vector[i] = conv
		}
	} else {
		conv, err := reg.Convert(q.scalar, q.unit, tu)
		if err != nil {
			return nil, err
		}
		out.scalar = conv
	}

	entry := newEntry(OpConverted, "")
	entry.FromUnit = q.unit.Symbol
	entry.ToUnit = tu.Symbol
	out.prov = appendProv(q.prov, nil, entry)
	return out, nil
}

// CompatibleWith reports dimensional compatibility with another quantity.
func (q *Quantity) CompatibleWith(o *Quantity) bool {
	return q.unit.Compatible(o.unit)
}

// CompatibleUnit reports dimensional compatibility with a unit symbol.
// Unknown symbols are simply not compatible.
func (q *Quantity) CompatibleUnit(symbol string) bool {
	u, err := registry.Default().Resolve(symbol)
	if err != nil {
		return false
	}
	return q.unit.Compatible(u)
}

// CheckDimensions verifies the quantity against an expectation: either a
// dimensionality signature (leading '[', exact match) or a unit symbol
// (compatibility check).
func (q *Quantity) CheckDimensions(expected string) error {
	actual := q.unit.Dim.String()
	if strings.HasPrefix(expected, "[") {
		if actual != expected {
			return &registry.DimensionMismatchError{Actual: actual, Expected: expected}
		}
		return nil
	}
	u, err := registry.Default().Resolve(expected)
	if err != nil {
		return err
	}
	if !q.unit.Compatible(u) {
		return &registry.DimensionMismatchError{Actual: actual, Expected: u.Dim.String()}
	}
	return nil
}

// Add returns q + o expressed in q's unit.
func (q *Quantity) Add(o *Quantity) (*Quantity, error) {
	return q.addSub(o, OpAdd)
}

// Sub returns q - o expressed in q's unit.
func (q *Quantity) Sub(o *Quantity) (*Quantity, error) {
	return q.addSub(o, OpSubtract)
}

func (q *Quantity) addSub(o *Quantity, op Operation) (*Quantity, error) {
	opName := "add"
	if op == OpSubtract {
		opName = "subtract"
	}
	if !q.unit.Compatible(o.unit) {
		return nil, &UnitMismatchError{
			Op:        opName,
			LeftUnit:  q.unit.Symbol,
			RightUnit: o.unit.Symbol,
			cause: &registry.DimensionMismatchError{
				Actual:   o.unit.Dim.String(),
				Expected: q.unit.Dim.String(),
			},
		}
	}

	// Convert through the unit handles rather than symbols so derived units
	// (e.g. kN*m) work as operands too.
	reg := registry.Default()
	sign := 1.0
	if op == OpSubtract {
		sign = -1.0
	}

	out := &Quantity{unit: q.unit}
	switch {
	case q.vector == nil && o.vector == nil:
		conv, err := reg.Convert(o.scalar, o.unit, q.unit)
		if err != nil {
			return nil, eris.Wrapf(err, "quantity: %s", opName)
		}
		out.scalar = q.scalar + sign*conv
	case q.vector != nil && o.vector != nil:
		if len(q.vector) != len(o.vector) {
			return nil, eris.Errorf("quantity: %s: vector lengths differ (%d vs %d)",
				opName, len(q.vector), len(o.vector))
		}
		out.vector = make([]float64, len(q.vector))
		for i := range q.vector {
			conv, err := reg.Convert(o.vector[i], o.unit, q.unit)
			if err != nil {
				return nil, eris.Wrapf(err, "quantity: %s", opName)
			}
			out.vector[i] = q.vector[i] + sign*conv
		}
	default:
		return nil, eris.Errorf("quantity: %s: cannot mix scalar and vector magnitudes", opName)
	}

	out.prov = appendProv(q.prov, o.prov, newEntry(op, ""))
	return out, nil
}

// Mul returns q * o with a derived unit. Scalar operands broadcast over
// vector operands.
func (q *Quantity) Mul(o *Quantity) (*Quantity, error) {
	return q.mulDiv(o, OpMultiply)
}

// Div returns q / o with a derived unit.
func (q *Quantity) Div(o *Quantity) (*Quantity, error) {
	return q.mulDiv(o, OpDivide)
}

func (q *Quantity) mulDiv(o *Quantity, op Operation) (*Quantity, error) {
	quotient := op == OpDivide
	apply := func(a, b float64) float64 {
		if quotient {
			return a / b
		}
		return a * b
	}

	out := &Quantity{unit: q.unit.Derived(o.unit, quotient)}
	switch {
	case q.vector == nil && o.vector == nil:
		out.scalar = apply(q.scalar, o.scalar)
	case q.vector != nil && o.vector == nil:
		out.vector = make([]float64, len(q.vector))
		for i, v := range q.vector {
			out.vector[i] = apply(v, o.scalar)
		}
	case q.vector == nil && o.vector != nil:
		out.vector = make([]float64, len(o.vector))
		for i, v := range o.vector {
			out.vector[i] = apply(q.scalar, v)
		}
	default:
		if len(q.vector) != len(o.vector) {
			return nil, eris.Errorf("quantity: %s: vector lengths differ (%d vs %d)",
				op, len(q.vector), len(o.vector))
		}
		out.vector = make([]float64, len(q.vector))
		for i := range q.vector {
			out.vector[i] = apply(q.vector[i], o.vector[i])
		}
	}

	out.prov = appendProv(q.prov, o.prov, newEntry(op, ""))
	return out, nil
}

// appendProv concatenates operand histories left-to-right and appends the
// entry for the operation that produced the derived value. The operand
// slices are never aliased into the result.
func appendProv(left, right []ProvenanceEntry, entry ProvenanceEntry) []ProvenanceEntry {
	p := make([]ProvenanceEntry, 0, len(left)+len(right)+1)
	p = append(p, left...)
	p = append(p, right...)
	return append(p, entry)
}
