package quantity

import (
	"encoding/json"

	"github.com/rotisserie/eris"

	"github.com/unitflow/unitflow/internal/registry"
)

// Record is the wire form of a Quantity. Magnitude is a plain number for
// scalars and a flattened numeric array for vectors. UnitSpec is present
// only for derived units (Mul/Div results) the registry cannot resolve by
// symbol, and carries enough to reconstruct them.
type Record struct {
	Magnitude  any               `json:"magnitude"`
	Unit       string            `json:"unit"`
	UnitSpec   *UnitSpec         `json:"unit_spec,omitempty"`
	Provenance []ProvenanceEntry `json:"provenance"`
}

// UnitSpec reconstructs an unregistered unit: its dimension exponent vector
// and scale/offset relative to the dimension's base.
type UnitSpec struct {
	Dim    registry.Dimension `json:"dim"`
	Scale  float64            `json:"scale"`
	Offset float64            `json:"offset,omitempty"`
}

// Record returns the serializable form of the quantity.
func (q *Quantity) Record() Record {
	r := Record{
		Unit:       q.unit.Symbol,
		Provenance: q.Provenance(),
	}
	if _, err := registry.Default().Resolve(q.unit.Symbol); err != nil {
		r.UnitSpec = &UnitSpec{
			Dim:    q.unit.Dim,
			Scale:  q.unit.Scale,
			Offset: q.unit.Offset,
		}
	}
	if q.vector != nil {
		r.Magnitude = q.Vector()
	} else {
		r.Magnitude = q.scalar
	}
	return r
}

// MarshalJSON serializes the quantity as its Record.
func (q *Quantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.Record())
}

// FromRecord reconstructs a Quantity. The unit resolves through the
// registry, falling back to the record's UnitSpec for derived units; the
// provenance history is restored verbatim.
func FromRecord(r Record) (*Quantity, error) {
	u, err := registry.Default().Resolve(r.Unit)
	if err != nil {
		if r.UnitSpec == nil {
			return nil, err
		}
		u = registry.Unit{
			Symbol: r.Unit,
			Dim:    r.UnitSpec.Dim,
			Scale:  r.UnitSpec.Scale,
			Offset: r.UnitSpec.Offset,
		}
	}
	if len(r.Provenance) == 0 {
		return nil, eris.Errorf("quantity: record for unit %q has empty provenance", r.Unit)
	}
	if r.Provenance[0].Operation != OpCreated {
		return nil, eris.Errorf("quantity: record for unit %q must start with a %q entry, got %q",
			r.Unit, OpCreated, r.Provenance[0].Operation)
	}

	q := &Quantity{unit: u}
	q.prov = make([]ProvenanceEntry, len(r.Provenance))
	copy(q.prov, r.Provenance)

	switch m := r.Magnitude.(type) {
	case float64:
		q.scalar = m
	case int:
		q.scalar = float64(m)
	case []float64:
		q.vector = make([]float64, len(m))
		copy(q.vector, m)
	case []any:
		// json.Unmarshal of an array lands here.
		q.vector = make([]float64, len(m))
		for i, v := range m {
			f, ok := v.(float64)
			if !ok {
				return nil, eris.Errorf("quantity: record magnitude[%d] is not numeric", i)
			}
			q.vector[i] = f
		}
		if len(q.vector) == 0 {
			return nil, eris.Errorf("quantity: record for unit %q has empty vector magnitude", r.Unit)
		}
	default:
		return nil, eris.Errorf("quantity: record magnitude has unsupported type %T", r.Magnitude)
	}
	return q, nil
}

// FromJSON parses a Record and reconstructs the quantity.
func FromJSON(data []byte) (*Quantity, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, eris.Wrap(err, "quantity: parse record")
	}
	return FromRecord(r)
}
