package quantity

import "time"

// Operation identifies what produced a provenance entry.
type Operation string

const (
	OpCreated   Operation = "created"
	OpConverted Operation = "converted"
	OpAdd       Operation = "add"
	OpSubtract  Operation = "subtract"
	OpMultiply  Operation = "multiply"
	OpDivide    Operation = "divide"
)

// ProvenanceEntry records one step in a quantity's history. Entries are
// immutable once appended; FromUnit/ToUnit are set only for conversions.
type ProvenanceEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Operation Operation `json:"operation"`
	Source    string    `json:"source"`
	FromUnit  string    `json:"from_unit,omitempty"`
	ToUnit    string    `json:"to_unit,omitempty"`
}

func newEntry(op Operation, source string) ProvenanceEntry {
	return ProvenanceEntry{
		Timestamp: time.Now().UTC(),
		Operation: op,
		Source:    source,
	}
}
