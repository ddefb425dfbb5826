// Package audit records the named inputs, named outputs, and free-text steps
// of one calculation, and exports the record for review or replay. A Log is
// owned by a single calculation and is not safe for concurrent use.
package audit

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/unitflow/unitflow/internal/quantity"
)

// Log is an ordered record of one calculation. Insertion order of inputs,
// outputs, and steps is preserved and is observable in every export format.
type Log struct {
	inputNames  []string
	inputs      map[string]*quantity.Quantity
	outputNames []string
	outputs     map[string]*quantity.Quantity
	steps       []string
}

// NewLog creates an empty audit log.
func NewLog() *Log {
	return &Log{
		inputs:  make(map[string]*quantity.Quantity),
		outputs: make(map[string]*quantity.Quantity),
	}
}

// AddInput records a named input. Re-adding a name overwrites the value but
// keeps the original insertion position.
func (l *Log) AddInput(name string, q *quantity.Quantity) {
	if _, exists := l.inputs[name]; !exists {
		l.inputNames = append(l.inputNames, name)
	}
	l.inputs[name] = q
}

// AddOutput records a named output, with the same overwrite rule as AddInput.
func (l *Log) AddOutput(name string, q *quantity.Quantity) {
	if _, exists := l.outputs[name]; !exists {
		l.outputNames = append(l.outputNames, name)
	}
	l.outputs[name] = q
}

// AddStep appends a free-text description of a calculation step.
func (l *Log) AddStep(description string) {
	l.steps = append(l.steps, description)
}

// InputNames returns input names in insertion order.
func (l *Log) InputNames() []string {
	return append([]string(nil), l.inputNames...)
}

// OutputNames returns output names in insertion order.
func (l *Log) OutputNames() []string {
	return append([]string(nil), l.outputNames...)
}

// Input returns a named input, or nil.
func (l *Log) Input(name string) *quantity.Quantity { return l.inputs[name] }

// Output returns a named output, or nil.
func (l *Log) Output(name string) *quantity.Quantity { return l.outputs[name] }

// Steps returns the recorded step descriptions in order.
func (l *Log) Steps() []string {
	return append([]string(nil), l.steps...)
}

// FilterInputs returns the inputs whose unit symbol satisfies the predicate,
// keyed by name.
func (l *Log) FilterInputs(pred func(unitSymbol string) bool) map[string]*quantity.Quantity {
	out := make(map[string]*quantity.Quantity)
	for _, name := range l.inputNames {
		if q := l.inputs[name]; pred(q.UnitSymbol()) {
			out[name] = q
		}
	}
	return out
}

// JSON serializes the log: quantity records keyed by name, plus steps.
// Inputs and outputs are emitted in insertion order, so a serialized log
// replays with the ordering the caller recorded.
func (l *Log) JSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"inputs":`)
	if err := writeOrderedObject(&buf, l.inputNames, l.inputs); err != nil {
		return nil, err
	}
	buf.WriteString(`,"outputs":`)
	if err := writeOrderedObject(&buf, l.outputNames, l.outputs); err != nil {
		return nil, err
	}
	buf.WriteString(`,"steps":`)
	steps := l.Steps()
	if steps == nil {
		steps = []string{}
	}
	data, err := json.Marshal(steps)
	if err != nil {
		return nil, eris.Wrap(err, "audit: marshal steps")
	}
	buf.Write(data)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeOrderedObject emits a JSON object whose keys appear in the given
// order. encoding/json sorts map keys, which would lose insertion order.
func writeOrderedObject(buf *bytes.Buffer, names []string, m map[string]*quantity.Quantity) error {
	buf.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return eris.Wrapf(err, "audit: marshal name %q", name)
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m[name].Record())
		if err != nil {
			return eris.Wrapf(err, "audit: marshal quantity %q", name)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return nil
}

// FromJSON reconstructs a Log, walking the document tokens so inputs and
// outputs come back in the order they were serialized.
func FromJSON(data []byte) (*Log, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return nil, eris.Wrap(err, "audit: parse log")
	}

	l := NewLog()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, eris.Wrap(err, "audit: parse log")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, eris.Errorf("audit: unexpected token %v in log object", tok)
		}
		switch key {
		case "inputs":
			if err := decodeQuantities(dec, l.AddInput); err != nil {
				return nil, eris.Wrap(err, "audit: parse inputs")
			}
		case "outputs":
			if err := decodeQuantities(dec, l.AddOutput); err != nil {
				return nil, eris.Wrap(err, "audit: parse outputs")
			}
		case "steps":
			var steps []string
			if err := dec.Decode(&steps); err != nil {
				return nil, eris.Wrap(err, "audit: parse steps")
			}
			l.steps = steps
		default:
			var skip any
			if err := dec.Decode(&skip); err != nil {
				return nil, eris.Wrapf(err, "audit: parse field %q", key)
			}
		}
	}
	return l, nil
}

// decodeQuantities walks one name->record object in document order.
func decodeQuantities(dec *json.Decoder, add func(string, *quantity.Quantity)) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return eris.Errorf("unexpected token %v, want quantity name", tok)
		}
		var r quantity.Record
		if err := dec.Decode(&r); err != nil {
			return eris.Wrapf(err, "quantity %q", name)
		}
		q, err := quantity.FromRecord(r)
		if err != nil {
			return eris.Wrapf(err, "quantity %q", name)
		}
		add(name, q)
	}
	_, err := dec.Token() // closing brace
	return err
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return eris.Errorf("unexpected token %v, want %q", tok, string(want))
	}
	return nil
}

// CSV renders the log as "role,name,magnitude,unit" rows, inputs before
// outputs, both in insertion order. Vector magnitudes are semicolon-joined
// into a single cell.
func (l *Log) CSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"role", "name", "magnitude", "unit"}); err != nil {
		return "", eris.Wrap(err, "audit: write csv header")
	}
	for _, name := range l.inputNames {
		q := l.inputs[name]
		if err := w.Write([]string{"input", name, q.MagnitudeString(), q.UnitSymbol()}); err != nil {
			return "", eris.Wrapf(err, "audit: write csv input %q", name)
		}
	}
	for _, name := range l.outputNames {
		q := l.outputs[name]
		if err := w.Write([]string{"output", name, q.MagnitudeString(), q.UnitSymbol()}); err != nil {
			return "", eris.Wrapf(err, "audit: write csv output %q", name)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", eris.Wrap(err, "audit: flush csv")
	}
	return buf.String(), nil
}

// Summary renders a human-readable listing of every named quantity and step.
func (l *Log) Summary() string {
	var sb strings.Builder
	sb.WriteString("Calculation audit log\n")

	sb.WriteString(fmt.Sprintf("Inputs (%d):\n", len(l.inputNames)))
	for _, name := range l.inputNames {
		fmt.Fprintf(&sb, "  %-20s %s\n", name, l.inputs[name].String())
	}
	sb.WriteString(fmt.Sprintf("Outputs (%d):\n", len(l.outputNames)))
	for _, name := range l.outputNames {
		fmt.Fprintf(&sb, "  %-20s %s\n", name, l.outputs[name].String())
	}
	sb.WriteString(fmt.Sprintf("Steps (%d):\n", len(l.steps)))
	for i, step := range l.steps {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
	}
	return sb.String()
}
