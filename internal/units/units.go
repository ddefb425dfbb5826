// Package units provides standalone per-domain conversion helpers for
// engineering unit names (e.g. "knots", "BOE", "hPa"). The helpers resolve
// through the canonical registry but return plain numbers; they carry no
// provenance and are usable independently of tracked quantities.
package units

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/unitflow/unitflow/internal/registry"
)

// UnknownKeyError reports a domain key with no registry mapping.
type UnknownKeyError struct {
	Domain string
	Key    string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown %s unit %q", e.Domain, e.Key)
}

// convert is the shared adapter body: nil passes through, unmapped keys fail
// with UnknownKeyError, everything else goes through the registry.
func convert(value *float64, fromKey, toKey, domain string, mapping map[string]string) (*float64, error) {
	if value == nil {
		return nil, nil
	}
	from, ok := mapping[fromKey]
	if !ok {
		return nil, &UnknownKeyError{Domain: domain, Key: fromKey}
	}
	to, ok := mapping[toKey]
	if !ok {
		return nil, &UnknownKeyError{Domain: domain, Key: toKey}
	}
	out, err := registry.Default().ConvertSymbols(*value, from, to)
	if err != nil {
		return nil, eris.Wrapf(err, "units: convert %s %q -> %q", domain, fromKey, toKey)
	}
	return &out, nil
}
