package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitflow/unitflow/internal/quantity"
	"github.com/unitflow/unitflow/internal/registry"
)

func TestEnforceStrictRejects(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(39.37, "inch", "survey")
	require.NoError(t, err)

	p := Policy{System: "SI", Strict: true, AutoConvert: false}
	_, err = p.Enforce(q, "length")
	require.Error(t, err)

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "m", violation.Expected)
	assert.Equal(t, "in", violation.Actual)
	assert.Contains(t, err.Error(), "length")
}

func TestEnforceAutoConverts(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(39.37, "inch", "survey")
	require.NoError(t, err)

	p := Policy{System: "SI", AutoConvert: true}
	got, err := p.Enforce(q, "length")
	require.NoError(t, err)
	assert.Equal(t, "m", got.UnitSymbol())
	assert.InDelta(t, 0.99999, got.Magnitude(), 1e-4)

	// Enforcement converts, so provenance records it.
	prov := got.Provenance()
	require.Len(t, prov, 2)
	assert.Equal(t, quantity.OpConverted, prov[1].Operation)
}

func TestEnforceStrictWithAutoConvert(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(39.37, "inch", "survey")
	require.NoError(t, err)

	// Strict alone does not block conversion: auto_convert rescues
	// compatible-but-different units.
	p := Policy{System: "SI", Strict: true, AutoConvert: true}
	got, err := p.Enforce(q, "length")
	require.NoError(t, err)
	assert.Equal(t, "m", got.UnitSymbol())
	assert.InDelta(t, 0.99999, got.Magnitude(), 1e-4)
}

func TestEnforceAlreadyConformant(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(2.5, "m", "survey")
	require.NoError(t, err)

	p := Policy{System: "SI", Strict: true}
	got, err := p.Enforce(q, "length")
	require.NoError(t, err)
	assert.Same(t, q, got)
}

func TestEnforceIncompatibleDimension(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(10, "kg", "scale")
	require.NoError(t, err)

	p := Policy{System: "SI", AutoConvert: true}
	_, err = p.Enforce(q, "length")
	require.Error(t, err)

	var mismatch *registry.DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "[mass]", mismatch.Actual)
	assert.Equal(t, "[length]", mismatch.Expected)
}

func TestEnforceNonConvertingRejects(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(100, "psi", "gauge")
	require.NoError(t, err)

	p := Policy{System: "metric_engineering", Strict: false, AutoConvert: false}
	_, err = p.Enforce(q, "pressure")

	var violation *ViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "kPa", violation.Expected)
}

func TestEnforceUnknownSystem(t *testing.T) {
	t.Parallel()
	q, err := quantity.New(1, "m", "test")
	require.NoError(t, err)

	p := Policy{System: "cgs"}
	_, err = p.Enforce(q, "length")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cgs")
}

func TestExpectedUnit(t *testing.T) {
	t.Parallel()
	u, err := ExpectedUnit("inch", "pressure")
	require.NoError(t, err)
	assert.Equal(t, "psi", u)

	_, err = ExpectedUnit("SI", "vorticity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vorticity")
}
