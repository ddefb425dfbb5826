package quantity

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unitflow/unitflow/internal/registry"
)

func mustNew(t *testing.T, mag float64, unit, source string) *Quantity {
	t.Helper()
	q, err := New(mag, unit, source)
	require.NoError(t, err)
	return q
}

func TestNew(t *testing.T) {
	t.Parallel()
	q := mustNew(t, 100, "kPa", "wellhead gauge")

	assert.Equal(t, 100.0, q.Magnitude())
	assert.Equal(t, "kPa", q.UnitSymbol())
	assert.False(t, q.IsVector())

	prov := q.Provenance()
	require.Len(t, prov, 1)
	assert.Equal(t, OpCreated, prov[0].Operation)
	assert.Equal(t, "wellhead gauge", prov[0].Source)
	assert.False(t, prov[0].Timestamp.IsZero())
}

func TestNewUnknownUnit(t *testing.T) {
	t.Parallel()
	_, err := New(1, "blorps", "test")
	require.Error(t, err)

	var unknown *registry.UnknownUnitError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, err.Error(), "blorps")
}

func TestToRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		value    float64
		unit, to string
	}{
		{"pressure", 101.325, "kPa", "psi"},
		{"length", 12.5, "m", "ft"},
		{"temperature", 80.0, "degC", "degF"},
		{"energy", 3.2, "BOE", "GJ"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q := mustNew(t, tt.value, tt.unit, "test")
			there, err := q.To(tt.to)
			require.NoError(t, err)
			back, err := there.To(tt.unit)
			require.NoError(t, err)
			assert.InDelta(t, tt.value, back.Magnitude(), 1e-9)
		})
	}
}

func TestToRecordsConversion(t *testing.T) {
	t.Parallel()
	q := mustNew(t, 100, "kPa", "gauge")
	psi, err := q.To("psi")
	require.NoError(t, err)

	assert.InDelta(t, 14.50377, psi.Magnitude(), 1e-4)
	prov := psi.Provenance()
	require.Len(t, prov, 2)
	assert.Equal(t, OpConverted, prov[1].Operation)
	assert.Equal(t, "kPa", prov[1].FromUnit)
	assert.Equal(t, "psi", prov[1].ToUnit)
}

func TestToIncompatible(t *testing.T) {
	t.Parallel()
	q := mustNew(t, 100, "kPa", "gauge")
	_, err := q.To("m")
	require.Error(t, err)

	var mismatch *registry.DimensionMismatchError
	assert.True(t, errors.As(err, &mismatch))
}

func TestImmutability(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 100, "kPa", "gauge")

	_, err := a.To("psi")
	require.NoError(t, err)
	b := mustNew(t, 50, "kPa", "gauge")
	_, err = a.Add(b)
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.Magnitude())
	assert.Len(t, a.Provenance(), 1)
}

func TestAddCompatibleCrossUnit(t *testing.T) {
	t.Parallel()
	kpa := mustNew(t, 100, "kPa", "gauge A")
	psi := mustNew(t, 14.696, "psi", "gauge B")

	sum, err := kpa.Add(psi)
	require.NoError(t, err)

	assert.Equal(t, "kPa", sum.UnitSymbol())
	assert.InDelta(t, 100+14.696*6.89476, sum.Magnitude(), 0.1)
}

func TestAddIncompatible(t *testing.T) {
	t.Parallel()
	p := mustNew(t, 100, "kPa", "gauge")
	f := mustNew(t, 50, "kN", "load cell")

	_, err := p.Add(f)
	require.Error(t, err)

	var mismatch *UnitMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "add", mismatch.Op)
	assert.Equal(t, "kPa", mismatch.LeftUnit)
	assert.Equal(t, "kN", mismatch.RightUnit)

	// The low-level dimension error stays on the chain.
	var dim *registry.DimensionMismatchError
	assert.True(t, errors.As(err, &dim))
}

func TestSub(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 10, "m", "survey")
	b := mustNew(t, 100, "cm", "survey")

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, diff.Magnitude(), 1e-12)
	assert.Equal(t, "m", diff.UnitSymbol())

	prov := diff.Provenance()
	assert.Equal(t, OpSubtract, prov[len(prov)-1].Operation)
}

func TestProvenanceGrowth(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 100, "kPa", "gauge A")
	converted, err := a.To("psi")
	require.NoError(t, err)
	assert.Len(t, converted.Provenance(), len(a.Provenance())+1)

	b := mustNew(t, 14.7, "psi", "gauge B")
	sum, err := converted.Add(b)
	require.NoError(t, err)
	assert.Len(t, sum.Provenance(), len(converted.Provenance())+len(b.Provenance())+1)

	// Left-to-right concatenation order.
	prov := sum.Provenance()
	assert.Equal(t, "gauge A", prov[0].Source)
	assert.Equal(t, "gauge B", prov[2].Source)
	assert.Equal(t, OpAdd, prov[3].Operation)
	assert.Empty(t, prov[3].FromUnit)
	assert.Empty(t, prov[3].ToUnit)
}

func TestMulDerivesUnit(t *testing.T) {
	t.Parallel()
	force := mustNew(t, 12, "kN", "load")
	dist := mustNew(t, 3, "m", "arm")

	work, err := force.Mul(dist)
	require.NoError(t, err)
	assert.Equal(t, 36.0, work.Magnitude())
	assert.Equal(t, "kN*m", work.UnitSymbol())
	assert.Equal(t, "[length]^2[mass][time]^-2", work.Dimensionality())
}

func TestDivDerivesUnit(t *testing.T) {
	t.Parallel()
	dist := mustNew(t, 100, "m", "lap")
	dur := mustNew(t, 20, "s", "watch")

	speed, err := dist.Div(dur)
	require.NoError(t, err)
	assert.Equal(t, 5.0, speed.Magnitude())
	assert.Equal(t, "m/s", speed.UnitSymbol())
	assert.Equal(t, "[length][time]^-1", speed.Dimensionality())
}

func TestCompatible(t *testing.T) {
	t.Parallel()
	p := mustNew(t, 1, "kPa", "test")

	assert.True(t, p.CompatibleUnit("psi"))
	assert.False(t, p.CompatibleUnit("m"))
	assert.False(t, p.CompatibleUnit("no-such-unit"))
	assert.True(t, p.CompatibleWith(mustNew(t, 2, "bar", "test")))
}

func TestCheckDimensions(t *testing.T) {
	t.Parallel()
	p := mustNew(t, 1, "kPa", "test")

	assert.NoError(t, p.CheckDimensions("[length]^-1[mass][time]^-2"))
	assert.NoError(t, p.CheckDimensions("psi"))

	err := p.CheckDimensions("[length]")
	require.Error(t, err)
	var mismatch *registry.DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "[length]^-1[mass][time]^-2", mismatch.Actual)
	assert.Equal(t, "[length]", mismatch.Expected)

	assert.Error(t, p.CheckDimensions("m"))
}

func TestVectorArithmetic(t *testing.T) {
	t.Parallel()
	depths, err := NewVector([]float64{100, 200, 300}, "m", "survey")
	require.NoError(t, err)

	ft, err := depths.To("ft")
	require.NoError(t, err)
	assert.InDelta(t, 328.084, ft.Vector()[0], 1e-3)

	offset := mustNew(t, 10, "m", "datum")
	scaled, err := depths.Mul(mustNew(t, 2, "1", "factor"))
	require.NoError(t, err)
	assert.Equal(t, []float64{200, 400, 600}, scaled.Vector())

	_, err = depths.Add(offset)
	assert.Error(t, err, "scalar/vector add is rejected")

	other, err := NewVector([]float64{1, 2, 3}, "m", "survey")
	require.NoError(t, err)
	sum, err := depths.Add(other)
	require.NoError(t, err)
	assert.Equal(t, []float64{101, 202, 303}, sum.Vector())
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()
	a := mustNew(t, 100, "kPa", "gauge")
	b, err := a.To("psi")
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.InDelta(t, b.Magnitude(), back.Magnitude(), 1e-12)
	assert.Equal(t, "psi", back.UnitSymbol())
	require.Len(t, back.Provenance(), 2)
	assert.Equal(t, OpConverted, back.Provenance()[1].Operation)
}

func TestRecordRoundTripVector(t *testing.T) {
	t.Parallel()
	v, err := NewVector([]float64{1.5, 2.5}, "bar", "sensor")
	require.NoError(t, err)

	data, err := json.Marshal(v)
	require.NoError(t, err)
	back, err := FromJSON(data)
	require.NoError(t, err)

	assert.True(t, back.IsVector())
	assert.Equal(t, []float64{1.5, 2.5}, back.Vector())
}

func TestRecordRoundTripDerivedUnit(t *testing.T) {
	t.Parallel()
	force := mustNew(t, 12, "kN", "load")
	dist := mustNew(t, 3, "m", "arm")
	work, err := force.Mul(dist)
	require.NoError(t, err)

	data, err := json.Marshal(work)
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 36.0, back.Magnitude())
	assert.Equal(t, "kN*m", back.UnitSymbol())
	assert.Equal(t, "[length]^2[mass][time]^-2", back.Dimensionality())
	assert.Len(t, back.Provenance(), 3)

	// The restored derived unit is still arithmetically usable.
	sum, err := back.Add(work)
	require.NoError(t, err)
	assert.Equal(t, 72.0, sum.Magnitude())

	kj, err := back.To("kJ")
	require.NoError(t, err)
	assert.InDelta(t, 36.0, kj.Magnitude(), 1e-9)
}

func TestRecordOmitsUnitSpecForRegisteredUnits(t *testing.T) {
	t.Parallel()
	r := mustNew(t, 100, "kPa", "gauge").Record()
	assert.Nil(t, r.UnitSpec)
}

func TestFromRecordFirstEntryMustBeCreated(t *testing.T) {
	t.Parallel()
	q := mustNew(t, 1, "m", "test")
	r := q.Record()
	r.Provenance[0].Operation = OpAdd

	_, err := FromRecord(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "created")
}

func TestMagnitudeString(t *testing.T) {
	t.Parallel()
	s := mustNew(t, 12.5, "m", "test")
	assert.Equal(t, "12.5", s.MagnitudeString())
	assert.Equal(t, "12.5 m", s.String())

	v, err := NewVector([]float64{1, 2.5}, "m", "test")
	require.NoError(t, err)
	assert.Equal(t, "1;2.5", v.MagnitudeString())
}
