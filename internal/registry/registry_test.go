package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	r := Default()

	tests := []struct {
		symbol  string
		wantDim Dimension
	}{
		{"m", Dimension{Length: 1}},
		{"inch", Dimension{Length: 1}},
		{"kPa", Dimension{Length: -1, Mass: 1, Time: -2}},
		{"psi", Dimension{Length: -1, Mass: 1, Time: -2}},
		{"knots", Dimension{Length: 1, Time: -1}},
		{"BOE", Dimension{Length: 2, Mass: 1, Time: -2}},
		{"degC", Dimension{Temperature: 1}},
		{"m^3", Dimension{Length: 3}},
	}
	for _, tt := range tests {
		u, err := r.Resolve(tt.symbol)
		require.NoError(t, err, tt.symbol)
		assert.Equal(t, tt.wantDim, u.Dim, tt.symbol)
	}
}

func TestResolveUnknown(t *testing.T) {
	t.Parallel()
	_, err := Default().Resolve("furlongs-per-fortnight")
	require.Error(t, err)

	var unknown *UnknownUnitError
	require.True(t, errors.As(err, &unknown))
	assert.Contains(t, err.Error(), "furlongs-per-fortnight")
}

func TestConvert(t *testing.T) {
	t.Parallel()
	r := Default()

	tests := []struct {
		name     string
		value    float64
		from, to string
		want     float64
		tol      float64
	}{
		{name: "psi to kPa", value: 1, from: "psi", to: "kPa", want: 6.894757, tol: 1e-5},
		{name: "inch to m", value: 39.3700787, from: "in", to: "m", want: 1.0, tol: 1e-6},
		{name: "knots to m/s", value: 25, from: "kn", to: "m/s", want: 12.861, tol: 1e-3},
		{name: "degC to degF", value: 100, from: "degC", to: "degF", want: 212, tol: 1e-9},
		{name: "degF to K", value: 32, from: "degF", to: "K", want: 273.15, tol: 1e-9},
		{name: "atm to psi", value: 1, from: "atm", to: "psi", want: 14.695949, tol: 1e-4},
		{name: "BOE to MMBTU", value: 1, from: "BOE", to: "MMBTU", want: 5.8, tol: 1e-9},
		{name: "bbl to gal", value: 1, from: "bbl", to: "gal", want: 42, tol: 1e-9},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := r.ConvertSymbols(tt.value, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestConvertIncompatible(t *testing.T) {
	t.Parallel()
	_, err := Default().ConvertSymbols(1, "kPa", "m")
	require.Error(t, err)

	var mismatch *DimensionMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "[length]^-1[mass][time]^-2", mismatch.Actual)
	assert.Equal(t, "[length]", mismatch.Expected)
}

func TestDimensionString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "[length]", Dimension{Length: 1}.String())
	assert.Equal(t, "[mass][time]^-2", Dimension{Mass: 1, Time: -2}.String())
	assert.Equal(t, "[dimensionless]", Dimension{}.String())
}

func TestDerivedUnit(t *testing.T) {
	t.Parallel()
	r := Default()
	kpa, err := r.Resolve("kPa")
	require.NoError(t, err)
	m, err := r.Resolve("m")
	require.NoError(t, err)

	prod := kpa.Derived(m, false)
	assert.Equal(t, "kPa*m", prod.Symbol)
	assert.Equal(t, Dimension{Mass: 1, Time: -2}, prod.Dim)

	quot := kpa.Derived(m, true)
	assert.Equal(t, "kPa/m", quot.Symbol)
	assert.Equal(t, Dimension{Length: -2, Mass: 1, Time: -2}, quot.Dim)
}

func TestDefaultIsSingleton(t *testing.T) {
	t.Parallel()
	assert.Same(t, Default(), Default())
}
