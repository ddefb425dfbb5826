package units

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestConvertEnergy(t *testing.T) {
	t.Parallel()
	got, err := ConvertEnergy(ptr(1.0), "BOE", "MMBTU")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InEpsilon(t, 5.8, *got, 0.003)
}

func TestConvertSpeed(t *testing.T) {
	t.Parallel()
	got, err := ConvertSpeed(ptr(25.0), "knots", "m/s")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InEpsilon(t, 12.861, *got, 0.0001)
}

func TestConvertTemperature(t *testing.T) {
	t.Parallel()
	got, err := ConvertTemperature(ptr(100.0), "C", "F")
	require.NoError(t, err)
	assert.InDelta(t, 212.0, *got, 1e-9)

	got, err = ConvertTemperature(ptr(0.0), "C", "K")
	require.NoError(t, err)
	assert.InDelta(t, 273.15, *got, 1e-9)
}

func TestConvertPressure(t *testing.T) {
	t.Parallel()
	got, err := ConvertPressure(ptr(1.0), "atm", "hPa")
	require.NoError(t, err)
	assert.InDelta(t, 1013.25, *got, 1e-6)
}

func TestConvertLength(t *testing.T) {
	t.Parallel()
	got, err := ConvertLength(ptr(1.0), "mi", "km")
	require.NoError(t, err)
	assert.InDelta(t, 1.609344, *got, 1e-9)
}

func TestConvertMass(t *testing.T) {
	t.Parallel()
	got, err := ConvertMass(ptr(2204.62262), "lb", "t")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, *got, 1e-6)
}

func TestConvertVolume(t *testing.T) {
	t.Parallel()
	got, err := ConvertVolume(ptr(1.0), "bbl", "gal")
	require.NoError(t, err)
	assert.InDelta(t, 42.0, *got, 1e-9)
}

func TestNilPassesThrough(t *testing.T) {
	t.Parallel()
	got, err := ConvertSpeed(nil, "knots", "m/s")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUnknownKey(t *testing.T) {
	t.Parallel()
	_, err := ConvertEnergy(ptr(1.0), "BOE", "parsecs")
	require.Error(t, err)

	var unknown *UnknownKeyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "energy", unknown.Domain)
	assert.Equal(t, "parsecs", unknown.Key)
	assert.Equal(t, `unknown energy unit "parsecs"`, err.Error())
}

func TestInputUnchanged(t *testing.T) {
	t.Parallel()
	in := ptr(25.0)
	_, err := ConvertSpeed(in, "knots", "m/s")
	require.NoError(t, err)
	assert.Equal(t, 25.0, *in)
}
