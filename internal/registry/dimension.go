package registry

import (
	"strconv"
	"strings"
)

// Dimension is an exponent vector over the seven SI base dimensions.
// Two units are compatible exactly when their Dimension values are equal.
type Dimension struct {
	Length      int `json:"length,omitempty"`
	Mass        int `json:"mass,omitempty"`
	Time        int `json:"time,omitempty"`
	Current     int `json:"current,omitempty"`
	Temperature int `json:"temperature,omitempty"`
	Amount      int `json:"amount,omitempty"`
	Luminosity  int `json:"luminosity,omitempty"`
}

// Dimensionless is the zero exponent vector.
var Dimensionless = Dimension{}

// Mul returns the dimension of a product of two quantities.
func (d Dimension) Mul(o Dimension) Dimension {
	return Dimension{
		Length:      d.Length + o.Length,
		Mass:        d.Mass + o.Mass,
		Time:        d.Time + o.Time,
		Current:     d.Current + o.Current,
		Temperature: d.Temperature + o.Temperature,
		Amount:      d.Amount + o.Amount,
		Luminosity:  d.Luminosity + o.Luminosity,
	}
}

// Div returns the dimension of a quotient of two quantities.
func (d Dimension) Div(o Dimension) Dimension {
	return Dimension{
		Length:      d.Length - o.Length,
		Mass:        d.Mass - o.Mass,
		Time:        d.Time - o.Time,
		Current:     d.Current - o.Current,
		Temperature: d.Temperature - o.Temperature,
		Amount:      d.Amount - o.Amount,
		Luminosity:  d.Luminosity - o.Luminosity,
	}
}

// String renders the signature in a fixed base order, e.g. "[length][time]^-1".
// The zero vector renders as "[dimensionless]".
func (d Dimension) String() string {
	parts := []struct {
		name string
		exp  int
	}{
		{"length", d.Length},
		{"mass", d.Mass},
		{"time", d.Time},
		{"current", d.Current},
		{"temperature", d.Temperature},
		{"amount", d.Amount},
		{"luminosity", d.Luminosity},
	}

	var sb strings.Builder
	for _, p := range parts {
		if p.exp == 0 {
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(p.name)
		sb.WriteByte(']')
		if p.exp != 1 {
			sb.WriteByte('^')
			sb.WriteString(strconv.Itoa(p.exp))
		}
	}
	if sb.Len() == 0 {
		return "[dimensionless]"
	}
	return sb.String()
}
