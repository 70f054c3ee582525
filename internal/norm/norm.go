// Package norm maps raw values into the activation range and back using a
// dataset-wide maximum and minimum.
package norm

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDegenerateRange is returned when max == min, where the mapping
	// would divide by zero.
	ErrDegenerateRange = errors.New("norm: degenerate range")

	// ErrNoValues is returned by Fit when there is nothing to fit.
	ErrNoValues = errors.New("norm: no values")
)

// Normalize returns (v-min)/(max-min) for every value. values is not modified.
func Normalize(values []float64, max, min float64) ([]float64, error) {
	if max == min {
		return nil, errors.Wrapf(ErrDegenerateRange, "normalize: max and min are both %g", max)
	}

	out := make([]float64, len(values))
	copy(out, values)
	floats.AddConst(-min, out)
	span := max - min
	for i := range out {
		out[i] /= span
	}
	return out, nil
}

// Denormalize returns v*(max-min)+min for every value, the inverse of
// Normalize for the same max and min. values is not modified.
func Denormalize(values []float64, max, min float64) ([]float64, error) {
	if max == min {
		return nil, errors.Wrapf(ErrDegenerateRange, "denormalize: max and min are both %g", max)
	}

	out := make([]float64, len(values))
	copy(out, values)
	floats.Scale(max-min, out)
	floats.AddConst(min, out)
	return out, nil
}

// Params is a fitted normalization range.
type Params struct {
	Max float64
	Min float64
}

// Fit returns the range spanning every value in every slice.
// Empty slices are skipped.
func Fit(values ...[]float64) (Params, error) {
	var p Params
	found := false
	for _, v := range values {
		if len(v) == 0 {
			continue
		}
		hi, lo := floats.Max(v), floats.Min(v)
		if !found {
			p = Params{Max: hi, Min: lo}
			found = true
			continue
		}
		if hi > p.Max {
			p.Max = hi
		}
		if lo < p.Min {
			p.Min = lo
		}
	}
	if !found {
		return Params{}, ErrNoValues
	}
	return p, nil
}

// Validate reports ErrDegenerateRange when Max == Min.
func (p Params) Validate() error {
	if p.Max == p.Min {
		return errors.Wrapf(ErrDegenerateRange, "range [%g, %g]", p.Min, p.Max)
	}
	return nil
}

// Normalize maps values into [0, 1] relative to the range.
func (p Params) Normalize(values []float64) ([]float64, error) {
	return Normalize(values, p.Max, p.Min)
}

// Denormalize maps values back out of [0, 1].
func (p Params) Denormalize(values []float64) ([]float64, error) {
	return Denormalize(values, p.Max, p.Min)
}
