package net

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// HiddenErrorRule selects which output weight carries output error back to
// a hidden unit.
type HiddenErrorRule int

const (
	// ConnectionWeight uses output unit j's weight on its connection from
	// hidden unit i, the textbook backpropagation rule.
	ConnectionWeight HiddenErrorRule = iota

	// LegacyDiagonal uses output unit j's incoming weight at index j for
	// every hidden unit. Kept to reproduce older training runs. It requires
	// NumOutputs <= NumHidden.
	LegacyDiagonal
)

func (r HiddenErrorRule) String() string {
	switch r {
	case ConnectionWeight:
		return "connection-weight"
	case LegacyDiagonal:
		return "legacy-diagonal"
	default:
		return fmt.Sprintf("HiddenErrorRule(%d)", int(r))
	}
}

// Config holds the hyperparameters of a network. It is copied into the
// Network at construction and never changes afterwards.
type Config struct {
	NumInputs  int
	NumHidden  int
	NumOutputs int

	// Initial weights are drawn uniformly from [WeightMin, WeightMax).
	WeightMin float64
	WeightMax float64

	LearningRate float64

	HiddenError HiddenErrorRule
}

// DefaultConfig returns the stock predictor defaults: four trading days of
// ten closing prices in, one day of ten prices out.
func DefaultConfig() Config {
	return Config{
		NumInputs:    40,
		NumHidden:    17,
		NumOutputs:   10,
		WeightMin:    -0.5,
		WeightMax:    0.5,
		LearningRate: 0.7,
		HiddenError:  ConnectionWeight,
	}
}

// Validate reports ErrConfiguration for sizes below one, an inverted or
// non-finite weight range, a non-finite learning rate, or an unusable
// hidden error rule.
func (c Config) Validate() error {
	switch {
	case c.NumInputs <= 0:
		return errors.Wrapf(ErrConfiguration, "NumInputs must be positive, got %d", c.NumInputs)
	case c.NumHidden <= 0:
		return errors.Wrapf(ErrConfiguration, "NumHidden must be positive, got %d", c.NumHidden)
	case c.NumOutputs <= 0:
		return errors.Wrapf(ErrConfiguration, "NumOutputs must be positive, got %d", c.NumOutputs)
	case !finite(c.WeightMin) || !finite(c.WeightMax):
		return errors.Wrapf(ErrConfiguration, "weight range [%g, %g] is not finite", c.WeightMin, c.WeightMax)
	case c.WeightMin > c.WeightMax:
		return errors.Wrapf(ErrConfiguration, "WeightMin %g exceeds WeightMax %g", c.WeightMin, c.WeightMax)
	case !finite(c.LearningRate):
		return errors.Wrapf(ErrConfiguration, "LearningRate %g is not finite", c.LearningRate)
	}

	switch c.HiddenError {
	case ConnectionWeight:
	case LegacyDiagonal:
		if c.NumOutputs > c.NumHidden {
			return errors.Wrapf(ErrConfiguration,
				"%v needs NumOutputs (%d) <= NumHidden (%d)", c.HiddenError, c.NumOutputs, c.NumHidden)
		}
	default:
		return errors.Wrapf(ErrConfiguration, "unknown hidden error rule %v", c.HiddenError)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
