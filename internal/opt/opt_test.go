// Package opt provides unit tests for the update rule.
package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSGDStep tests SGD step computation.
func TestSGDStep(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	params := []float64{1.0, 2.0, 3.0}
	gradients := []float64{0.1, 0.2, 0.3}

	updated := sgd.Step(params, gradients)

	assert.InDeltaSlice(t, []float64{0.99, 1.98, 2.97}, updated, 1e-10)
	// Step leaves its input alone.
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, params)
}

// TestSGDStepInPlace tests in-place SGD update.
func TestSGDStepInPlace(t *testing.T) {
	sgd := SGD{LearningRate: 0.1}

	params := []float64{1.0, 2.0, 3.0}
	gradients := []float64{0.1, 0.2, 0.3}

	sgd.StepInPlace(params, gradients)

	assert.InDeltaSlice(t, []float64{0.99, 1.98, 2.97}, params, 1e-10)
}

func TestSGDZeroLearningRate(t *testing.T) {
	sgd := SGD{LearningRate: 0}
	params := []float64{1.0, -2.0}
	assert.Equal(t, params, sgd.Step(params, []float64{5, 5}))
}

// TestDeltaGradients checks that stepping moves weights by lr * err * source.
func TestDeltaGradients(t *testing.T) {
	tests := []struct {
		name    string
		lr      float64
		errTerm float64
		sources []float64
	}{
		{"positive error", 0.7, 0.12, []float64{0.3, 0.9, 0.5}},
		{"negative error", 0.7, -0.25, []float64{0.3, 0.9, 0.5}},
		{"zero error", 0.5, 0, []float64{1, 1}},
		{"negative sources", 0.1, 0.4, []float64{-1, -0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			weights := []float64{0.1, -0.2, 0.3, -0.4}[:len(tt.sources)]
			before := append([]float64(nil), weights...)

			grads := make([]float64, len(tt.sources))
			DeltaGradients(grads, tt.errTerm, tt.sources)
			SGD{LearningRate: tt.lr}.StepInPlace(weights, grads)

			for i := range weights {
				assert.InDelta(t, tt.lr*tt.errTerm*tt.sources[i], weights[i]-before[i], 1e-12)
			}
		})
	}
}

func TestOptimizerInterface(t *testing.T) {
	var o Optimizer = SGD{LearningRate: 0.5}
	params := []float64{1}
	o.StepInPlace(params, []float64{1})
	assert.Equal(t, 0.5, params[0])
}
