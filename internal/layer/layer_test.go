// Package layer provides unit tests for units and layers.
package layer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceLayer(outputs ...float64) *Layer {
	l := New(len(outputs))
	l.SetOutputs(outputs)
	return l
}

// TestUnitAddConnection checks connections keep insertion order.
func TestUnitAddConnection(t *testing.T) {
	u := NewUnit(2)
	u.AddConnection(0, 0.75)
	assert.Equal(t, 1, u.NumConnections())

	u.AddConnection(2, 0.99)
	require.Equal(t, 2, u.NumConnections())
	assert.Equal(t, []float64{0.75, 0.99}, u.Weights())
	assert.Equal(t, []int{0, 2}, u.Sources())
	assert.Equal(t, 2, u.Source(1))
}

// TestUnitCombine covers the two reference combination scenarios.
func TestUnitCombine(t *testing.T) {
	tests := []struct {
		name    string
		sources []int
		weights []float64
		want    float64
	}{
		{"two connections", []int{0, 1}, []float64{0.75, 0.25}, 0.6165665045213193},
		{"three connections", []int{0, 1, 3}, []float64{0.75, 0.25, 0.55}, 0.708373991032327},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := sourceLayer(0.45, 0.55, 0.65, 0.75)
			u := NewUnit(len(tt.sources))
			for i, s := range tt.sources {
				u.AddConnection(s, tt.weights[i])
			}

			u.Combine(prev)

			assert.InDelta(t, tt.want, u.Output(), 1e-12)
			// Sources and weights are left untouched.
			assert.Equal(t, []float64{0.45, 0.55, 0.65, 0.75}, prev.Outputs())
			assert.Equal(t, tt.weights, u.Weights())
		})
	}
}

// TestUnitCombineNoConnections yields sigmoid(0).
func TestUnitCombineNoConnections(t *testing.T) {
	u := NewUnit(0)
	u.SetOutput(3)
	u.Combine(New(0))
	assert.Equal(t, 0.5, u.Output())
}

// TestUnitCombineBounds checks sigmoid outputs stay inside (0, 1).
func TestUnitCombineBounds(t *testing.T) {
	prev := sourceLayer(1, -1)
	for _, w := range []float64{-20, -5, -0.1, 0, 0.1, 5, 20} {
		u := NewUnit(2)
		u.AddConnection(0, w)
		u.AddConnection(1, -w/2)
		u.Combine(prev)
		assert.Greater(t, u.Output(), 0.0)
		assert.Less(t, u.Output(), 1.0)
	}
}

func TestUnitSetWeight(t *testing.T) {
	u := NewUnit(2)
	u.AddConnection(0, 0.1)
	u.AddConnection(1, 0.2)
	u.SetWeight(1, -0.4)
	assert.Equal(t, 0.1, u.Weight(0))
	assert.Equal(t, -0.4, u.Weight(1))

	// Weights returns a copy.
	w := u.Weights()
	w[0] = 42
	assert.Equal(t, 0.1, u.Weight(0))
}

// TestLayerConnect checks destination-major consumption of the flat weights.
func TestLayerConnect(t *testing.T) {
	in := New(3)
	out := New(2)
	weights := []float64{1, 2, 3, 4, 5, 6}
	out.Connect(in, weights)

	for d := 0; d < out.Len(); d++ {
		u := out.Unit(d)
		require.Equal(t, 3, u.NumConnections())
		assert.Equal(t, []int{0, 1, 2}, u.Sources())
		assert.Equal(t, weights[d*3:(d+1)*3], u.Weights())
	}
	assert.Equal(t, weights, out.Params())
	assert.Equal(t, 6, out.NumParams())
}

func TestLayerConnectPanicsOnWrongLength(t *testing.T) {
	assert.Panics(t, func() { New(2).Connect(New(3), make([]float64, 5)) })
}

// TestLayerCombine compares against a direct computation.
func TestLayerCombine(t *testing.T) {
	in := sourceLayer(0.2, 0.8)
	out := New(2)
	out.Connect(in, []float64{0.5, -0.5, 1, 1})
	out.Combine(in)

	want := []float64{
		1 / (1 + math.Exp(-(0.5*0.2 - 0.5*0.8))),
		1 / (1 + math.Exp(-(0.2 + 0.8))),
	}
	assert.InDeltaSlice(t, want, out.Outputs(), 1e-12)
}

func TestLayerSetOutputs(t *testing.T) {
	l := New(2)
	l.SetOutputs([]float64{0.3, 0.4})
	assert.Equal(t, []float64{0.3, 0.4}, l.Outputs())
	assert.Panics(t, func() { l.SetOutputs([]float64{1}) })
}

// TestLayerParamsAndSetParams tests parameter handling.
func TestLayerParamsAndSetParams(t *testing.T) {
	in := New(3)
	out := New(2)
	out.Connect(in, make([]float64, 6))

	newParams := make([]float64, out.NumParams())
	for i := range newParams {
		newParams[i] = float64(i) * 0.1
	}
	out.SetParams(newParams)
	assert.Equal(t, newParams, out.Params())
	assert.Equal(t, 0.5, out.Unit(1).Weight(2))

	assert.Panics(t, func() { out.SetParams(newParams[:4]) })
}

func TestCreatedCounter(t *testing.T) {
	ResetCreated()
	New(3)
	NewUnit(1)
	assert.Equal(t, int64(4), Created())
	ResetCreated()
	assert.Equal(t, int64(0), Created())
}
