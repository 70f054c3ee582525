package layer

import (
	"sync/atomic"

	"github.com/FlavioCFOliveira/stocknet/internal/activations"
)

// transfer is the activation applied by every unit.
var transfer = activations.Sigmoid{}

// created counts units built since the last ResetCreated.
var created atomic.Int64

// Created returns the number of units constructed in this process since the
// last call to ResetCreated.
func Created() int64 {
	return created.Load()
}

// ResetCreated zeroes the unit counter.
func ResetCreated() {
	created.Store(0)
}

// Unit is a single neuron. It holds an output value and, when it receives
// connections, parallel slices of incoming weights and source indices.
// sources[i] indexes the unit in the previous layer that weights[i] scales.
type Unit struct {
	output  float64
	weights []float64
	sources []int
}

// NewUnit creates a unit with room for capacity incoming connections.
func NewUnit(capacity int) Unit {
	created.Add(1)
	return Unit{
		weights: make([]float64, 0, capacity),
		sources: make([]int, 0, capacity),
	}
}

// AddConnection appends an incoming edge from the unit at index source of
// the previous layer. Connections keep their insertion order.
func (u *Unit) AddConnection(source int, weight float64) {
	u.sources = append(u.sources, source)
	u.weights = append(u.weights, weight)
}

// Combine sets the output to sigmoid(sum(weights[i] * prev[sources[i]].output)).
// prev must already hold its outputs.
func (u *Unit) Combine(prev *Layer) {
	var sum float64
	for i, src := range u.sources {
		sum += u.weights[i] * prev.units[src].output
	}
	u.output = transfer.Activate(sum)
}

// Output returns the unit's current output.
func (u *Unit) Output() float64 {
	return u.output
}

// SetOutput overwrites the unit's output.
func (u *Unit) SetOutput(v float64) {
	u.output = v
}

// NumConnections returns the number of incoming connections.
func (u *Unit) NumConnections() int {
	return len(u.weights)
}

// Weight returns the weight of incoming connection i.
func (u *Unit) Weight(i int) float64 {
	return u.weights[i]
}

// SetWeight overwrites the weight of incoming connection i.
func (u *Unit) SetWeight(i int, v float64) {
	u.weights[i] = v
}

// Source returns the previous-layer index of incoming connection i.
func (u *Unit) Source(i int) int {
	return u.sources[i]
}

// Weights returns a copy of the incoming weights in connection order.
func (u *Unit) Weights() []float64 {
	out := make([]float64, len(u.weights))
	copy(out, u.weights)
	return out
}

// Sources returns a copy of the source indices in connection order.
func (u *Unit) Sources() []int {
	out := make([]int, len(u.sources))
	copy(out, u.sources)
	return out
}
