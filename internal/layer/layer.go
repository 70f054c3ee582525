// Package layer provides the units and layers a network is built from.
package layer

import "fmt"

// Layer is an ordered collection of units addressed by index.
// Connections between layers refer to units by their index here.
type Layer struct {
	units []Unit
}

// New creates a layer of n unconnected units.
func New(n int) *Layer {
	units := make([]Unit, n)
	for i := range units {
		units[i] = NewUnit(0)
	}
	return &Layer{units: units}
}

// Len returns the number of units in the layer.
func (l *Layer) Len() int {
	return len(l.units)
}

// Unit returns the unit at index i.
func (l *Layer) Unit(i int) *Unit {
	return &l.units[i]
}

// Connect fully connects prev to l. Weights are consumed destination-major:
// the edge from prev unit s to unit d takes weights[d*prev.Len()+s], and
// each unit receives its connections in ascending source order.
func (l *Layer) Connect(prev *Layer, weights []float64) {
	in := prev.Len()
	if len(weights) != len(l.units)*in {
		panic(fmt.Sprintf("layer: Connect needs %d weights, got %d", len(l.units)*in, len(weights)))
	}

	k := 0
	for d := range l.units {
		u := &l.units[d]
		u.weights = make([]float64, 0, in)
		u.sources = make([]int, 0, in)
		for s := 0; s < in; s++ {
			u.AddConnection(s, weights[k])
			k++
		}
	}
}

// Combine recomputes every unit's output, in layer order, from prev.
func (l *Layer) Combine(prev *Layer) {
	for i := range l.units {
		l.units[i].Combine(prev)
	}
}

// Outputs returns a copy of the unit outputs in layer order.
func (l *Layer) Outputs() []float64 {
	out := make([]float64, len(l.units))
	for i := range l.units {
		out[i] = l.units[i].output
	}
	return out
}

// SetOutputs copies values into the unit outputs.
// It panics if len(values) != l.Len().
func (l *Layer) SetOutputs(values []float64) {
	if len(values) != len(l.units) {
		panic(fmt.Sprintf("layer: SetOutputs needs %d values, got %d", len(l.units), len(values)))
	}
	for i, v := range values {
		l.units[i].output = v
	}
}

// NumParams returns the total number of incoming weights in the layer.
func (l *Layer) NumParams() int {
	n := 0
	for i := range l.units {
		n += len(l.units[i].weights)
	}
	return n
}

// Params returns all incoming weights flattened unit by unit, in
// connection order.
func (l *Layer) Params() []float64 {
	params := make([]float64, 0, l.NumParams())
	for i := range l.units {
		params = append(params, l.units[i].weights...)
	}
	return params
}

// SetParams overwrites the incoming weights from a slice laid out as Params.
func (l *Layer) SetParams(params []float64) {
	if len(params) != l.NumParams() {
		panic(fmt.Sprintf("layer: SetParams needs %d values, got %d", l.NumParams(), len(params)))
	}
	k := 0
	for i := range l.units {
		k += copy(l.units[i].weights, params[k:])
	}
}
