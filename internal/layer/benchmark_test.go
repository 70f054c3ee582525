// Package layer provides benchmarks for unit and layer computation.
package layer

import (
	"math/rand"
	"testing"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64() - 0.5
	}
}

// BenchmarkLayerCombine benchmarks a 40 -> 17 combine, the default hidden layer.
func BenchmarkLayerCombine(b *testing.B) {
	in := New(40)
	outputs := make([]float64, 40)
	fillRandom(outputs)
	in.SetOutputs(outputs)

	hidden := New(17)
	weights := make([]float64, 17*40)
	fillRandom(weights)
	hidden.Connect(in, weights)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hidden.Combine(in)
	}
}

// BenchmarkLayerCombineLarge benchmarks a 784 -> 256 combine.
func BenchmarkLayerCombineLarge(b *testing.B) {
	in := New(784)
	outputs := make([]float64, 784)
	fillRandom(outputs)
	in.SetOutputs(outputs)

	out := New(256)
	weights := make([]float64, 256*784)
	fillRandom(weights)
	out.Connect(in, weights)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out.Combine(in)
	}
}
