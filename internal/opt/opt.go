// Package opt provides the weight update rule.
package opt

// Optimizer updates parameters based on gradients.
type Optimizer interface {
	// Step computes updated parameters: params - lr * gradients
	// Returns a new slice with updated values
	Step(params, gradients []float64) []float64

	// StepInPlace updates params in-place: params = params - lr * gradients
	StepInPlace(params, gradients []float64)
}

// SGD (Stochastic Gradient Descent) optimizer.
type SGD struct {
	LearningRate float64
}

// Step computes updated parameters: params - lr * gradients
func (s SGD) Step(params, gradients []float64) []float64 {
	result := make([]float64, len(params))
	for i := range params {
		result[i] = params[i] - s.LearningRate*gradients[i]
	}
	return result
}

// StepInPlace updates params in-place: params = params - lr * gradients
func (s SGD) StepInPlace(params, gradients []float64) {
	for i := range params {
		params[i] -= s.LearningRate * gradients[i]
	}
}

// DeltaGradients fills dst with the gradients of the delta rule for one
// unit: dst[i] = -errTerm * sources[i]. Stepping with them moves each
// weight by +lr * errTerm * sources[i].
func DeltaGradients(dst []float64, errTerm float64, sources []float64) {
	for i, x := range sources {
		dst[i] = -errTerm * x
	}
}
