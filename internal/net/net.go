// Package net provides the three-layer backpropagation network.
//
// A training step is four calls in a fixed order:
//
//	n.SetInputs(x)
//	n.Forward()
//	n.ComputeError(y)
//	n.UpdateWeights()
//
// Train runs all four and returns the step's loss.
package net

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/stocknet/internal/activations"
	"github.com/FlavioCFOliveira/stocknet/internal/layer"
	"github.com/FlavioCFOliveira/stocknet/internal/loss"
	"github.com/FlavioCFOliveira/stocknet/internal/opt"
	"github.com/FlavioCFOliveira/stocknet/internal/random"
)

// stage tracks how far the current step has progressed.
type stage int

const (
	stageIdle stage = iota
	stageForwarded
	stageErrors
)

// Network is a fully connected input, hidden and output layer stack with
// sigmoid units. It is built once and mutated in place by every step.
// A Network is not safe for concurrent use.
type Network struct {
	cfg Config

	input  *layer.Layer
	hidden *layer.Layer
	output *layer.Layer

	// Weights drawn at construction, destination-major.
	hiddenWeights []float64
	outputWeights []float64

	targets      []float64
	outputErrors []float64
	hiddenErrors []float64

	act  activations.Sigmoid
	loss loss.Loss
	opt  opt.Optimizer

	// Gradient buffers laid out like layer.Params.
	hiddenGrads []float64
	outputGrads []float64
	srcBuf      []float64

	stage stage
}

// New validates cfg and builds a network whose weights are drawn from src.
// A nil src uses random.Default().
func New(cfg Config, src *random.Source) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = random.Default()
	}

	in, hid, out := cfg.NumInputs, cfg.NumHidden, cfg.NumOutputs
	n := &Network{
		cfg:           cfg,
		input:         layer.New(in),
		hidden:        layer.New(hid),
		output:        layer.New(out),
		hiddenWeights: make([]float64, hid*in),
		outputWeights: make([]float64, out*hid),
		targets:       make([]float64, out),
		outputErrors:  make([]float64, out),
		hiddenErrors:  make([]float64, hid),
		loss:          loss.MSE{},
		opt:           opt.SGD{LearningRate: cfg.LearningRate},
		hiddenGrads:   make([]float64, hid*in),
		outputGrads:   make([]float64, out*hid),
		srcBuf:        make([]float64, max(in, hid)),
	}

	src.Fill(n.hiddenWeights, cfg.WeightMax, cfg.WeightMin)
	src.Fill(n.outputWeights, cfg.WeightMax, cfg.WeightMin)

	n.hidden.Connect(n.input, n.hiddenWeights)
	n.output.Connect(n.hidden, n.outputWeights)
	return n, nil
}

// SetInputs copies values into the input layer and starts a new step.
func (n *Network) SetInputs(values []float64) error {
	if len(values) != n.cfg.NumInputs {
		return errors.Wrapf(ErrShapeMismatch, "inputs: want %d values, got %d", n.cfg.NumInputs, len(values))
	}
	n.input.SetOutputs(values)
	n.stage = stageIdle
	return nil
}

// Forward recomputes the hidden layer from the inputs, then the output
// layer from the hidden layer.
func (n *Network) Forward() {
	n.hidden.Combine(n.input)
	n.output.Combine(n.hidden)
	n.stage = stageForwarded
}

// SetActuals stores the target vector used by ComputeError.
func (n *Network) SetActuals(values []float64) error {
	if len(values) != n.cfg.NumOutputs {
		return errors.Wrapf(ErrShapeMismatch, "actuals: want %d values, got %d", n.cfg.NumOutputs, len(values))
	}
	copy(n.targets, values)
	return nil
}

// ComputeError stores actuals as the targets and derives the error terms
// of the output and hidden units from the last forward pass.
func (n *Network) ComputeError(actuals []float64) error {
	if n.stage < stageForwarded {
		return errors.Wrap(ErrSequence, "ComputeError called before Forward")
	}
	if err := n.SetActuals(actuals); err != nil {
		return err
	}

	for j := range n.outputErrors {
		o := n.output.Unit(j).Output()
		n.outputErrors[j] = n.act.OutputDerivative(o) * (n.targets[j] - o)
	}

	for i := range n.hiddenErrors {
		var sum float64
		for j, e := range n.outputErrors {
			sum += e * n.backWeight(j, i)
		}
		n.hiddenErrors[i] = n.act.OutputDerivative(n.hidden.Unit(i).Output()) * sum
	}

	n.stage = stageErrors
	return nil
}

// backWeight is the weight carrying output unit j's error to hidden unit i.
// Connect wires hidden unit i at connection index i.
func (n *Network) backWeight(j, i int) float64 {
	u := n.output.Unit(j)
	if n.cfg.HiddenError == LegacyDiagonal {
		return u.Weight(j)
	}
	return u.Weight(i)
}

// UpdateWeights applies w += lr * err * source to every connection. All
// gradients come from the state left by ComputeError.
func (n *Network) UpdateWeights() error {
	if n.stage != stageErrors {
		return errors.Wrap(ErrSequence, "UpdateWeights called before ComputeError")
	}

	n.gradients(n.outputGrads, n.output, n.hidden, n.outputErrors)
	n.gradients(n.hiddenGrads, n.hidden, n.input, n.hiddenErrors)

	n.step(n.output, n.outputGrads)
	n.step(n.hidden, n.hiddenGrads)

	n.stage = stageIdle
	return nil
}

// gradients fills dst with the delta rule gradients of every connection
// into l, unit by unit in connection order.
func (n *Network) gradients(dst []float64, l, prev *layer.Layer, errs []float64) {
	off := 0
	for d := 0; d < l.Len(); d++ {
		u := l.Unit(d)
		k := u.NumConnections()
		src := n.srcBuf[:k]
		for c := range src {
			src[c] = prev.Unit(u.Source(c)).Output()
		}
		opt.DeltaGradients(dst[off:off+k], errs[d], src)
		off += k
	}
}

func (n *Network) step(l *layer.Layer, grads []float64) {
	params := l.Params()
	n.opt.StepInPlace(params, grads)
	l.SetParams(params)
}

// Train runs one full step on a single sample and returns the mean squared
// error of the prediction made before the update. Shapes are checked before
// anything is modified.
func (n *Network) Train(inputs, actuals []float64) (float64, error) {
	if len(actuals) != n.cfg.NumOutputs {
		return 0, errors.Wrapf(ErrShapeMismatch, "actuals: want %d values, got %d", n.cfg.NumOutputs, len(actuals))
	}
	if err := n.SetInputs(inputs); err != nil {
		return 0, err
	}
	n.Forward()
	if err := n.ComputeError(actuals); err != nil {
		return 0, err
	}
	l := n.loss.Forward(n.output.Outputs(), n.targets)
	if err := n.UpdateWeights(); err != nil {
		return 0, err
	}
	return l, nil
}

// Config returns the configuration the network was built with.
func (n *Network) Config() Config {
	return n.cfg
}

// InputLayer returns the input layer.
func (n *Network) InputLayer() *layer.Layer { return n.input }

// HiddenLayer returns the hidden layer.
func (n *Network) HiddenLayer() *layer.Layer { return n.hidden }

// OutputLayer returns the output layer.
func (n *Network) OutputLayer() *layer.Layer { return n.output }

// Outputs returns a copy of the output layer values.
func (n *Network) Outputs() []float64 {
	return n.output.Outputs()
}

// OutputErrors returns a copy of the output error terms.
func (n *Network) OutputErrors() []float64 {
	return clone(n.outputErrors)
}

// HiddenErrors returns a copy of the hidden error terms.
func (n *Network) HiddenErrors() []float64 {
	return clone(n.hiddenErrors)
}

// Targets returns a copy of the last actuals.
func (n *Network) Targets() []float64 {
	return clone(n.targets)
}

// InitialWeights returns copies of the weights drawn at construction, in
// the order they were drawn.
func (n *Network) InitialWeights() (hidden, output []float64) {
	return clone(n.hiddenWeights), clone(n.outputWeights)
}

// HiddenMatrix returns the current input to hidden weights as an H×I
// matrix; element (d, s) is the weight on hidden unit d from input s.
func (n *Network) HiddenMatrix() *mat.Dense {
	return mat.NewDense(n.cfg.NumHidden, n.cfg.NumInputs, n.hidden.Params())
}

// OutputMatrix returns the current hidden to output weights as an O×H matrix.
func (n *Network) OutputMatrix() *mat.Dense {
	return mat.NewDense(n.cfg.NumOutputs, n.cfg.NumHidden, n.output.Params())
}

func clone(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
