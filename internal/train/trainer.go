package train

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/FlavioCFOliveira/stocknet/internal/net"
	"github.com/FlavioCFOliveira/stocknet/internal/norm"
)

// Options controls a training run.
type Options struct {
	Window Window

	// Epochs is the number of passes over the blocks; values below one
	// mean a single pass.
	Epochs int

	// Range normalizes inputs and targets. Nil fits it over the blocks.
	Range *norm.Params
}

// DefaultOptions returns a single pass over four-in, one-out blocks with
// the range fitted to the data.
func DefaultOptions() Options {
	return Options{Window: DefaultWindow(), Epochs: 1}
}

// Result summarizes a finished run.
type Result struct {
	RunID uuid.UUID

	// Steps is the number of training steps taken.
	Steps int

	// Loss holds the mean step loss of every completed epoch.
	Loss []float64

	// Predictions are the denormalized outputs of the last step's forward
	// pass, made before its weight update.
	Predictions []float64

	Range norm.Params
}

// Trainer feeds blocks to a network one step at a time.
type Trainer struct {
	Network   *net.Network
	Options   Options
	Callbacks []Callback

	fitted *norm.Params
}

// NewTrainer creates a Trainer.
func NewTrainer(n *net.Network, opts Options, callbacks ...Callback) *Trainer {
	return &Trainer{Network: n, Options: opts, Callbacks: callbacks}
}

// Run trains on every block in order, once per epoch. Any error aborts the
// run; the network keeps the updates made before it.
func (t *Trainer) Run(blocks []Block) (*Result, error) {
	if len(blocks) == 0 {
		return nil, errors.Wrap(ErrEmptyDataset, "no blocks to train on")
	}
	cfg := t.Network.Config()
	for i, b := range blocks {
		if len(b.Inputs) != cfg.NumInputs || len(b.Targets) != cfg.NumOutputs {
			return nil, errors.Wrapf(ErrWindow, "block %d has %d inputs and %d targets, network takes %d and %d",
				i, len(b.Inputs), len(b.Targets), cfg.NumInputs, cfg.NumOutputs)
		}
	}

	rng, err := t.rangeFor(blocks)
	if err != nil {
		return nil, err
	}
	scaled, err := normalizeBlocks(blocks, rng)
	if err != nil {
		return nil, err
	}
	t.fitted = &rng

	s := &Session{
		ID:      uuid.New(),
		Network: t.Network,
		Range:   rng,
		Blocks:  len(blocks),
		Epochs:  max(t.Options.Epochs, 1),
	}
	res := &Result{RunID: s.ID, Range: rng}

	for _, cb := range t.Callbacks {
		cb.OnTrainBegin(s)
	}
	defer func() {
		for _, cb := range t.Callbacks {
			cb.OnTrainEnd(s)
		}
	}()

	for epoch := 0; epoch < s.Epochs; epoch++ {
		for _, cb := range t.Callbacks {
			cb.OnEpochBegin(epoch, s)
		}

		var total float64
		for i, b := range scaled {
			for _, cb := range t.Callbacks {
				cb.OnBlockBegin(i, s)
			}
			l, err := t.Network.Train(b.Inputs, b.Targets)
			if err != nil {
				return nil, errors.Wrapf(err, "epoch %d, block %d", epoch, i)
			}
			total += l
			res.Steps++
			for _, cb := range t.Callbacks {
				cb.OnBlockEnd(i, l, s)
			}
		}

		loss := total / float64(len(scaled))
		res.Loss = append(res.Loss, loss)
		for _, cb := range t.Callbacks {
			cb.OnEpochEnd(epoch, loss, s)
		}
		if t.stopRequested() {
			break
		}
	}

	res.Predictions, err = rng.Denormalize(t.Network.Outputs())
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Predict runs a forward pass on raw inputs and returns denormalized
// outputs. It uses Options.Range, or the range fitted by the last Run.
func (t *Trainer) Predict(inputs []float64) ([]float64, error) {
	rng := t.Options.Range
	if rng == nil {
		rng = t.fitted
	}
	if rng == nil {
		return nil, errors.Wrap(norm.ErrNoValues, "Predict needs Options.Range or a completed Run")
	}

	x, err := rng.Normalize(inputs)
	if err != nil {
		return nil, err
	}
	if err := t.Network.SetInputs(x); err != nil {
		return nil, err
	}
	t.Network.Forward()
	return rng.Denormalize(t.Network.Outputs())
}

func (t *Trainer) rangeFor(blocks []Block) (norm.Params, error) {
	if t.Options.Range != nil {
		rng := *t.Options.Range
		return rng, rng.Validate()
	}

	values := make([][]float64, 0, 2*len(blocks))
	for _, b := range blocks {
		values = append(values, b.Inputs, b.Targets)
	}
	rng, err := norm.Fit(values...)
	if err != nil {
		return norm.Params{}, err
	}
	return rng, rng.Validate()
}

func normalizeBlocks(blocks []Block, rng norm.Params) ([]Block, error) {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		in, err := rng.Normalize(b.Inputs)
		if err != nil {
			return nil, err
		}
		tg, err := rng.Normalize(b.Targets)
		if err != nil {
			return nil, err
		}
		out[i] = Block{Inputs: in, Targets: tg}
	}
	return out, nil
}

func (t *Trainer) stopRequested() bool {
	for _, cb := range t.Callbacks {
		if s, ok := cb.(Stopper); ok && s.ShouldStop() {
			return true
		}
	}
	return false
}
