package train

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/google/uuid"

	"github.com/FlavioCFOliveira/stocknet/internal/net"
	"github.com/FlavioCFOliveira/stocknet/internal/norm"
)

// Session describes the run a callback is observing.
type Session struct {
	ID      uuid.UUID
	Network *net.Network
	Range   norm.Params
	Blocks  int
	Epochs  int
}

// Callback defines the interface for training callbacks.
type Callback interface {
	OnTrainBegin(s *Session)
	OnTrainEnd(s *Session)
	OnEpochBegin(epoch int, s *Session)
	OnEpochEnd(epoch int, loss float64, s *Session)
	OnBlockBegin(block int, s *Session)
	OnBlockEnd(block int, loss float64, s *Session)
}

// Stopper is implemented by callbacks that can end training early. The
// trainer asks after every epoch.
type Stopper interface {
	ShouldStop() bool
}

// BaseCallback provides default empty implementations for Callback.
type BaseCallback struct{}

func (c BaseCallback) OnTrainBegin(s *Session)                        {}
func (c BaseCallback) OnTrainEnd(s *Session)                          {}
func (c BaseCallback) OnEpochBegin(epoch int, s *Session)             {}
func (c BaseCallback) OnEpochEnd(epoch int, loss float64, s *Session) {}
func (c BaseCallback) OnBlockBegin(block int, s *Session)             {}
func (c BaseCallback) OnBlockEnd(block int, loss float64, s *Session) {}

// EarlyStopping stops training when the epoch loss has stopped improving
// by more than Threshold for Patience epochs.
type EarlyStopping struct {
	BaseCallback
	Patience  int
	Threshold float64

	// Out receives a line when training is stopped. Nil is silent.
	Out io.Writer

	bestLoss     float64
	numBadEpochs int
	Stopped      bool
}

func NewEarlyStopping(patience int, threshold float64) *EarlyStopping {
	return &EarlyStopping{
		Patience:  patience,
		Threshold: threshold,
		bestLoss:  math.MaxFloat64,
	}
}

func (c *EarlyStopping) OnTrainBegin(s *Session) {
	c.bestLoss = math.MaxFloat64
	c.numBadEpochs = 0
	c.Stopped = false
}

func (c *EarlyStopping) OnEpochEnd(epoch int, loss float64, s *Session) {
	if loss < c.bestLoss-c.Threshold {
		c.bestLoss = loss
		c.numBadEpochs = 0
	} else {
		c.numBadEpochs++
	}

	if c.numBadEpochs >= c.Patience {
		if c.Out != nil && !c.Stopped {
			fmt.Fprintf(c.Out, "Early stopping at epoch %d: loss %.6f did not improve for %d epochs\n", epoch, loss, c.Patience)
		}
		c.Stopped = true
	}
}

// ShouldStop reports whether patience has run out.
func (c *EarlyStopping) ShouldStop() bool {
	return c.Stopped
}

// Logger writes training progress to Out.
type Logger struct {
	BaseCallback

	// Interval logs every Interval-th epoch; zero disables epoch lines.
	Interval int

	// BlockInterval logs every BlockInterval-th block; zero disables them.
	BlockInterval int

	// Out defaults to standard output.
	Out io.Writer
}

func (c Logger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c Logger) OnTrainBegin(s *Session) {
	fmt.Fprintf(c.out(), "Run %s: %d blocks x %d epochs, range [%g, %g]\n",
		s.ID, s.Blocks, s.Epochs, s.Range.Min, s.Range.Max)
}

func (c Logger) OnBlockEnd(block int, loss float64, s *Session) {
	if c.BlockInterval > 0 && (block+1)%c.BlockInterval == 0 {
		fmt.Fprintf(c.out(), "  block %d: loss = %.6f\n", block+1, loss)
	}
}

func (c Logger) OnEpochEnd(epoch int, loss float64, s *Session) {
	if c.Interval > 0 && epoch%c.Interval == 0 {
		fmt.Fprintf(c.out(), "Epoch %d: loss = %.6f\n", epoch, loss)
	}
}
