// Package stocknet is the public API of the stock price network: a three
// layer sigmoid network trained one sample at a time, plus the CSV driver
// that walks a price table in blocks of trading days.
package stocknet

import (
	"io"

	"github.com/FlavioCFOliveira/stocknet/internal/net"
	"github.com/FlavioCFOliveira/stocknet/internal/norm"
	"github.com/FlavioCFOliveira/stocknet/internal/random"
	"github.com/FlavioCFOliveira/stocknet/internal/train"
)

// Re-export common types for easier access
type (
	Network         = net.Network
	Config          = net.Config
	HiddenErrorRule = net.HiddenErrorRule
	Source          = random.Source
	Range           = norm.Params

	Dataset  = train.Dataset
	Window   = train.Window
	Block    = train.Block
	Trainer  = train.Trainer
	Options  = train.Options
	Result   = train.Result
	Callback = train.Callback
	Session  = train.Session
)

// Hidden error rules
const (
	ConnectionWeight = net.ConnectionWeight
	LegacyDiagonal   = net.LegacyDiagonal
)

// Errors
var (
	ErrConfiguration   = net.ErrConfiguration
	ErrShapeMismatch   = net.ErrShapeMismatch
	ErrSequence        = net.ErrSequence
	ErrDegenerateRange = norm.ErrDegenerateRange
	ErrEmptyDataset    = train.ErrEmptyDataset
	ErrRaggedRow       = train.ErrRaggedRow
	ErrWindow          = train.ErrWindow
)

// Network creation
func DefaultConfig() Config {
	return net.DefaultConfig()
}

func New(cfg Config, src *Source) (*Network, error) {
	return net.New(cfg, src)
}

// Random sources
func NewSource(seed int64) *Source {
	return random.New(seed)
}

func DefaultSource() *Source {
	return random.Default()
}

// Normalization
func Normalize(values []float64, max, min float64) ([]float64, error) {
	return norm.Normalize(values, max, min)
}

func Denormalize(values []float64, max, min float64) ([]float64, error) {
	return norm.Denormalize(values, max, min)
}

func FitRange(values ...[]float64) (Range, error) {
	return norm.Fit(values...)
}

// Data
func LoadCSV(filename string) (*Dataset, error) {
	return train.LoadCSV(filename)
}

func ReadCSV(r io.Reader) (*Dataset, error) {
	return train.ReadCSV(r)
}

func DefaultWindow() Window {
	return train.DefaultWindow()
}

// Training
func DefaultOptions() Options {
	return train.DefaultOptions()
}

func NewTrainer(n *Network, opts Options, callbacks ...Callback) *Trainer {
	return train.NewTrainer(n, opts, callbacks...)
}

// Callbacks
func Logger(interval int) train.Logger {
	return train.Logger{Interval: interval}
}

func CSVLogger(filename string, append bool) *train.CSVLogger {
	return train.NewCSVLogger(filename, append)
}

func EarlyStopping(patience int, threshold float64) *train.EarlyStopping {
	return train.NewEarlyStopping(patience, threshold)
}

// Metrics
func PercentError(actual, predicted float64) float64 {
	return train.PercentError(actual, predicted)
}

func MAPE(actual, predicted []float64) (float64, error) {
	return train.MAPE(actual, predicted)
}

func RMSE(actual, predicted []float64) (float64, error) {
	return train.RMSE(actual, predicted)
}
