package train

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/FlavioCFOliveira/stocknet/internal/net"
)

// PercentError returns |predicted-actual| / |actual| * 100. It is +Inf when
// actual is zero and predicted is not.
func PercentError(actual, predicted float64) float64 {
	return math.Abs(predicted-actual) / math.Abs(actual) * 100
}

// PercentErrors applies PercentError element-wise.
func PercentErrors(actual, predicted []float64) ([]float64, error) {
	if err := checkPair(actual, predicted); err != nil {
		return nil, err
	}
	out := make([]float64, len(actual))
	for i := range actual {
		out[i] = PercentError(actual[i], predicted[i])
	}
	return out, nil
}

// MAPE returns the mean absolute percentage error.
func MAPE(actual, predicted []float64) (float64, error) {
	pe, err := PercentErrors(actual, predicted)
	if err != nil {
		return 0, err
	}
	return stat.Mean(pe, nil), nil
}

// RMSE returns the root mean squared error.
func RMSE(actual, predicted []float64) (float64, error) {
	if err := checkPair(actual, predicted); err != nil {
		return 0, err
	}
	return floats.Distance(actual, predicted, 2) / math.Sqrt(float64(len(actual))), nil
}

func checkPair(actual, predicted []float64) error {
	if len(actual) != len(predicted) {
		return errors.Wrapf(net.ErrShapeMismatch, "%d actual values, %d predicted", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return errors.Wrap(ErrEmptyDataset, "nothing to score")
	}
	return nil
}
