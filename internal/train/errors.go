package train

import "github.com/pkg/errors"

var (
	// ErrEmptyDataset is returned when there is nothing to train on.
	ErrEmptyDataset = errors.New("train: empty dataset")

	// ErrRaggedRow is returned when a CSV row's width differs from the first row.
	ErrRaggedRow = errors.New("train: ragged row")

	// ErrWindow is returned when the block geometry disagrees with the network.
	ErrWindow = errors.New("train: window does not fit network")
)
