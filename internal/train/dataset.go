// Package train walks a dataset of daily closing prices in row blocks and
// trains a network on it one block at a time.
package train

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/FlavioCFOliveira/stocknet/internal/norm"
)

// Dataset is a table of numeric rows, one trading day per row.
type Dataset struct {
	Rows *mat.Dense
}

// LoadCSV reads a dataset from a CSV file.
func LoadCSV(filename string) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open dataset")
	}
	defer file.Close()

	d, err := ReadCSV(file)
	if err != nil {
		return nil, errors.Wrap(err, filename)
	}
	return d, nil
}

// ReadCSV parses comma separated numeric rows. A first row that does not
// parse is taken as a header and skipped. Blank lines and trailing empty
// fields are ignored; every remaining row must have the same width.
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		data    []float64
		width   int
		numRows int
		first   = true
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv")
		}
		line, _ := reader.FieldPos(0)

		record = trimTrailingEmpty(record)
		if len(record) == 0 {
			continue
		}

		row, err := parseRow(record, line)
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, err
		}
		first = false

		if numRows == 0 {
			width = len(row)
		} else if len(row) != width {
			return nil, errors.Wrapf(ErrRaggedRow, "line %d has %d values, want %d", line, len(row), width)
		}
		data = append(data, row...)
		numRows++
	}

	if numRows == 0 {
		return nil, errors.Wrap(ErrEmptyDataset, "csv has no data rows")
	}
	return &Dataset{Rows: mat.NewDense(numRows, width, data)}, nil
}

func trimTrailingEmpty(record []string) []string {
	n := len(record)
	for n > 0 && strings.TrimSpace(record[n-1]) == "" {
		n--
	}
	return record[:n]
}

func parseRow(record []string, line int) ([]float64, error) {
	row := make([]float64, len(record))
	for j, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse value at line %d, column %d", line, j+1)
		}
		row[j] = v
	}
	return row, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	r, _ := d.Rows.Dims()
	return r
}

// Width returns the number of values per row.
func (d *Dataset) Width() int {
	_, c := d.Rows.Dims()
	return c
}

// Range fits a normalization range over every value in the dataset.
func (d *Dataset) Range() (norm.Params, error) {
	return norm.Fit(d.Rows.RawMatrix().Data)
}

// Window describes the rows of one training block: InputRows consecutive
// rows feed the network and the TargetRows after them are its targets.
type Window struct {
	InputRows  int
	TargetRows int
}

// DefaultWindow is four trading days in, the fifth day out.
func DefaultWindow() Window {
	return Window{InputRows: 4, TargetRows: 1}
}

// Validate reports ErrWindow unless both row counts are positive.
func (w Window) Validate() error {
	if w.InputRows <= 0 || w.TargetRows <= 0 {
		return errors.Wrapf(ErrWindow, "rows must be positive, got %d in and %d out", w.InputRows, w.TargetRows)
	}
	return nil
}

// Span returns the number of rows a block consumes.
func (w Window) Span() int {
	return w.InputRows + w.TargetRows
}

// Sizes returns the input and target vector lengths of a block over rows
// of the given width.
func (w Window) Sizes(width int) (inputs, targets int) {
	return w.InputRows * width, w.TargetRows * width
}

// Block is one training sample: rows flattened row-major.
type Block struct {
	Inputs  []float64
	Targets []float64
}

// Blocks slices the dataset into consecutive, non-overlapping blocks.
// Rows left over after the last complete block are dropped.
func (d *Dataset) Blocks(w Window) ([]Block, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	span := w.Span()
	n := d.Len() / span
	if n == 0 {
		return nil, errors.Wrapf(ErrEmptyDataset, "%d rows cannot fill a block of %d", d.Len(), span)
	}

	blocks := make([]Block, n)
	for b := range blocks {
		start := b * span
		blocks[b] = Block{
			Inputs:  d.flatten(start, start+w.InputRows),
			Targets: d.flatten(start+w.InputRows, start+span),
		}
	}
	return blocks, nil
}

// Tail returns the last rows of the dataset flattened row-major, the input
// for a forecast of the rows that follow.
func (d *Dataset) Tail(rows int) ([]float64, error) {
	if rows <= 0 || rows > d.Len() {
		return nil, errors.Wrapf(ErrWindow, "cannot take last %d of %d rows", rows, d.Len())
	}
	return d.flatten(d.Len()-rows, d.Len()), nil
}

func (d *Dataset) flatten(from, to int) []float64 {
	width := d.Width()
	out := make([]float64, 0, (to-from)*width)
	for i := from; i < to; i++ {
		out = append(out, mat.Row(nil, i, d.Rows)...)
	}
	return out
}
