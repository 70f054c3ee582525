package train

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarlyStopping(t *testing.T) {
	var out bytes.Buffer
	es := NewEarlyStopping(2, 0.01)
	es.Out = &out
	s := &Session{}

	es.OnTrainBegin(s)
	for epoch, loss := range []float64{0.5, 0.4, 0.395, 0.399} {
		es.OnEpochEnd(epoch, loss, s)
		assert.Equal(t, epoch == 3, es.ShouldStop(), "epoch %d", epoch)
	}
	assert.Contains(t, out.String(), "Early stopping at epoch 3")

	es.OnTrainBegin(s)
	assert.False(t, es.ShouldStop())
}

func TestLogger(t *testing.T) {
	var out bytes.Buffer
	opts := DefaultOptions()
	opts.Epochs = 3
	logger := Logger{Interval: 2, BlockInterval: 3, Out: &out}

	res, err := newTestTrainer(t, 1, opts, logger).Run(testBlocks(t))
	require.NoError(t, err)

	log := out.String()
	assert.Contains(t, log, "Run "+res.RunID.String())
	assert.Contains(t, log, "Epoch 0: loss =")
	assert.NotContains(t, log, "Epoch 1:")
	assert.Contains(t, log, "Epoch 2: loss =")
	assert.Contains(t, log, "block 3: loss =")
	assert.Contains(t, log, "block 6: loss =")
	assert.NotContains(t, log, "block 2:")
}

func readLog(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train_log.csv")
	opts := DefaultOptions()
	opts.Epochs = 2

	logger := NewCSVLogger(path, false)
	res, err := newTestTrainer(t, 1, opts, logger).Run(testBlocks(t))
	require.NoError(t, err)
	require.NoError(t, logger.Err())

	records := readLog(t, path)
	require.Len(t, records, 3) // header + 2 epochs
	assert.Equal(t, []string{"run_id", "epoch", "loss", "time_seconds"}, records[0])
	assert.Equal(t, res.RunID.String(), records[1][0])
	assert.Equal(t, "0", records[1][1])
	assert.Equal(t, "1", records[2][1])

	_, err = uuid.Parse(records[2][0])
	assert.NoError(t, err)
}

func TestCSVLoggerAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train_log.csv")
	opts := DefaultOptions()

	first, err := newTestTrainer(t, 1, opts, NewCSVLogger(path, true)).Run(testBlocks(t))
	require.NoError(t, err)
	second, err := newTestTrainer(t, 2, opts, NewCSVLogger(path, true)).Run(testBlocks(t))
	require.NoError(t, err)

	records := readLog(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, first.RunID.String(), records[1][0])
	assert.Equal(t, second.RunID.String(), records[2][0])
}

func TestCSVLoggerOpenError(t *testing.T) {
	logger := NewCSVLogger(filepath.Join(t.TempDir(), "missing", "log.csv"), false)
	s := &Session{ID: uuid.New()}

	logger.OnTrainBegin(s)
	logger.OnEpochEnd(0, 0.5, s)
	logger.OnTrainEnd(s)
	assert.Error(t, logger.Err())
}
