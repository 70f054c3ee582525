// stocknet trains a three-layer network on a CSV of daily closing prices
// and reports how far its prediction for the last block lands from the
// real prices.
//
// Usage:
//
//	stocknet -data=prices.csv -epochs=1 -actual=70.07,21.21,39.29,...
//
// Each CSV row is one trading day. Blocks of -input-rows days are followed
// by -target-rows days to predict.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/FlavioCFOliveira/stocknet/internal/layer"
	"github.com/FlavioCFOliveira/stocknet/internal/net"
	"github.com/FlavioCFOliveira/stocknet/internal/norm"
	"github.com/FlavioCFOliveira/stocknet/internal/random"
	"github.com/FlavioCFOliveira/stocknet/internal/train"
)

var (
	dataFile     = flag.String("data", "", "CSV file of daily closing prices (required)")
	numInputs    = flag.Int("inputs", 40, "Input units")
	numHidden    = flag.Int("hidden", 17, "Hidden units")
	numOutputs   = flag.Int("outputs", 10, "Output units")
	weightMin    = flag.Float64("wmin", -0.5, "Lower bound of initial weights")
	weightMax    = flag.Float64("wmax", 0.5, "Upper bound of initial weights")
	learningRate = flag.Float64("lr", 0.7, "Learning rate")
	inputRows    = flag.Int("input-rows", 4, "Rows per block fed to the network")
	targetRows   = flag.Int("target-rows", 1, "Rows per block to predict")
	epochs       = flag.Int("epochs", 1, "Passes over the dataset")
	seed         = flag.Int64("seed", random.DefaultSeed, "Weight initialisation seed")
	dataMax      = flag.Float64("max", 348.48, "Normalization maximum; set -max equal to -min to fit it from the data")
	dataMin      = flag.Float64("min", 8.92, "Normalization minimum")
	legacy       = flag.Bool("legacy-backprop", false, "Back-propagate hidden errors with the legacy diagonal weight rule")
	logFile      = flag.String("log", "", "Write per-epoch loss to this CSV file")
	logInterval  = flag.Int("log-interval", 1, "Log every N epochs (0 disables)")
	blockLog     = flag.Int("block-interval", 0, "Log every N blocks (0 disables)")
	patience     = flag.Int("patience", 0, "Stop after N epochs without improvement (0 disables)")
	actual       = flag.String("actual", "", "Comma separated real prices to score the final prediction against")
	forecast     = flag.Bool("forecast", false, "Also predict the rows following the end of the dataset")
)

func main() {
	flag.Parse()
	if *dataFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := net.Config{
		NumInputs:    *numInputs,
		NumHidden:    *numHidden,
		NumOutputs:   *numOutputs,
		WeightMin:    *weightMin,
		WeightMax:    *weightMax,
		LearningRate: *learningRate,
	}
	if *legacy {
		cfg.HiddenError = net.LegacyDiagonal
	}

	reals, err := parseList(*actual)
	if err != nil {
		log.Fatalf("Invalid -actual: %v", err)
	}
	if len(reals) > 0 && len(reals) != cfg.NumOutputs {
		log.Fatalf("-actual has %d prices, network predicts %d", len(reals), cfg.NumOutputs)
	}

	dataset, err := train.LoadCSV(*dataFile)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	window := train.Window{InputRows: *inputRows, TargetRows: *targetRows}
	blocks, err := dataset.Blocks(window)
	if err != nil {
		log.Fatalf("Failed to slice dataset: %v", err)
	}

	layer.ResetCreated()
	network, err := net.New(cfg, random.New(*seed))
	if err != nil {
		log.Fatalf("Failed to build network: %v", err)
	}

	opts := train.Options{Window: window, Epochs: *epochs}
	if *dataMax != *dataMin {
		opts.Range = &norm.Params{Max: *dataMax, Min: *dataMin}
	}

	callbacks := []train.Callback{
		train.Logger{Interval: *logInterval, BlockInterval: *blockLog, Out: os.Stdout},
	}
	var csvLog *train.CSVLogger
	if *logFile != "" {
		csvLog = train.NewCSVLogger(*logFile, true)
		callbacks = append(callbacks, csvLog)
	}
	if *patience > 0 {
		es := train.NewEarlyStopping(*patience, 0)
		es.Out = os.Stdout
		callbacks = append(callbacks, es)
	}

	fmt.Printf("Dataset: %d rows x %d prices, %d blocks\n", dataset.Len(), dataset.Width(), len(blocks))
	fmt.Printf("Network: %d-%d-%d (%d units), lr %.3f, %v\n",
		cfg.NumInputs, cfg.NumHidden, cfg.NumOutputs, layer.Created(), cfg.LearningRate, cfg.HiddenError)

	trainer := train.NewTrainer(network, opts, callbacks...)
	res, err := trainer.Run(blocks)
	if err != nil {
		log.Fatalf("Training failed: %v", err)
	}
	if csvLog != nil && csvLog.Err() != nil {
		log.Printf("Warning: %v", csvLog.Err())
	}

	fmt.Printf("\nTraining results (%d steps):\n", res.Steps)
	report(res.Predictions, reals)

	if *forecast {
		tail, err := dataset.Tail(window.InputRows)
		if err != nil {
			log.Fatalf("Forecast failed: %v", err)
		}
		next, err := trainer.Predict(tail)
		if err != nil {
			log.Fatalf("Forecast failed: %v", err)
		}
		fmt.Println("\nForecast:")
		report(next, nil)
	}
}

func report(predicted, reals []float64) {
	for i, p := range predicted {
		if len(reals) == 0 {
			fmt.Printf("  %2d: %10.4f\n", i, p)
			continue
		}
		fmt.Printf("  %2d: predicted %10.4f  actual %10.4f  error %7.3f%%\n",
			i, p, reals[i], train.PercentError(reals[i], p))
	}
	if len(reals) == 0 {
		return
	}

	mape, err := train.MAPE(reals, predicted)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}
	rmse, err := train.RMSE(reals, predicted)
	if err != nil {
		log.Fatalf("Scoring failed: %v", err)
	}
	fmt.Printf("  MAPE %.3f%%  RMSE %.4f\n", mape, rmse)
}

func parseList(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
