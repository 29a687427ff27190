package percept

import (
	"math"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

// Defaults used by Train when the matching TrainArgs fields are zero. The
// patience numbers follow the usual early-stopping recipe: examine at least
// this many mini-batches, require a 0.5% relative improvement to count, and
// double the budget when one is found.
const (
	defaultLearningRate         float64 = 0.01
	defaultPatience             int     = 10000
	defaultPatienceIncrease     float64 = 2
	defaultImprovementThreshold float64 = 0.995
)

// fixedRate is the fallback HyperParameter for TrainArgs.LearningRate.
type fixedRate float64

func (f fixedRate) TypeString() string {
	return "fixed"
}

func (f fixedRate) Value(iter int) float64 {
	return float64(f)
}

// earlyStop tracks the best validation error seen and the patience budget
// that decides when training may stop.
type earlyStop struct {
	patience  int
	increase  float64
	threshold float64

	best     float64
	bestIter int
}

func newEarlyStop(patience int, increase, threshold float64) *earlyStop {
	return &earlyStop{
		patience:  patience,
		increase:  increase,
		threshold: threshold,
		best:      math.Inf(1),
		bestIter:  -1,
	}
}

// observe records the validation error measured at the given global
// iteration and reports whether it is a new best. An improvement bigger than
// the threshold fraction extends the patience budget to at least
// iter×increase.
func (es *earlyStop) observe(iter int, loss float64) bool {
	if loss >= es.best {
		return false
	}

	if loss < es.best*es.threshold {
		if p := int(float64(iter) * es.increase); p > es.patience {
			es.patience = p
		}
	}

	es.best = loss
	es.bestIter = iter
	return true
}

// done reports whether the patience budget is exhausted, given the global
// iteration that was just processed.
func (es *earlyStop) done(iter int) bool {
	return es.patience <= iter
}

// Result is a wrapper for sending back the progress of training.
type Result struct {
	// Epoch is the current epoch, starting at 1.
	Epoch int

	// Batch is the 1-based mini-batch index within the epoch.
	Batch int

	// Iteration is the global mini-batch counter, 0-indexed across all
	// epochs.
	Iteration int

	// Error is a misclassification rate, 0 → 1. It is measured on the
	// validation set, or on the test set if IsTest.
	Error float64

	// IsTest marks the test-set line that follows a new best validation
	// error.
	IsTest bool
}

// TrainArgs carries the configuration of one training run. Every run gets
// its own TrainArgs; Train keeps no state between runs.
type TrainArgs struct {
	// TrainData, ValidData, and TestData supply the three dataset splits.
	// TestData can be nil, in which case no test score is tracked.
	TrainData DataSupplier
	ValidData DataSupplier
	TestData  DataSupplier

	// Opt adjusts the Params after each mini-batch. If nil, the default
	// Optimizer is used (plain gradient descent, provided the subpackage
	// "optimizers" is imported).
	Opt Optimizer

	// LearningRate is the rate schedule handed to the Optimizer. If nil, a
	// fixed rate of 0.01 is used. Self-scaling Optimizers such as Adadelta
	// ignore it.
	LearningRate HyperParameter

	// MaxEpochs is the epoch budget. It must be >= 1.
	MaxEpochs int

	// Patience is the minimum number of mini-batches examined before early
	// stopping is permitted. PatienceIncrease scales the budget when a
	// significant improvement is found, and ImprovementThreshold is the
	// relative error ratio an improvement must beat to count as
	// significant. Zero values take the package defaults.
	Patience             int
	PatienceIncrease     float64
	ImprovementThreshold float64

	// SnapshotDir, if not "", is the directory where the Params are
	// persisted each time a new best validation error is found. ModelName
	// names the archive within it; it defaults to "model".
	SnapshotDir string
	ModelName   string

	// Update is how progress is reported back. It receives one Result per
	// validation pass, plus a test Result after each new best. It can be
	// left nil.
	Update func(Result)
}

// TrainResult summarizes a finished run.
type TrainResult struct {
	// BestValidation is the lowest validation misclassification rate seen.
	BestValidation float64

	// TestError is the test-set misclassification rate measured when the
	// best validation error was found. It is +Inf if TestData was nil or no
	// best was recorded.
	TestError float64

	// BestIteration is the global iteration of the best validation pass.
	BestIteration int

	// Epochs is the number of epochs run, and Elapsed the wall-clock time
	// spent.
	Epochs  int
	Elapsed time.Duration
}

// PerSecond returns the training throughput in epochs per second.
func (r TrainResult) PerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}

	return float64(r.Epochs) / r.Elapsed.Seconds()
}

// Train runs mini-batch gradient descent with periodic validation and
// patience-based early stopping.
//
// Within each epoch the training batches are visited in sequential order;
// after every mini-batch the Optimizer adjusts all Params in place. Every
// validationFrequency = min(batches-per-epoch, patience/2) iterations the
// full validation set is scored; a new best extends the patience budget when
// the improvement is significant, triggers a test-set evaluation, and
// persists a snapshot if SnapshotDir is set. Training ends when the patience
// budget is exhausted or MaxEpochs have run.
//
// Any shape mismatch or non-finite cost ends the run immediately with an
// error; there are no retries.
func (net *Network) Train(args TrainArgs) (TrainResult, error) {
	var res TrainResult
	res.TestError = math.Inf(1)

	// handle error cases and set defaults
	opt := args.Opt
	{
		if net.stat < finalized {
			return res, ErrNotFinalized
		}

		if args.TrainData == nil {
			return res, NilArgError{"TrainData"}
		} else if args.ValidData == nil {
			return res, NilArgError{"ValidData"}
		}

		if args.MaxEpochs < 1 {
			return res, errors.Errorf("MaxEpochs must be >= 1 (%d)", args.MaxEpochs)
		}

		if opt == nil {
			if defaultOptimizer == nil {
				return res, errors.Errorf("No Optimizer given and no default registered")
			}
			opt = defaultOptimizer()
		}

		if args.LearningRate == nil {
			args.LearningRate = fixedRate(defaultLearningRate)
		}

		if args.Patience == 0 {
			args.Patience = defaultPatience
		} else if args.Patience < 1 {
			return res, errors.Errorf("Patience must be >= 1 (%d)", args.Patience)
		}

		if args.PatienceIncrease == 0 {
			args.PatienceIncrease = defaultPatienceIncrease
		} else if args.PatienceIncrease < 1 {
			return res, errors.Errorf("PatienceIncrease must be >= 1 (%v)", args.PatienceIncrease)
		}

		if args.ImprovementThreshold == 0 {
			args.ImprovementThreshold = defaultImprovementThreshold
		} else if args.ImprovementThreshold <= 0 || args.ImprovementThreshold > 1 {
			return res, errors.Errorf("ImprovementThreshold must be in (0, 1] (%v)", args.ImprovementThreshold)
		}

		if args.ModelName == "" {
			args.ModelName = "model"
		}

		if args.Update == nil {
			args.Update = func(r Result) {}
		}
	}

	nBatches := args.TrainData.Batches()
	if nBatches < 1 {
		return res, errors.Errorf("TrainData has no batches")
	}

	validationFrequency := nBatches
	if p := args.Patience / 2; p < validationFrequency {
		validationFrequency = p
	}
	if validationFrequency < 1 {
		validationFrequency = 1
	}

	es := newEarlyStop(args.Patience, args.PatienceIncrease, args.ImprovementThreshold)

	start := time.Now()
	iter := 0
	stop := false

	for epoch := 1; epoch <= args.MaxEpochs && !stop; epoch++ {
		res.Epochs = epoch

		for b := 0; b < nBatches; b++ {
			x, labels, err := args.TrainData.Batch(b)
			if err != nil {
				return res, errors.Wrapf(err, "Failed to get training batch %d (epoch %d)\n", b, epoch)
			}

			cost, grads, err := net.backprop(x, labels)
			if err != nil {
				return res, errors.Wrapf(err, "Training step failed on iteration %d\n", iter)
			}

			if math.IsNaN(cost) || math.IsInf(cost, 0) {
				return res, errors.Errorf("Cost is not finite (%v) on iteration %d", cost, iter)
			}

			rate := args.LearningRate.Value(iter)
			for i, p := range net.params {
				g := grads[i].RawMatrix().Data
				ws := p.Raw()

				err = opt.Run(p, len(ws),
					func(j int) float64 { return g[j] },
					func(j int, v float64) { ws[j] += v },
					rate)
				if err != nil {
					return res, errors.Wrapf(err, "Optimizer failed on %s (iteration %d)\n", p.Name(), iter)
				}
			}

			if (iter+1)%validationFrequency == 0 {
				vErr, err := net.Test(args.ValidData)
				if err != nil {
					return res, errors.Wrapf(err, "Validation on iteration %d failed\n", iter)
				}

				args.Update(Result{
					Epoch:     epoch,
					Batch:     b + 1,
					Iteration: iter,
					Error:     vErr,
				})

				if es.observe(iter, vErr) {
					res.BestIteration = iter

					if args.TestData != nil {
						t, err := net.Test(args.TestData)
						if err != nil {
							return res, errors.Wrapf(err, "Testing on iteration %d failed\n", iter)
						}

						res.TestError = t
						args.Update(Result{
							Epoch:     epoch,
							Batch:     b + 1,
							Iteration: iter,
							Error:     t,
							IsTest:    true,
						})
					}

					if args.SnapshotDir != "" {
						if err := net.Snapshot(args.SnapshotDir, args.ModelName); err != nil {
							return res, errors.Wrapf(err, "Failed to snapshot on iteration %d\n", iter)
						}
					}
				}
			}

			if es.done(iter) {
				stop = true
				break
			}

			iter++
		}
	}

	res.BestValidation = es.best
	res.Elapsed = time.Since(start)
	return res, nil
}

// Test returns the mean of the per-batch misclassification rates over the
// full DataSupplier. It has no side effects on the Network.
func (net *Network) Test(data DataSupplier) (float64, error) {
	if data == nil {
		return 0, NilArgError{"data"}
	}

	n := data.Batches()
	if n < 1 {
		return 0, errors.Errorf("DataSupplier has no batches")
	}

	rates := make([]float64, n)
	for i := 0; i < n; i++ {
		x, labels, err := data.Batch(i)
		if err != nil {
			return 0, errors.Wrapf(err, "Failed to get batch %d\n", i)
		}

		pred, err := net.Predict(x)
		if err != nil {
			return 0, errors.Wrapf(err, "Failed to evaluate batch %d\n", i)
		}

		if len(pred) != len(labels) {
			return 0, SizeMismatchError{len(pred), len(labels), "labels"}
		}

		rates[i] = MisclassRate(pred, labels)
	}

	return stat.Mean(rates, nil), nil
}
