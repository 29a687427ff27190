// Trains a multilayer perceptron on csv digit data with mini-batch gradient
// descent and patience-based early stopping.
//
// Usage:
//
//	mnist -train train.csv -valid valid.csv -test test.csv [-hidden 500]
//		[-opt sgd|momentum|adadelta] [-snapshot dir]
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	ps "github.com/percept-ml/percept"
	"github.com/percept-ml/percept/costfuncs"
	"github.com/percept-ml/percept/hyperparams"
	_ "github.com/percept-ml/percept/initializers"
	_ "github.com/percept-ml/percept/optimizers"
	"github.com/percept-ml/percept/penalties"
)

func main() {
	var (
		trainPath = flag.String("train", "", "path to the training csv")
		validPath = flag.String("valid", "", "path to the validation csv")
		testPath  = flag.String("test", "", "path to the test csv")

		hidden     = flag.String("hidden", "500", "comma-separated hidden layer sizes")
		activation = flag.String("activation", "tanh", "hidden activation: tanh, logistic, or relu")
		optName    = flag.String("opt", "sgd", "update rule: sgd, momentum, or adadelta")

		batchSize = flag.Int("batch", 20, "mini-batch size")
		epochs    = flag.Int("epochs", 1000, "epoch budget")
		patience  = flag.Int("patience", 10000, "minimum mini-batches before early stopping")
		rate      = flag.Float64("lr", 0.01, "learning rate")
		l1        = flag.Float64("l1", 0, "L1 regularization strength")
		l2        = flag.Float64("l2", 0.0001, "L2 regularization strength")

		snapshotDir = flag.String("snapshot", "", "directory for best-model snapshots (none if empty)")
		modelName   = flag.String("name", "mnist-mlp", "model name within the snapshot directory")
	)
	flag.Parse()

	if *trainPath == "" || *validPath == "" || *testPath == "" {
		log.Fatal("-train, -valid, and -test are all required")
	}

	act, err := ps.ActivationByName(*activation)
	if err != nil {
		log.Fatal(err)
	}

	opt, err := ps.OptimizerByName(*optName)
	if err != nil {
		log.Fatal(err)
	}

	net := ps.New(imgSize)
	for _, s := range strings.Split(*hidden, ",") {
		size, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			log.Fatalf("bad hidden layer size %q", s)
		}

		net.Add(size, act)
	}
	net.Output(numClasses)

	var pens []ps.Penalty
	if *l1 != 0 {
		pens = append(pens, penalties.L1(*l1))
	}
	if *l2 != 0 {
		pens = append(pens, penalties.L2(*l2))
	}

	if err := net.Finalize(costfuncs.NLL(), pens...); err != nil {
		log.Fatal(err)
	}

	train := load(*trainPath, *batchSize)
	valid := load(*validPath, *batchSize)
	test := load(*testPath, *batchSize)

	nBatches := train.Batches()
	update := func(r ps.Result) {
		if r.IsTest {
			fmt.Printf("     epoch %d, minibatch %d/%d, test error of best model %.2f%%\n",
				r.Epoch, r.Batch, nBatches, r.Error*100)
		} else {
			fmt.Printf("epoch %d, minibatch %d/%d, validation error %.2f%%\n",
				r.Epoch, r.Batch, nBatches, r.Error*100)
		}
	}

	res, err := net.Train(ps.TrainArgs{
		TrainData:    train,
		ValidData:    valid,
		TestData:     test,
		Opt:          opt,
		LearningRate: hyperparams.Constant(*rate),
		MaxEpochs:    *epochs,
		Patience:     *patience,
		SnapshotDir:  *snapshotDir,
		ModelName:    *modelName,
		Update:       update,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Best validation error %.4f%% at iteration %d, with test error %.4f%%\n",
		res.BestValidation*100, res.BestIteration, res.TestError*100)
	fmt.Printf("Ran %d epochs in %v (%.2f epochs/sec)\n",
		res.Epochs, res.Elapsed, res.PerSecond())
}

func load(path string, batchSize int) ps.DataSupplier {
	features, labels, err := readCSV(path)
	if err != nil {
		log.Fatal(err)
	}

	data, err := ps.Data(features, labels, batchSize)
	if err != nil {
		log.Fatal(err)
	}

	return data
}
