// A minimal smoke test: learns xor as a two-class problem. Useful for
// checking that the layers, gradients, and update rules all agree without
// needing a dataset on disk.
package main

import (
	"fmt"
	"log"

	ps "github.com/percept-ml/percept"
	"github.com/percept-ml/percept/costfuncs"
	"github.com/percept-ml/percept/hyperparams"
	_ "github.com/percept-ml/percept/initializers"
	"github.com/percept-ml/percept/optimizers"
	"gonum.org/v1/gonum/mat"
)

func main() {
	// every xor input/output pair, repeated so that a batch of 4 is a full
	// pass over the truth table
	features := mat.NewDense(4, 2, []float64{
		0, 0,
		0, 1,
		1, 0,
		1, 1,
	})
	labels := []int{0, 1, 1, 0}

	data, err := ps.Data(features, labels, 4)
	if err != nil {
		log.Fatal(err)
	}

	net := ps.New(2).
		Add(4, ps.Tanh()).
		Output(2)

	if err := net.Finalize(costfuncs.NLL()); err != nil {
		log.Fatal(err)
	}

	res, err := net.Train(ps.TrainArgs{
		TrainData:    data,
		ValidData:    data,
		Opt:          optimizers.Momentum(),
		LearningRate: hyperparams.Step(0.5).Add(2000, 0.1),
		MaxEpochs:    5000,
		Patience:     4000,
	})
	if err != nil {
		log.Fatal(err)
	}

	pred, err := net.Predict(features)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("predictions:", pred)
	fmt.Printf("best validation error %.2f%% after %d epochs\n", res.BestValidation*100, res.Epochs)
}
