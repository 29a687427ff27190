package costfuncs

import (
	"fmt"
	"math"
)

type nll bool

// NLL returns the negative log-likelihood cost function, which implements
// percept.CostFunction. The cost of a row of class probabilities is
// -log(probability of the true class).
func NLL() *nll {
	n := nll(false)
	return &n
}

// CrossEntropy is a proxy for NLL.
func CrossEntropy() *nll {
	return NLL()
}

func (n *nll) TypeString() string {
	return "nll"
}

// PrintOuts makes the cost function print each row it scores, for
// debugging. NoPrint turns it back off.
func (n *nll) PrintOuts() *nll {
	*n = nll(true)
	return n
}

func (n *nll) NoPrint() *nll {
	*n = nll(false)
	return n
}

func (n *nll) Cost(probs []float64, label int) float64 {
	if bool(*n) {
		fmt.Println(label, probs)
	}

	return -math.Log(probs[label])
}

// Deltas gives the derivative with respect to the pre-softmax scores, which
// for softmax followed by NLL collapses to probs minus the one-hot target.
func (n *nll) Deltas(probs []float64, label int) []float64 {
	ds := make([]float64, len(probs))
	copy(ds, probs)
	ds[label] -= 1

	return ds
}
