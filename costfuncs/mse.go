package costfuncs

import (
	"fmt"
)

type mse bool

// MSE returns the mean squared error cost function over class
// probabilities, which implements percept.CostFunction. NLL is the usual
// choice for classification; MSE exists for model evaluation and
// comparison.
func MSE() *mse {
	m := mse(false)
	return &m
}

// L2 is a proxy for MSE.
func L2() *mse {
	return MSE()
}

func (m *mse) TypeString() string {
	return "mse"
}

func (m *mse) PrintOuts() *mse {
	*m = mse(true)
	return m
}

func (m *mse) NoPrint() *mse {
	*m = mse(false)
	return m
}

func (m *mse) Cost(probs []float64, label int) float64 {
	if bool(*m) {
		fmt.Println(label, probs)
	}

	var sum float64
	for i, p := range probs {
		t := 0.0
		if i == label {
			t = 1
		}

		sum += 0.5 * (p - t) * (p - t)
	}

	return sum
}

// Deltas pushes the probability-space gradient back through the softmax
// jacobian to give the derivative with respect to the pre-softmax scores.
func (m *mse) Deltas(probs []float64, label int) []float64 {
	gs := make([]float64, len(probs))
	var dot float64
	for i, p := range probs {
		t := 0.0
		if i == label {
			t = 1
		}

		gs[i] = p - t
		dot += gs[i] * p
	}

	ds := make([]float64, len(probs))
	for i, p := range probs {
		ds[i] = p * (gs[i] - dot)
	}

	return ds
}
