package percept

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Predictions returns the argmax class index of each row of a probability
// matrix.
func Predictions(probs *mat.Dense) []int {
	rows, _ := probs.Dims()

	pred := make([]int, rows)
	for r := 0; r < rows; r++ {
		pred[r] = floats.MaxIdx(probs.RawRowView(r))
	}

	return pred
}

// MisclassRate returns the fraction of predictions that differ from their
// labels, in [0, 1]. It assumes len(pred) == len(labels).
func MisclassRate(pred, labels []int) float64 {
	if len(pred) == 0 {
		return 0
	}

	var wrong int
	for i := range pred {
		if pred[i] != labels[i] {
			wrong++
		}
	}

	return float64(wrong) / float64(len(pred))
}

// Every returns a function reporting whether an iteration is a multiple of
// 'frequency'. It can be used to rate-limit the Update callback in
// TrainArgs.
func Every(frequency int) func(int) bool {
	return func(iteration int) bool {
		return iteration%frequency == 0
	}
}
