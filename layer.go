package percept

import (
	"math"

	"github.com/percept-ml/percept/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const threadSizeMultiplier int = 2

// layer is a dense layer: an affine transform followed either by an
// elementwise Activation (hidden layers) or by a row-wise softmax (act ==
// nil, the output layer).
type layer struct {
	index     int
	nIn, nOut int
	act       Activation
	w, b      *Param
}

// evaluate computes the layer's output for a batch of inputs of shape
// (batch, nIn), producing (batch, nOut). It is a deterministic function of
// the current Param values.
func (l *layer) evaluate(in *mat.Dense) *mat.Dense {
	rows, _ := in.Dims()

	out := mat.NewDense(rows, l.nOut, nil)
	out.Mul(in, l.w.Dense)

	bias := l.b.Raw()

	f := func(r int) {
		row := out.RawRowView(r)
		floats.Add(row, bias)

		if l.act != nil {
			for i := range row {
				row[i] = l.act.Apply(row[i])
			}
		} else {
			softmaxRow(row)
		}
	}

	opsPerThread := threadSizeMultiplier
	threadsPerCPU := 1
	utils.MultiThread(0, rows, f, opsPerThread, threadsPerCPU)

	return out
}

// softmaxRow rewrites a row of scores as a probability distribution. The row
// maximum is subtracted first so that the exponentials cannot overflow.
func softmaxRow(row []float64) {
	max := floats.Max(row)

	for i := range row {
		row[i] = math.Exp(row[i] - max)
	}

	floats.Scale(1/floats.Sum(row), row)
}
