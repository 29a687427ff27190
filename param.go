package percept

import (
	"gonum.org/v1/gonum/mat"
)

// Param is a named, mutable array of weights belonging to exactly one layer.
// Params are created during network assembly, adjusted in place by Optimizers
// during training, and written out by Snapshot. Weight matrices have shape
// (nIn, nOut); biases are single rows of shape (1, nOut).
type Param struct {
	name string
	bias bool

	*mat.Dense
}

// NewParam returns a zeroed Param with the given dimensions. Most users will
// never call NewParam; Params are normally made by Network assembly, which
// also fixes their names.
func NewParam(name string, rows, cols int, bias bool) *Param {
	return &Param{
		name:  name,
		bias:  bias,
		Dense: mat.NewDense(rows, cols, nil),
	}
}

// Name returns the name given to the Param at construction. Network assembly
// names Params "layer{index}.W" and "layer{index}.b", 0-indexed with hidden
// layers first.
func (p *Param) Name() string {
	return p.name
}

// IsBias reports whether the Param is a bias row. Biases are excluded from
// regularization penalties.
func (p *Param) IsBias() bool {
	return p.bias
}

// Size returns the total number of weights held by the Param.
func (p *Param) Size() int {
	r, c := p.Dims()
	return r * c
}

// Raw returns the Param's backing slice, in row-major order. Writes to the
// slice write through to the Param.
func (p *Param) Raw() []float64 {
	return p.RawMatrix().Data
}
