package percept

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

type status int8

const (
	building  status = iota // 0
	finalized status = iota // 1
)

// Network is an ordered sequence of hidden layers capped with one softmax
// output layer. It owns the concatenated Param list of its layers.
type Network struct {
	inSize int
	layers []*layer
	params []*Param

	outSet bool
	stat   status

	cf   CostFunction
	pens []Penalty

	weightInit Initializer

	err error
}

// New returns a Network under construction that expects inputs with the
// given number of values per example.
func New(inputSize int) *Network {
	net := new(Network)
	if inputSize < 1 {
		net.setError(errors.Errorf("Network input size must be >= 1 (%d)", inputSize))
	}

	net.inSize = inputSize
	return net
}

func (net *Network) setError(e error) {
	if net.err == nil {
		net.err = e
	}
}

// Error returns any errors encountered while constructing the Network. It
// will always return nil after the Network has been successfully finalized.
func (net *Network) Error() error {
	return net.err
}

// Init overrides the Initializer used for the weight matrices of layers
// added after the call. If Init is never called, the package default is
// used.
func (net *Network) Init(i Initializer) *Network {
	if i == nil {
		panic(NilArgError{"Initializer"})
	}

	net.weightInit = i
	return net
}

// Add appends a hidden layer of the given size, applying act elementwise
// after the layer's affine transform. Add must come before Output.
func (net *Network) Add(size int, act Activation) *Network {
	if net.err != nil {
		return net
	}

	if act == nil {
		panic(NilArgError{"Activation"})
	} else if net.stat >= finalized {
		net.setError(ErrFinalized)
		return net
	} else if net.outSet {
		net.setError(errors.Errorf("Can't add hidden layer, output layer has already been set"))
		return net
	} else if size < 1 {
		net.setError(errors.Errorf("Layer size must be >= 1 (%d)", size))
		return net
	}

	net.addLayer(size, act)
	return net
}

// Output caps the Network with a softmax layer over the given number of
// classes. It must be called exactly once, after all hidden layers.
func (net *Network) Output(classes int) *Network {
	if net.err != nil {
		return net
	}

	if net.stat >= finalized {
		net.setError(ErrFinalized)
		return net
	} else if net.outSet {
		net.setError(errors.Errorf("Output layer has already been set"))
		return net
	} else if classes < 2 {
		net.setError(errors.Errorf("Output layer must have >= 2 classes (%d)", classes))
		return net
	}

	net.addLayer(classes, nil)
	net.outSet = true
	return net
}

// addLayer makes the layer, its two Params, and their names. Naming happens
// here, once, so that every Param is already named by the time anything else
// can see it.
func (net *Network) addLayer(size int, act Activation) {
	nIn := net.inSize
	if len(net.layers) != 0 {
		nIn = net.layers[len(net.layers)-1].nOut
	}

	l := &layer{
		index: len(net.layers),
		nIn:   nIn,
		nOut:  size,
		act:   act,
	}

	l.w = NewParam(fmt.Sprintf("layer%d.W", l.index), nIn, size, false)
	l.b = NewParam(fmt.Sprintf("layer%d.b", l.index), 1, size, true)

	init := net.weightInit
	if init == nil {
		init = defaultInitializer
	}

	if init != nil {
		init.Set(nIn, size, act, l.w.Raw())
	} else {
		// no initializers imported; fall back to small uniform weights
		ws := l.w.Raw()
		for i := range ws {
			ws[i] = (2*rand.Float64() - 1) / float64(nIn)
		}
	}

	net.layers = append(net.layers, l)
	net.params = append(net.params, l.w, l.b)
}

// Finalize fixes the structure of the Network and attaches its CostFunction
// and any regularization Penalties. After Finalize the Network can evaluate,
// train, and snapshot.
func (net *Network) Finalize(cf CostFunction, pens ...Penalty) error {
	if net.err != nil {
		return net.err
	}

	if cf == nil {
		panic(NilArgError{"CostFunction"})
	} else if net.stat >= finalized {
		return ErrFinalized
	} else if !net.outSet {
		return errors.Errorf("Can't finalize network, no output layer has been set")
	}

	for _, p := range pens {
		if p == nil {
			panic(NilArgError{"Penalty"})
		}
	}

	net.cf = cf
	net.pens = pens
	net.stat = finalized
	return nil
}

// ChangeCost swaps the CostFunction of a finalized Network. This allows
// different CostFunctions for training and final model evaluation.
func (net *Network) ChangeCost(cf CostFunction) *Network {
	if cf == nil {
		panic(NilArgError{"CostFunction"})
	}

	net.cf = cf
	return net
}

// InputSize returns the number of input values the Network expects per
// example.
func (net *Network) InputSize() int {
	return net.inSize
}

// NumClasses returns the number of classes the Network predicts over, or -1
// if the output layer has not been set.
func (net *Network) NumClasses() int {
	if !net.outSet {
		return -1
	}

	return net.layers[len(net.layers)-1].nOut
}

// Params returns the Network's Params in order: hidden layers first, weights
// before biases. The slice is a copy; the Params are not.
func (net *Network) Params() []*Param {
	ps := make([]*Param, len(net.params))
	copy(ps, net.params)
	return ps
}

func (net *Network) checkInput(x *mat.Dense) error {
	if net.stat < finalized {
		return ErrNotFinalized
	}

	if _, c := x.Dims(); c != net.inSize {
		return SizeMismatchError{net.inSize, c, "input columns"}
	}

	return nil
}

// Forward evaluates the Network on a batch of shape (batch, nIn), returning
// class probabilities of shape (batch, classes). Each output row sums to 1.
func (net *Network) Forward(x *mat.Dense) (*mat.Dense, error) {
	if err := net.checkInput(x); err != nil {
		return nil, err
	}

	out := x
	for _, l := range net.layers {
		out = l.evaluate(out)
	}

	return out, nil
}

// Predict returns the argmax class index for each row of the batch.
func (net *Network) Predict(x *mat.Dense) ([]int, error) {
	probs, err := net.Forward(x)
	if err != nil {
		return nil, err
	}

	return Predictions(probs), nil
}

// Cost returns the mean cost of the batch under the Network's CostFunction,
// plus any regularization Penalties over the weight matrices.
func (net *Network) Cost(x *mat.Dense, labels []int) (float64, error) {
	probs, err := net.Forward(x)
	if err != nil {
		return 0, err
	}

	rows, _ := probs.Dims()
	if len(labels) != rows {
		return 0, SizeMismatchError{rows, len(labels), "labels"}
	}

	var sum float64
	for r := 0; r < rows; r++ {
		if labels[r] < 0 || labels[r] >= net.NumClasses() {
			return 0, errors.Errorf("Label %d at row %d is not a valid class index", labels[r], r)
		}

		sum += net.cf.Cost(probs.RawRowView(r), labels[r])
	}
	sum /= float64(rows)

	return sum + net.penaltyLoss(), nil
}

func (net *Network) penaltyLoss() float64 {
	var sum float64
	for _, pen := range net.pens {
		for _, p := range net.params {
			if p.IsBias() {
				continue
			}
			sum += pen.Loss(p)
		}
	}

	return sum
}

// backprop runs a full forward and backward pass over the batch, returning
// the regularized mean cost and one gradient per Param, aligned with
// net.params.
func (net *Network) backprop(x *mat.Dense, labels []int) (float64, []*mat.Dense, error) {
	if err := net.checkInput(x); err != nil {
		return 0, nil, err
	}

	rows, _ := x.Dims()
	if len(labels) != rows {
		return 0, nil, SizeMismatchError{rows, len(labels), "labels"}
	}

	// forward, keeping every layer's output for the backward pass
	acts := make([]*mat.Dense, len(net.layers)+1)
	acts[0] = x
	for i, l := range net.layers {
		acts[i+1] = l.evaluate(acts[i])
	}

	probs := acts[len(acts)-1]
	classes := net.NumClasses()

	var cost float64
	delta := mat.NewDense(rows, classes, nil)
	for r := 0; r < rows; r++ {
		if labels[r] < 0 || labels[r] >= classes {
			return 0, nil, errors.Errorf("Label %d at row %d is not a valid class index", labels[r], r)
		}

		row := probs.RawRowView(r)
		cost += net.cf.Cost(row, labels[r])

		ds := net.cf.Deltas(row, labels[r])
		for c := 0; c < classes; c++ {
			delta.Set(r, c, ds[c]/float64(rows))
		}
	}
	cost = cost/float64(rows) + net.penaltyLoss()

	grads := make([]*mat.Dense, len(net.params))

	for i := len(net.layers) - 1; i >= 0; i-- {
		l := net.layers[i]
		prev := acts[i]

		gw := mat.NewDense(l.nIn, l.nOut, nil)
		gw.Mul(prev.T(), delta)

		gb := mat.NewDense(1, l.nOut, nil)
		dRows, _ := delta.Dims()
		for r := 0; r < dRows; r++ {
			row := delta.RawRowView(r)
			bias := gb.RawRowView(0)
			for c := range row {
				bias[c] += row[c]
			}
		}

		for _, pen := range net.pens {
			gData := gw.RawMatrix().Data
			wData := l.w.Raw()
			for j := range gData {
				gData[j] += pen.Grad(wData[j])
			}
		}

		grads[2*i] = gw
		grads[2*i+1] = gb

		if i > 0 {
			// push the deltas through the affine transform and the previous
			// layer's activation
			prevAct := net.layers[i-1].act

			next := mat.NewDense(rows, l.nIn, nil)
			next.Mul(delta, l.w.Dense.T())

			for r := 0; r < rows; r++ {
				nRow := next.RawRowView(r)
				aRow := prev.RawRowView(r)
				for c := range nRow {
					nRow[c] *= prevAct.Deriv(aRow[c])
				}
			}

			delta = next
		}
	}

	return cost, grads, nil
}
