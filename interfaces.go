package percept

// Optimizer is the way in which the weights of a Param are adjusted, given
// their gradients. Optimizers only ever see the flat list of weights; they
// never inspect model structure.
type Optimizer interface {
	TypeString() string

	// Run adjusts the weights of the given Param.
	//
	// arguments: target Param, number of weights, gradient of the weight at
	// an index, add to the weight at an index, learning rate.
	//
	// Stateful Optimizers should key any per-Param state by the Param's
	// Name; auxiliary accumulators start at zero and share the Param's
	// shape.
	Run(p *Param, size int, grad func(int) float64, add func(int, float64), learningRate float64) error

	// Save should store enough information in the directory to recreate the
	// Optimizer's state from file. Load should recreate it. Stateless
	// Optimizers can make both a no-op.
	Save(dirPath string) error
	Load(dirPath string) error
}

// CostFunction scores a single row of class probabilities against the index
// of the true class.
type CostFunction interface {
	TypeString() string

	// Cost returns the penalty for predicting probs when the true class is
	// label. label is guaranteed to be a valid index into probs.
	Cost(probs []float64, label int) float64

	// Deltas returns the derivative of the cost with respect to the
	// pre-softmax scores that produced probs.
	Deltas(probs []float64, label int) []float64
}

// Penalty is a regularization term added to the cost, with a matching
// contribution to each weight's gradient. Penalties apply to weight matrices
// only; bias Params are skipped.
type Penalty interface {
	TypeString() string

	// Loss returns the additional cost contributed by a weight Param.
	Loss(p *Param) float64

	// Grad returns the gradient contribution for a single weight value.
	Grad(w float64) float64
}

// Initializer sets the starting values of a weight matrix. Biases are always
// zeroed and never passed to an Initializer.
type Initializer interface {
	// Set fills ws, given the fan-in and fan-out of the owning layer and the
	// layer's Activation. act is nil for the softmax output layer.
	Set(fanIn, fanOut int, act Activation, ws []float64)
}

// HyperParameter is a training value that may change as iterations pass,
// such as a learning-rate schedule.
type HyperParameter interface {
	TypeString() string

	// Value returns the value of the HyperParameter at the given iteration.
	Value(iter int) float64
}
