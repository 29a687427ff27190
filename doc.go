// Package percept implements small feed-forward classifiers: stacks of dense
// layers capped with a softmax output, trained by mini-batch gradient descent
// with patience-based early stopping.
//
// Building Networks
//
// The center of everything is the Network:
//
//		net := percept.New(784).
//			Add(500, percept.Tanh()).
//			Output(10)
//
//		if err := net.Finalize(costfuncs.NLL()); err != nil {
//			return err
//		}
//
// New takes the input dimensionality; Add appends a hidden layer with an
// elementwise activation (tanh, logistic, or relu); Output caps the Network
// with a softmax layer over the given number of classes. Construction errors
// accumulate and surface at Finalize.
//
// Each layer owns two Params - a weight matrix and a bias row - named
// "layer{index}.W" and "layer{index}.b" in construction order, hidden layers
// first. Weights are initialized by the package-level default Initializer
// (uniform in ±sqrt(6/(nIn+nOut)), provided the subpackage "initializers" is
// imported); biases start at zero.
//
// Training
//
// Training runs through TrainArgs, which plays the role that keyword
// arguments would in other languages:
//
//		res, err := net.Train(percept.TrainArgs{
//			TrainData: train,
//			ValidData: valid,
//			TestData:  test,
//			Opt:       optimizers.Momentum(),
//			MaxEpochs: 1000,
//			Patience:  10000,
//		})
//
// The loop validates periodically, tracks the best validation error seen,
// extends its patience whenever the error improves significantly, and stops
// once patience runs out or the epoch budget is spent. On each new best the
// current Params can be written to a JSON snapshot (see Snapshot).
//
// optimizers, costfuncs, penalties, initializers, and hyperparams are - of
// course - subpackages of percept.
package percept
