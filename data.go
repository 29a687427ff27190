package percept

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// DataSupplier is the primary method of providing datasets to the Network,
// either for training or evaluation. It is a finite, restartable sequence of
// fixed-size mini-batches.
type DataSupplier interface {
	// Batches returns the number of mini-batches in one full pass of the
	// set.
	Batches() int

	// Batch returns mini-batch i: a feature matrix of shape (batch, nIn)
	// and the matching class labels. Batch may be called any number of
	// times, in any order.
	Batch(i int) (*mat.Dense, []int, error)
}

type sliceSupplier struct {
	features  *mat.Dense
	labels    []int
	batchSize int
}

// Data wraps an in-memory dataset as a DataSupplier of mini-batches of the
// given size. features holds one example per row; labels[i] is the class of
// row i. Any remainder examples that do not fill a final batch are dropped,
// keeping every batch the same size.
func Data(features *mat.Dense, labels []int, batchSize int) (DataSupplier, error) {
	if features == nil {
		return nil, NilArgError{"features"}
	} else if batchSize < 1 {
		return nil, errors.Errorf("Batch size must be >= 1 (%d)", batchSize)
	}

	rows, _ := features.Dims()
	if rows != len(labels) {
		return nil, SizeMismatchError{rows, len(labels), "labels"}
	} else if rows < batchSize {
		return nil, errors.Errorf("Dataset has fewer examples (%d) than one batch (%d)", rows, batchSize)
	}

	for i, l := range labels {
		if l < 0 {
			return nil, errors.Errorf("Label %d at index %d is not a valid class index", l, i)
		}
	}

	return &sliceSupplier{
		features:  features,
		labels:    labels,
		batchSize: batchSize,
	}, nil
}

func (s *sliceSupplier) Batches() int {
	rows, _ := s.features.Dims()
	return rows / s.batchSize
}

func (s *sliceSupplier) Batch(i int) (*mat.Dense, []int, error) {
	if i < 0 || i >= s.Batches() {
		return nil, nil, errors.Errorf("Batch index out of range (%d, have %d)", i, s.Batches())
	}

	_, cols := s.features.Dims()
	lo := i * s.batchSize
	hi := lo + s.batchSize

	x := s.features.Slice(lo, hi, 0, cols).(*mat.Dense)
	return x, s.labels[lo:hi], nil
}
