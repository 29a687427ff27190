package percept

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDataBatching(t *testing.T) {
	features := mat.NewDense(7, 2, []float64{
		0, 1,
		2, 3,
		4, 5,
		6, 7,
		8, 9,
		10, 11,
		12, 13,
	})
	labels := []int{0, 1, 0, 1, 0, 1, 0}

	data, err := Data(features, labels, 3)
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	// the one remainder example doesn't fill a batch and is dropped
	if data.Batches() != 2 {
		t.Fatalf("have %d batches; expected 2", data.Batches())
	}

	x, ls, err := data.Batch(1)
	if err != nil {
		t.Fatalf("Batch failed: %v", err)
	}

	if r, c := x.Dims(); r != 3 || c != 2 {
		t.Errorf("batch shape is (%d, %d); expected (3, 2)", r, c)
	}
	if x.At(0, 0) != 6 {
		t.Errorf("batch 1 should start at example 3 (got %v)", x.At(0, 0))
	}
	if len(ls) != 3 || ls[0] != 1 {
		t.Errorf("batch labels are %v; expected [1 0 1]", ls)
	}

	// restartable: asking again gives the same batch
	x2, _, err := data.Batch(1)
	if err != nil {
		t.Fatal(err)
	}
	if !mat.Equal(x, x2) {
		t.Error("repeated Batch calls should return identical data")
	}

	if _, _, err = data.Batch(2); err == nil {
		t.Error("expected an error for a batch index out of range")
	}
}

func TestDataValidation(t *testing.T) {
	features := mat.NewDense(4, 2, nil)

	if _, err := Data(features, []int{0, 1, 0}, 2); err == nil {
		t.Error("expected an error for mismatched label count")
	}
	if _, err := Data(features, []int{0, 1, 0, 1}, 0); err == nil {
		t.Error("expected an error for batch size 0")
	}
	if _, err := Data(features, []int{0, -1, 0, 1}, 2); err == nil {
		t.Error("expected an error for a negative label")
	}
	if _, err := Data(features, []int{0, 1, 0, 1}, 5); err == nil {
		t.Error("expected an error when one batch exceeds the dataset")
	}
}
