package percept

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// plain gradient descent, local to the tests so that the root package tests
// don't depend on the optimizers subpackage
type testSGD int8

func (testSGD) TypeString() string { return "test-sgd" }

func (testSGD) Run(p *Param, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	for i := 0; i < size; i++ {
		add(i, -1*learningRate*grad(i))
	}
	return nil
}

func (testSGD) Save(dirPath string) error { return nil }
func (testSGD) Load(dirPath string) error { return nil }

func testDataset(t *testing.T, examples, nIn, classes, batchSize int) DataSupplier {
	t.Helper()

	features := randomBatch(examples, nIn)
	labels := make([]int, examples)
	for i := range labels {
		labels[i] = i % classes
	}

	data, err := Data(features, labels, batchSize)
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}

	return data
}

func TestTrainOneEpoch(t *testing.T) {
	net := buildNet(t, 4, []int{5}, 3)

	// 20 batches per epoch, batch size 20
	train := testDataset(t, 400, 4, 3, 20)
	valid := testDataset(t, 100, 4, 3, 20)

	var validations int
	res, err := net.Train(TrainArgs{
		TrainData: train,
		ValidData: valid,
		Opt:       testSGD(0),
		MaxEpochs: 1,
		Update: func(r Result) {
			if !r.IsTest {
				validations++
			}
		},
	})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// validation frequency is min(20, patience/2) = 20, so validation must
	// have run at least once and the best error must end finite
	if validations == 0 {
		t.Error("validation never ran")
	}
	if math.IsInf(res.BestValidation, 0) || math.IsNaN(res.BestValidation) {
		t.Errorf("best validation error should be finite, got %v", res.BestValidation)
	}
	if res.BestValidation < 0 || res.BestValidation > 1 {
		t.Errorf("best validation error outside [0, 1]: %v", res.BestValidation)
	}
	if res.Epochs != 1 {
		t.Errorf("ran %d epochs; expected 1", res.Epochs)
	}
}

func TestTrainStopsOnPatience(t *testing.T) {
	net := buildNet(t, 4, []int{5}, 3)

	train := testDataset(t, 200, 4, 3, 20) // 10 batches per epoch
	valid := testDataset(t, 40, 4, 3, 20)

	var lastIter int
	res, err := net.Train(TrainArgs{
		TrainData:            train,
		ValidData:            valid,
		Opt:                  testSGD(0),
		MaxEpochs:            1000,
		Patience:             25,
		PatienceIncrease:     1, // never extend
		ImprovementThreshold: 1,
		Update: func(r Result) {
			lastIter = r.Iteration
		},
	})
	if err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// with 10 batches per epoch and patience 25, training must stop during
	// epoch 3
	if res.Epochs != 3 {
		t.Errorf("ran %d epochs; expected 3", res.Epochs)
	}
	if lastIter > 25 {
		t.Errorf("validated at iteration %d, after patience ran out", lastIter)
	}
}

func TestTrainArgErrors(t *testing.T) {
	net := buildNet(t, 4, nil, 3)
	data := testDataset(t, 40, 4, 3, 20)

	if _, err := net.Train(TrainArgs{ValidData: data, Opt: testSGD(0), MaxEpochs: 1}); err == nil {
		t.Error("expected an error for nil TrainData")
	}
	if _, err := net.Train(TrainArgs{TrainData: data, Opt: testSGD(0), MaxEpochs: 1}); err == nil {
		t.Error("expected an error for nil ValidData")
	}
	if _, err := net.Train(TrainArgs{TrainData: data, ValidData: data, Opt: testSGD(0)}); err == nil {
		t.Error("expected an error for MaxEpochs 0")
	}
}

func TestTestMeanMisclassification(t *testing.T) {
	net := buildNet(t, 4, nil, 2)

	// force the network's predictions to a known class by loading weights
	// that always favor class 0
	w := net.Params()[0]
	w.Copy(mat.NewDense(4, 2, []float64{
		1, -1,
		1, -1,
		1, -1,
		1, -1,
	}))

	features := mat.NewDense(4, 4, []float64{
		1, 1, 1, 1,
		1, 2, 1, 1,
		2, 1, 1, 1,
		1, 1, 2, 1,
	})

	data, err := Data(features, []int{0, 0, 0, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}

	rate, err := net.Test(data)
	if err != nil {
		t.Fatalf("Test failed: %v", err)
	}
	if rate != 0 {
		t.Errorf("all predictions correct should give 0, got %v", rate)
	}

	data, err = Data(features, []int{1, 1, 1, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}

	rate, err = net.Test(data)
	if err != nil {
		t.Fatalf("Test failed: %v", err)
	}
	if rate != 1 {
		t.Errorf("all predictions wrong should give 1, got %v", rate)
	}
}
