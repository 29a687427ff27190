package percept

import (
	"math"
	"testing"
)

func TestEarlyStopExtendsPatience(t *testing.T) {
	es := newEarlyStop(5000, 2, 0.995)

	if !math.IsInf(es.best, 1) {
		t.Fatalf("initial best should be +Inf, got %v", es.best)
	}

	if !es.observe(100, 0.50) {
		t.Error("first observation should be a new best")
	}
	if es.patience != 5000 {
		t.Errorf("patience after first best should stay 5000, got %d", es.patience)
	}

	// a >0.5% relative improvement at iteration 4999 must extend patience
	// to at least 4999*2
	if !es.observe(4999, 0.10) {
		t.Error("second observation should be a new best")
	}
	if es.patience < 9998 {
		t.Errorf("patience should extend to at least 9998, got %d", es.patience)
	}

	for iter := 5000; iter < 9998; iter++ {
		if es.done(iter) {
			t.Fatalf("must not stop before iteration 9998 (stopped at %d)", iter)
		}
	}
	if !es.done(9998) {
		t.Error("should stop once the extended patience is reached")
	}
}

func TestEarlyStopInsignificantImprovement(t *testing.T) {
	es := newEarlyStop(100, 2, 0.995)

	if !es.observe(50, 0.500) {
		t.Error("first observation should be a new best")
	}

	// better, but within the improvement threshold: best updates, patience
	// does not
	if !es.observe(99, 0.4999) {
		t.Error("a strictly lower error is still a new best")
	}
	if es.patience != 100 {
		t.Errorf("insignificant improvement should not extend patience, got %d", es.patience)
	}

	if es.observe(120, 0.6) {
		t.Error("a worse error should never be a new best")
	}
	if es.best != 0.4999 {
		t.Errorf("best should be unchanged by a worse error, got %v", es.best)
	}
}
