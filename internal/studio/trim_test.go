package studio

import (
	"math/rand"
	"testing"
)

func TestSetStartClampsAgainstEnd(t *testing.T) {
	w := NewTrimWindow()
	w = w.SetEnd(50)
	w = w.SetStart(60) // would cross: clamp to end-gap
	if w.StartFraction != 45 {
		t.Errorf("StartFraction = %v, want 45", w.StartFraction)
	}
	if w.EndFraction != 50 {
		t.Errorf("EndFraction = %v, want 50 (unchanged)", w.EndFraction)
	}
}

func TestSetEndClampsAgainstStart(t *testing.T) {
	w := NewTrimWindow()
	w = w.SetStart(40)
	w = w.SetEnd(30) // would cross: clamp to start+gap
	if w.EndFraction != 45 {
		t.Errorf("EndFraction = %v, want 45", w.EndFraction)
	}
}

func TestBoundsStayInRange(t *testing.T) {
	w := NewTrimWindow()
	w = w.SetStart(-10)
	if w.StartFraction != 0 {
		t.Errorf("StartFraction = %v, want floor 0", w.StartFraction)
	}
	w = w.SetEnd(150)
	if w.EndFraction != 100 {
		t.Errorf("EndFraction = %v, want ceiling 100", w.EndFraction)
	}
}

func TestInvariantHoldsUnderRandomAdjustments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := NewTrimWindow()
	for i := 0; i < 2000; i++ {
		v := rng.Float64()*140 - 20 // deliberately out of range sometimes
		if rng.Intn(2) == 0 {
			w = w.SetStart(v)
		} else {
			w = w.SetEnd(v)
		}
		if w.StartFraction < 0 || w.StartFraction > 100 {
			t.Fatalf("step %d: StartFraction out of range: %v", i, w.StartFraction)
		}
		if w.EndFraction < 0 || w.EndFraction > 100 {
			t.Fatalf("step %d: EndFraction out of range: %v", i, w.EndFraction)
		}
		if w.EndFraction-w.StartFraction < MinGapPercent {
			t.Fatalf("step %d: gap invariant broken: start=%v end=%v", i, w.StartFraction, w.EndFraction)
		}
	}
}

func TestResolve(t *testing.T) {
	w := TrimWindow{StartFraction: 20, EndFraction: 80}
	start, end := w.Resolve(100)
	if start != 20 || end != 80 {
		t.Errorf("Resolve = (%v, %v), want (20, 80)", start, end)
	}
}

func TestResolveFullSpan(t *testing.T) {
	start, end := NewTrimWindow().Resolve(73)
	if start != 0 || end != 73 {
		t.Errorf("Resolve = (%v, %v), want (0, 73)", start, end)
	}
}

func TestNormalizeRepairsBrokenWindow(t *testing.T) {
	w := TrimWindow{StartFraction: 90, EndFraction: 40}.Normalize()
	if w.EndFraction-w.StartFraction < MinGapPercent {
		t.Fatalf("Normalize kept broken gap: %+v", w)
	}
	if w.StartFraction < 0 || w.EndFraction > 100 {
		t.Fatalf("Normalize out of range: %+v", w)
	}
}

func TestNormalizeKeepsValidWindow(t *testing.T) {
	w := TrimWindow{StartFraction: 20, EndFraction: 80}.Normalize()
	if w.StartFraction != 20 || w.EndFraction != 80 {
		t.Errorf("Normalize changed a valid window: %+v", w)
	}
}
