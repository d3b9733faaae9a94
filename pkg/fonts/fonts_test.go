package fonts

import (
	"math"
	"testing"
)

func TestMeasurerMonospace(t *testing.T) {
	m, err := NewMeasurer(14)
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	w1, h1 := m.Measure("M")
	w10, _ := m.Measure("iiiiiiiiii")
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure(M) = %v x %v", w1, h1)
	}
	if math.Abs(w10-10*w1) > 0.01 {
		t.Errorf("ten narrow glyphs = %v, want 10 x %v", w10, w1)
	}
}

func TestMeasurerLines(t *testing.T) {
	m := MustMeasurer(14)
	w, h := m.Measure("ab")
	w2, h2 := m.Measure("ab\na")
	if w2 != w {
		t.Errorf("two-line width = %v, want widest line %v", w2, w)
	}
	if math.Abs(h2-2*h) > 0.01 {
		t.Errorf("two-line height = %v, want %v", h2, 2*h)
	}
}

func TestMeasurerScales(t *testing.T) {
	small, _ := MustMeasurer(10).Measure("abc")
	large, _ := MustMeasurer(20).Measure("abc")
	if large <= small {
		t.Errorf("20px width %v not larger than 10px width %v", large, small)
	}
}

func TestFace(t *testing.T) {
	f, err := Face(12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	if f.Metrics().Height <= 0 {
		t.Error("face has no line height")
	}
}
