package random

import (
	"testing"
	"time"
)

func TestIntInclusiveBounds(t *testing.T) {
	src := New(1)
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		v := IntInclusive(src, 3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("IntInclusive(3, 7) = %d, out of range", v)
		}
		seen[v] = true
	}
	for v := 3; v <= 7; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn in 2000 samples", v)
		}
	}
}

func TestIntInclusiveCollapsedRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
	}{
		{"equal", 50, 50},
		{"inverted", 60, 40},
		{"negative inverted", -1, -5},
	}

	src := New(2)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntInclusive(src, tt.min, tt.max); got != tt.min {
				t.Errorf("IntInclusive(%d, %d) = %d, want %d", tt.min, tt.max, got, tt.min)
			}
		})
	}
}

func TestDurationInclusive(t *testing.T) {
	src := New(3)
	lo, hi := 900*time.Millisecond, 1500*time.Millisecond
	for i := 0; i < 500; i++ {
		d := DurationInclusive(src, lo, hi)
		if d < lo || d > hi {
			t.Fatalf("DurationInclusive() = %v, out of [%v, %v]", d, lo, hi)
		}
		if d%time.Millisecond != 0 {
			t.Fatalf("DurationInclusive() = %v, not millisecond aligned", d)
		}
	}
}

func TestSeededDeterminism(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := IntInclusive(a, 0, 1000), IntInclusive(b, 0, 1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestPick(t *testing.T) {
	items := []string{"a", "b", "c"}
	src := New(4)
	for i := 0; i < 50; i++ {
		got := Pick(src, items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("Pick() = %q, not an element", got)
		}
	}
}
