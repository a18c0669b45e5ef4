package utils

import "testing"

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0}, {0, 0}, {0.42, 0.42}, {1, 1}, {1.5, 1},
	}
	for _, tc := range cases {
		if got := Clamp01(tc.in); got != tc.want {
			t.Fatalf("Clamp01(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(5, 1, 10); got != 5 {
		t.Fatalf("got %d", got)
	}
	if got := ClampInt(-5, 1, 10); got != 1 {
		t.Fatalf("got %d", got)
	}
	if got := ClampInt(50, 1, 10); got != 10 {
		t.Fatalf("got %d", got)
	}
	// Swapped bounds.
	if got := ClampInt(5, 10, 1); got != 5 {
		t.Fatalf("swapped bounds: got %d", got)
	}
}
