package score

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-1, 0},
		{0, 0},
		{5.5, 5.5},
		{10, 10},
		{10.01, 10},
		{math.Inf(1), 10},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{7.04, 7.0},
		{7.05, 7.1},
		{7.9999, 8.0},
		{0.049, 0.0},
		{3.25, 3.3},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for v := -2.0; v <= 12.0; v += 0.037 {
		once := Normalize(v)
		twice := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent at %v: %v != %v", v, once, twice)
		}
		if once < Min || once > Max {
			t.Fatalf("Normalize(%v) = %v out of range", v, once)
		}
	}
}

func FuzzNormalizeIdempotent(f *testing.F) {
	f.Add(7.35)
	f.Add(-100.0)
	f.Add(10.05)
	f.Fuzz(func(t *testing.T, v float64) {
		if math.IsNaN(v) {
			t.Skip()
		}
		once := Normalize(v)
		if Normalize(once) != once {
			t.Fatalf("Normalize not idempotent for %v", v)
		}
		if once < Min || once > Max {
			t.Fatalf("Normalize(%v) = %v out of range", v, once)
		}
	})
}

func TestTenths(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{7.35, 74},
		{10, 100},
		{-3, 0},
		{11, 100},
	}
	for _, tt := range tests {
		if got := Tenths(tt.in); got != tt.want {
			t.Errorf("Tenths(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{8, "8"},
		{8.0, "8"},
		{8.3, "8.3"},
		{0, "0"},
		{10, "10"},
		{9.95, "10"},
		{2.50, "2.5"},
	}
	for _, tt := range tests {
		if got := Format(tt.in); got != tt.want {
			t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"the dark knight", "The Dark Knight"},
		{"  lord of the rings ", "Lord of the Rings"},
		{"UP", "Up"},
		{"once upon a time in the west", "Once Upon a Time in the West"},
		{"in", "In"},
		{"beauty and the beast", "Beauty and the Beast"},
		{"it happened at the end", "It Happened at the End"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
