package geometry

import (
	"math"
	"testing"
)

func TestNewVectorPolar(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		theta  float64
		want   Vector2D
	}{
		{"Zero radius", 0, 0, Vector2D{0, 0}},
		{"Zero angle (X-axis)", 10, 0, Vector2D{10, 0}},
		{"90 degrees (Y-axis)", 10, math.Pi / 2, Vector2D{0, 10}},
		{"180 degrees (Negative X)", 10, math.Pi, Vector2D{-10, 0}},
		{"270 degrees (Negative Y)", 10, 3 * math.Pi / 2, Vector2D{0, -10}},
		{"45 degrees", math.Sqrt(2), math.Pi / 4, Vector2D{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewVectorPolar(tt.radius, tt.theta)
			if !got.Eq(tt.want) {
				t.Errorf("NewVectorPolar(%v, %v) = %v; want %v", tt.radius, tt.theta, got, tt.want)
			}
		})
	}
}

func TestVector_String(t *testing.T) {
	v := Vector2D{1.234, 5.678}
	want := "(1.23, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector2D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector2D{1, 2}
	v2 := Vector2D{3, 4}

	t.Run("Add", func(t *testing.T) {
		want := Vector2D{4, 6}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector2D{-2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector2D{2, 4}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Length(t *testing.T) {
	v := Vector2D{3, 4}
	if got := v.Len(); math.Abs(got-5) > Epsilon {
		t.Errorf("Len() = %v; want 5", got)
	}
	if got := v.LenSqr(); math.Abs(got-25) > Epsilon {
		t.Errorf("LenSqr() = %v; want 25", got)
	}
}

func TestVector_Normalize(t *testing.T) {
	v := Vector2D{3, 4}
	got := v.Normalize()
	if math.Abs(got.Len()-1) > Epsilon {
		t.Errorf("Normalize().Len() = %v; want 1", got.Len())
	}
	if !got.Eq(Vector2D{0.6, 0.8}) {
		t.Errorf("Normalize() = %v; want (0.6, 0.8)", got)
	}

	// Degenerate zero vector stays zero instead of producing NaN.
	zero := Vector2D{}
	if got := zero.Normalize(); !got.Eq(Vector2D{}) {
		t.Errorf("zero.Normalize() = %v; want (0, 0)", got)
	}
}

func TestVector_DistanceTo(t *testing.T) {
	a := Vector2D{0, 0}
	b := Vector2D{3, 4}
	if got := a.DistanceTo(b); math.Abs(got-5) > Epsilon {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
}
