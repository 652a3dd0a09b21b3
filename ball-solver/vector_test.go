package ball

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestRotateQuarterTurn(t *testing.T) {
	v := Rotate(Vec2{X: 1, Y: 0}, math.Pi/2)
	if !almostEqual(v.X, 0) || !almostEqual(v.Y, 1) {
		t.Errorf("rotating (1,0) by pi/2: got (%f, %f), want (0, 1)", v.X, v.Y)
	}
}

func TestRotateRoundTrip(t *testing.T) {
	in := Vec2{X: 3.5, Y: -2.25}
	out := Rotate(Rotate(in, 0.7), -0.7)
	if !almostEqual(in.X, out.X) || !almostEqual(in.Y, out.Y) {
		t.Errorf("round trip changed vector: got %+v, want %+v", out, in)
	}
}

func TestRotateKeepsLength(t *testing.T) {
	in := Vec2{X: 4, Y: 3}
	out := Rotate(in, 2.1)
	if got := math.Hypot(out.X, out.Y); !almostEqual(got, 5) {
		t.Errorf("rotated length = %f, want 5", got)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance = %f, want 5", d)
	}
	if d := Distance(100, 100, 115, 100); d != 15 {
		t.Errorf("Distance = %f, want 15", d)
	}
}

func TestDistanceNaNPropagates(t *testing.T) {
	if d := Distance(math.NaN(), 0, 1, 1); !math.IsNaN(d) {
		t.Errorf("Distance with NaN input = %f, want NaN", d)
	}
}
