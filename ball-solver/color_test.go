package ball

import "testing"

func TestColorPhaseReflects(t *testing.T) {
	p := NewParticle(0, 0, 0, 0, 10)
	p.SetColorSpeed(0.3)

	want := []float64{0.3, 0.6, 0.9, 1, 0.7, 0.4, 0.1, 0, 0.3}
	for i, w := range want {
		p.stepColor()
		if !almostEqual(p.GetColorFactor(), w) {
			t.Fatalf("step %d: factor = %f, want %f", i, p.GetColorFactor(), w)
		}
	}
}

func TestColorPhaseBounded(t *testing.T) {
	p := NewParticle(0, 0, 0, 0, 10)
	for i := 0; i < 1000; i++ {
		p.stepColor()
		if f := p.GetColorFactor(); f < 0 || f > 1 {
			t.Fatalf("step %d: factor %f out of [0, 1]", i, f)
		}
	}
}

func TestPaletteEndpoints(t *testing.T) {
	r, g, b := DefaultPalette.At(0)
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("At(0) = (%d, %d, %d), want red", r, g, b)
	}
	r, g, b = DefaultPalette.At(1)
	if r != 0 || g != 0 || b != 255 {
		t.Errorf("At(1) = (%d, %d, %d), want blue", r, g, b)
	}
	r, g, b = DefaultPalette.At(0.5)
	if r != 128 || g != 0 || b != 128 {
		t.Errorf("At(0.5) = (%d, %d, %d), want (128, 0, 128)", r, g, b)
	}
}

func TestParsePalette(t *testing.T) {
	pl, err := ParsePalette("#00ff00", "#ffffff")
	if err != nil {
		t.Fatal(err)
	}
	if r, g, b := pl.At(0); r != 0 || g != 255 || b != 0 {
		t.Errorf("From = (%d, %d, %d), want green", r, g, b)
	}
	if _, err := ParsePalette("red", "#0000ff"); err == nil {
		t.Error("ParsePalette accepted a non-hex colour")
	}
}
