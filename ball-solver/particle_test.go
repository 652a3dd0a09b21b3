package ball

import "testing"

func TestNewParticleAccessors(t *testing.T) {
	p := NewParticle(1, 2, 3, 4, 5)
	if p.GetX() != 1 || p.GetY() != 2 || p.GetVx() != 3 || p.GetVy() != 4 || p.GetRadius() != 5 {
		t.Errorf("particle = (%f, %f, %f, %f, r=%f), want (1, 2, 3, 4, r=5)",
			p.GetX(), p.GetY(), p.GetVx(), p.GetVy(), p.GetRadius())
	}
	if p.GetColorFactor() != 0 {
		t.Errorf("colour factor = %f, want 0", p.GetColorFactor())
	}
}

func TestIntegrateMovesByDampedVelocity(t *testing.T) {
	p := NewParticle(500, 500, 2, 0, 10)
	Integrate(p, 0, 0.5, Bounds{Width: 1000, Height: 1000})
	if p.GetX() != 501 || p.GetVx() != 1 {
		t.Errorf("after one frame x=%f vx=%f, want 501 and 1", p.GetX(), p.GetVx())
	}
}
