package ball

import (
	"fmt"
	"math"
)

// Model selects how the tangential velocity is carried through a collision.
type Model int

const (
	// ModelShared hands the first ball's tangential component to both balls.
	ModelShared Model = iota
	// ModelElastic keeps each ball's own tangential component.
	ModelElastic
)

// ParseModel maps a model name to its Model.
func ParseModel(name string) (Model, error) {
	switch name {
	case "", "shared":
		return ModelShared, nil
	case "elastic":
		return ModelElastic, nil
	}
	return ModelShared, fmt.Errorf("unknown collision model %q", name)
}

func (m Model) String() string {
	if m == ModelElastic {
		return "elastic"
	}
	return "shared"
}

// Overlapping reports whether the two balls intersect.
func Overlapping(p1, p2 *Particle) bool {
	return Distance(p1.x, p1.y, p2.x, p2.y) < p1.radius+p2.radius
}

// Resolve exchanges the velocities of two overlapping balls along their line of centers,
// using the radius as mass. Balls which are already moving apart are left untouched,
// in which case it returns false. Positions are never corrected.
func Resolve(p1, p2 *Particle, model Model) bool {
	dvx := p1.vx - p2.vx
	dvy := p1.vy - p2.vy
	dx := p2.x - p1.x
	dy := p2.y - p1.y

	if dvx*dx+dvy*dy < 0 {
		return false
	}

	angle := -math.Atan2(dy, dx)
	m1, m2 := p1.radius, p2.radius
	sum := m1 + m2

	u1 := Rotate(p1.velocity(), angle)
	u2 := Rotate(p2.velocity(), angle)

	v1 := Vec2{X: u1.X*(m1-m2)/sum + u2.X*2*m2/sum, Y: u1.Y}
	v2 := Vec2{X: u2.X*(m2-m1)/sum + u1.X*2*m1/sum, Y: u1.Y}
	if model == ModelElastic {
		v2.Y = u2.Y
	}

	p1.setVelocity(Rotate(v1, -angle))
	p2.setVelocity(Rotate(v2, -angle))
	return true
}

// DetectAndResolve runs the pairwise scan over every i < j pair in order.
// Pairs see the velocities already changed by earlier pairs of the same pass.
// It returns the number of resolved collisions.
func DetectAndResolve(particles []*Particle, model Model) int {
	var n int
	for i := range particles {
		n += collide(particles, i, model)
	}
	return n
}

// collide tests particle i against every particle after it.
func collide(particles []*Particle, i int, model Model) int {
	var n int
	p := particles[i]
	for j := i + 1; j < len(particles); j++ {
		other := particles[j]
		if Overlapping(p, other) && Resolve(p, other, model) {
			n++
		}
	}
	return n
}
