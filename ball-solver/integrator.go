package ball

// Bounds is the size of the world the balls are contained in.
// The top edge is open: balls spawned above it fall in.
type Bounds struct {
	Width, Height float64
}

// Integrate advances p by one frame and resolves the floor and wall contacts.
// Gravity accelerates downwards, friction damps the horizontal speed on every
// frame and the velocity component on every bounce.
func Integrate(p *Particle, gravity, friction float64, b Bounds) {
	p.vy += gravity
	p.y += p.vy
	p.vx *= friction
	p.x += p.vx

	// Each edge is checked on its own: a ball can hit the floor and a wall in the same frame.
	if p.y+p.radius > b.Height {
		p.y = b.Height - p.radius
		p.vy *= -friction
	}
	if p.x+p.radius > b.Width {
		p.x = b.Width - p.radius
		p.vx *= -friction
	}
	if p.x-p.radius < 0 {
		p.x = p.radius
		p.vx *= -friction
	}
}
