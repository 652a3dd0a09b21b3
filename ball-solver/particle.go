package ball

// DefaultColorSpeed is the colour phase change applied on every frame.
const DefaultColorSpeed = 0.01

// Particle defines the physical and cosmetic state of a single ball.
type Particle struct {
	x, y   float64
	vx, vy float64
	radius float64

	colorFactor float64
	colorSpeed  float64
}

// NewParticle spawns a new ball at coordinates defined by {x, y}
// moving with velocity {vx, vy}. The radius is fixed for the particle's lifetime.
func NewParticle(x, y, vx, vy, radius float64) *Particle {
	return &Particle{
		x:          x,
		y:          y,
		vx:         vx,
		vy:         vy,
		radius:     radius,
		colorSpeed: DefaultColorSpeed,
	}
}

// GetX returns the horizontal position of the ball centre.
func (p *Particle) GetX() float64 {
	return p.x
}

// GetY returns the vertical position, growing downwards.
func (p *Particle) GetY() float64 {
	return p.y
}

// GetVx returns the horizontal velocity in world units per frame.
func (p *Particle) GetVx() float64 {
	return p.vx
}

// GetVy returns the vertical velocity in world units per frame.
func (p *Particle) GetVy() float64 {
	return p.vy
}

// GetRadius returns the particle radius. There is no setter: the radius
// is also the particle mass and never changes once spawned.
func (p *Particle) GetRadius() float64 {
	return p.radius
}

// GetColorFactor returns the colour phase, always within [0, 1].
func (p *Particle) GetColorFactor() float64 {
	return p.colorFactor
}

// SetColorSpeed sets how far the colour phase moves per frame.
func (p *Particle) SetColorSpeed(val float64) {
	p.colorSpeed = val
}

func (p *Particle) velocity() Vec2 {
	return Vec2{p.vx, p.vy}
}

func (p *Particle) setVelocity(v Vec2) {
	p.vx, p.vy = v.X, v.Y
}

// stepColor moves the colour phase and reflects it at 0 and 1.
func (p *Particle) stepColor() {
	p.colorFactor += p.colorSpeed
	if p.colorFactor > 1 {
		p.colorSpeed *= -1
		p.colorFactor = 1
	} else if p.colorFactor < 0 {
		p.colorSpeed *= -1
		p.colorFactor = 0
	}
}
