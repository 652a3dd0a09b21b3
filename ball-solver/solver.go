package ball

import "sync"

// Default physics constants.
const (
	DefaultGravity  = 0.2
	DefaultFriction = 0.99
)

// Options configures a Solver.
type Options struct {
	Gravity  float64
	Friction float64
	Bounds   Bounds
	Model    Model
	Palette  Palette
}

// Body is the render-facing view of a particle.
type Body struct {
	X, Y    float64
	Radius  float64
	R, G, B uint8
}

// Frame is an immutable snapshot of the world after an Advance.
type Frame struct {
	Seq    uint64
	Width  float64
	Height float64
	Bodies []Body
}

type command func(s *Solver)

// Solver owns the particle store and the physics constants and advances
// the simulation one frame at a time.
//
// Advance, Frame, Count and IsEmpty belong to the frame goroutine.
// Spawn, Reset and Resize may be called from anywhere: they are queued and
// applied at the start of the next Advance.
type Solver struct {
	gravity  float64
	friction float64
	bounds   Bounds
	model    Model
	palette  Palette

	store Store
	seq   uint64

	mu      sync.Mutex
	pending []command
}

// NewSolver creates a solver with an empty store.
func NewSolver(o Options) *Solver {
	return &Solver{
		gravity:  o.Gravity,
		friction: o.Friction,
		bounds:   o.Bounds,
		model:    o.Model,
		palette:  o.Palette,
	}
}

// Spawn queues the particles to be appended at the next frame boundary.
func (s *Solver) Spawn(ps ...*Particle) {
	s.enqueue(func(s *Solver) {
		s.store.Append(ps...)
	})
}

// Reset queues the removal of every particle.
func (s *Solver) Reset() {
	s.enqueue(func(s *Solver) {
		s.store.Clear()
	})
}

// Resize queues a change of the world bounds.
func (s *Solver) Resize(width, height float64) {
	s.enqueue(func(s *Solver) {
		s.bounds = Bounds{Width: width, Height: height}
	})
}

func (s *Solver) enqueue(c command) {
	s.mu.Lock()
	s.pending = append(s.pending, c)
	s.mu.Unlock()
}

// drain applies the queued commands in submission order.
func (s *Solver) drain() {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, c := range pending {
		c(s)
	}
}

// Advance moves the world forward by one frame. Every ball is integrated and then
// immediately tested against the balls after it, so ball j still holds its previous
// position when ball i < j checks it.
func (s *Solver) Advance() {
	s.drain()

	particles := s.store.Particles()
	for i, p := range particles {
		Integrate(p, s.gravity, s.friction, s.bounds)
		p.stepColor()
		collide(particles, i, s.model)
	}
	s.seq++
}

// Count returns the number of live balls.
func (s *Solver) Count() int {
	return s.store.Len()
}

// IsEmpty reports whether there are no live balls.
func (s *Solver) IsEmpty() bool {
	return s.store.IsEmpty()
}

// Bounds returns the current world size.
func (s *Solver) Bounds() Bounds {
	return s.bounds
}

// Store gives direct access to the particle store.
func (s *Solver) Store() *Store {
	return &s.store
}

// Frame snapshots the current state for the renderers.
func (s *Solver) Frame() Frame {
	f := Frame{
		Seq:    s.seq,
		Width:  s.bounds.Width,
		Height: s.bounds.Height,
		Bodies: make([]Body, s.store.Len()),
	}
	for i, p := range s.store.Particles() {
		r, g, b := s.palette.At(p.colorFactor)
		f.Bodies[i] = Body{X: p.x, Y: p.y, Radius: p.radius, R: r, G: g, B: b}
	}
	return f
}
