package spawner

import (
	"context"
	"math/rand"
	"sync"
	"time"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

// Sink receives the freshly spawned balls.
type Sink interface {
	Spawn(ps ...*ball.Particle)
}

// Options controls how many balls are created and how they look.
type Options struct {
	PerSpawn   int           // balls created per burst
	Rate       time.Duration // interval between bursts while pressed
	Radius     float64
	Jitter     float64 // spread around the anchor, on each axis
	Speed      float64 // spread of the initial velocity, on each axis
	ColorSpeed float64
}

// DefaultOptions spawns three balls every 100ms.
var DefaultOptions = Options{
	PerSpawn:   3,
	Rate:       100 * time.Millisecond,
	Radius:     10,
	Jitter:     20,
	Speed:      10,
	ColorSpeed: ball.DefaultColorSpeed,
}

// Spawner turns a held pointer into a stream of balls. While pressed it
// bursts on a timer at the last known anchor until released.
type Spawner struct {
	opts Options
	sink Sink

	mu     sync.Mutex
	rnd    *rand.Rand
	x, y   float64
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a spawner feeding sink. A nil rnd gets a time seeded source.
func New(sink Sink, opts Options, rnd *rand.Rand) *Spawner {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Spawner{opts: opts, sink: sink, rnd: rnd}
}

// Burst spawns one batch of balls around {x, y} and returns how many were created.
func (s *Spawner) Burst(x, y float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.burst(x, y)
}

func (s *Spawner) burst(x, y float64) int {
	ps := make([]*ball.Particle, s.opts.PerSpawn)
	for i := range ps {
		ps[i] = ball.NewParticle(
			x+(s.rnd.Float64()-0.5)*s.opts.Jitter,
			y+(s.rnd.Float64()-0.5)*s.opts.Jitter,
			(s.rnd.Float64()-0.5)*s.opts.Speed,
			(s.rnd.Float64()-0.5)*s.opts.Speed,
			s.opts.Radius,
		)
		ps[i].SetColorSpeed(s.opts.ColorSpeed)
	}
	s.sink.Spawn(ps...)
	return len(ps)
}

// Press bursts at {x, y} and keeps bursting there until Release.
// Pressing again while active moves the anchor and restarts the timer.
func (s *Spawner) Press(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.burst(x, y)
	s.x, s.y = x, y
	s.restart()
}

// Move re-anchors an active spawner. It does nothing when not pressed.
func (s *Spawner) Move(x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel == nil {
		return
	}
	s.burst(x, y)
	s.x, s.y = x, y
	s.restart()
}

// Release stops the timer and waits until it has exited.
func (s *Spawner) Release() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Active reports whether the spawner is pressed.
func (s *Spawner) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancel != nil
}

// restart replaces the running timer. Must be called with s.mu held.
func (s *Spawner) restart() {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go s.repeat(ctx, done)
}

func (s *Spawner) repeat(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.opts.Rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			// a restart may have raced the tick
			if ctx.Err() == nil {
				s.burst(s.x, s.y)
			}
			s.mu.Unlock()
		}
	}
}
