package spawner

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

type collector struct {
	mu sync.Mutex
	ps []*ball.Particle
}

func (c *collector) Spawn(ps ...*ball.Particle) {
	c.mu.Lock()
	c.ps = append(c.ps, ps...)
	c.mu.Unlock()
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ps)
}

func TestBurstRanges(t *testing.T) {
	c := &collector{}
	s := New(c, DefaultOptions, rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		if n := s.Burst(200, 300); n != 3 {
			t.Fatalf("Burst created %d balls, want 3", n)
		}
	}
	if c.count() != 150 {
		t.Fatalf("sink got %d balls, want 150", c.count())
	}
	for i, p := range c.ps {
		if p.GetX() < 190 || p.GetX() > 210 || p.GetY() < 290 || p.GetY() > 310 {
			t.Errorf("ball %d at (%f, %f), want within 10 of (200, 300)", i, p.GetX(), p.GetY())
		}
		if p.GetVx() < -5 || p.GetVx() > 5 || p.GetVy() < -5 || p.GetVy() > 5 {
			t.Errorf("ball %d velocity (%f, %f) outside [-5, 5]", i, p.GetVx(), p.GetVy())
		}
		if p.GetRadius() != 10 {
			t.Errorf("ball %d radius %f, want 10", i, p.GetRadius())
		}
	}
}

func TestPressRepeatsUntilRelease(t *testing.T) {
	c := &collector{}
	opts := DefaultOptions
	opts.Rate = 5 * time.Millisecond
	s := New(c, opts, nil)

	s.Press(100, 100)
	if c.count() != 3 {
		t.Fatalf("press spawned %d balls immediately, want 3", c.count())
	}
	if !s.Active() {
		t.Fatal("spawner not active after press")
	}

	deadline := time.Now().Add(2 * time.Second)
	for c.count() < 9 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Release()
	if s.Active() {
		t.Fatal("spawner still active after release")
	}

	n := c.count()
	if n < 9 {
		t.Fatalf("timer produced %d balls, want at least 9", n)
	}
	time.Sleep(30 * time.Millisecond)
	if c.count() != n {
		t.Errorf("balls kept spawning after release: %d -> %d", n, c.count())
	}
}

func TestMoveReanchors(t *testing.T) {
	c := &collector{}
	opts := DefaultOptions
	opts.Rate = time.Hour
	s := New(c, opts, nil)

	s.Move(500, 500)
	if c.count() != 0 {
		t.Fatal("Move spawned while released")
	}

	s.Press(100, 100)
	s.Move(500, 500)
	s.Release()

	if c.count() != 6 {
		t.Fatalf("got %d balls, want 6", c.count())
	}
	for _, p := range c.ps[3:] {
		if p.GetX() < 490 || p.GetX() > 510 {
			t.Errorf("moved burst at x = %f, want near 500", p.GetX())
		}
	}
}

func TestReleaseWithoutPress(t *testing.T) {
	s := New(&collector{}, DefaultOptions, nil)
	s.Release()
	if s.Active() {
		t.Error("spawner active without press")
	}
}
