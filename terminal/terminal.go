package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nsf/termbox-go"

	ball "github.com/esimov/ascii-balls/ball-solver"
)

// Spawner reacts to the mouse being pressed, dragged and released.
type Spawner interface {
	Press(x, y float64)
	Move(x, y float64)
	Release()
}

// Scale is the number of world units covered by one terminal cell.
type Scale struct {
	X, Y float64
}

type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int

	solver  *ball.Solver
	spawner Spawner
	publish func(ball.Frame)
	scale   Scale
	fps     int
	pressed bool
}

// New creates a terminal renderer driving solver. Every rendered frame
// is also handed to publish when it is not nil.
func New(solver *ball.Solver, spawner Spawner, scale Scale, fps int, publish func(ball.Frame)) *Terminal {
	return &Terminal{
		solver:  solver,
		spawner: spawner,
		publish: publish,
		scale:   scale,
		fps:     fps,
	}
}

// Render takes over the terminal and runs the frame loop until Esc is
// pressed or ctx is cancelled.
func (t *Terminal) Render(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("cannot initialize the terminal: %w", err)
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)
	t.reallocBackBuffer(termbox.Size())

	events := make(chan termbox.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go poll(events, done)

	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()
	defer t.spawner.Release()

mainloop:
	for {
		select {
		case <-ctx.Done():
			break mainloop
		case ev := <-events:
			if !t.handle(ev) {
				break mainloop
			}
		case <-ticker.C:
			t.solver.Advance()
			f := t.solver.Frame()
			t.redraw(f)
			if t.publish != nil {
				t.publish(f)
			}
		}
	}
	return nil
}

// poll forwards the blocking termbox events to the frame loop. It stays parked
// in PollEvent once the loop has exited.
func poll(events chan<- termbox.Event, done <-chan struct{}) {
	for {
		ev := termbox.PollEvent()
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handle reacts to a single event and reports whether the loop should go on.
func (t *Terminal) handle(ev termbox.Event) bool {
	switch ev.Type {
	case termbox.EventKey:
		switch {
		case ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC:
			return false
		case ev.Ch == 'r' || ev.Ch == 'R':
			t.solver.Reset()
			log.Println("[TTY] reset")
		}
	case termbox.EventMouse:
		x, y := t.toWorld(ev.MouseX, ev.MouseY)
		switch ev.Key {
		case termbox.MouseLeft:
			if t.pressed {
				t.spawner.Move(x, y)
			} else {
				t.spawner.Press(x, y)
				t.pressed = true
				log.Printf("[TTY] spawning at X:%d Y:%d", ev.MouseX, ev.MouseY)
			}
		case termbox.MouseRelease:
			t.spawner.Release()
			t.pressed = false
		}
	case termbox.EventResize:
		t.reallocBackBuffer(ev.Width, ev.Height)
	case termbox.EventError:
		log.Printf("[TTY] event error: %v", ev.Err)
	}
	return true
}

// The bottom row holds the status bar, so the floor sits just above it.
func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
	t.solver.Resize(float64(w)*t.scale.X, float64(max(h-1, 1))*t.scale.Y)
}

// toWorld maps the centre of a terminal cell to world coordinates.
func (t *Terminal) toWorld(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * t.scale.X, (float64(row) + 0.5) * t.scale.Y
}

func (t *Terminal) redraw(f ball.Frame) {
	rasterize(t.backbuf, t.bbw, t.bbh, t.scale, f)
	drawStatus(t.backbuf, t.bbw, t.bbh, status(f))

	copy(termbox.CellBuffer(), t.backbuf)
	termbox.Flush()
}

func status(f ball.Frame) string {
	return fmt.Sprintf(" balls: %d  frame: %d  [mouse] spawn  [r] reset  [esc] quit ", len(f.Bodies), f.Seq)
}
