package ball

import (
	"context"
	"time"
)

// Run advances s once per tick until ctx is cancelled and hands every frame to publish.
func Run(ctx context.Context, fps int, s *Solver, publish func(Frame)) error {
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Advance()
			if publish != nil {
				publish(s.Frame())
			}
		}
	}
}
