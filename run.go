package screen

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrQuit can be returned from a Run callback to stop the loop cleanly.
// Run swallows it and returns nil.
var ErrQuit = errors.New("screen: quit")

// inputPollInterval is how long the input pump waits per poll so it can
// notice context cancellation.
const inputPollInterval = 50 * time.Millisecond

// Run drives a complete application loop: it initializes the screen, pumps
// input events to onEvent, calls render at the given frame interval
// followed by a Refresh, and guarantees the terminal is restored on the way
// out. Resize events are applied to the screen before onEvent sees them.
// Run returns when the context is cancelled or a callback errors; ErrQuit
// and context cancellation report as nil.
func Run(ctx context.Context, s *Screen, frame time.Duration, onEvent func(Event) error, render func(*Screen) error) error {
	if frame <= 0 {
		frame = 16 * time.Millisecond
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Close()

	g, ctx := errgroup.WithContext(ctx)
	events := make(chan Event, 16)

	g.Go(func() error {
		if s.reader == nil {
			<-ctx.Done()
			return ctx.Err()
		}
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			ev, ok := s.reader.PollEvent(inputPollInterval)
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(frame)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case ev := <-events:
				if rz, isResize := ev.(ResizeEvent); isResize {
					s.applyResize(rz.Width, rz.Height)
				}
				if onEvent != nil {
					if err := onEvent(ev); err != nil {
						return err
					}
				}
			case <-ticker.C:
				if render != nil {
					if err := render(s); err != nil {
						return err
					}
				}
				if err := s.Refresh(); err != nil {
					return err
				}
			}
		}
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}
