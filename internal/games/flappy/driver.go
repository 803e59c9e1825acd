package flappy

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/ghostbird/internal/core"
)

// idleWait bounds how long Serve sleeps when no timer is pending.
const idleWait = time.Second

// Serve drives the session in real time until ctx is done, inputs is closed or
// an ActionQuit arrives. Before every input the timeline is caught up to the
// wall clock, so inputs land between the ticks they arrived between.
// The session is closed when Serve returns.
func (s *Session) Serve(ctx context.Context, inputs <-chan core.Action) {
	defer s.Close()

	timer := time.NewTimer(idleWait)
	defer timer.Stop()

	for {
		s.tl.AdvanceTo(time.Now())

		wait := idleWait
		if at, ok := s.tl.Next(); ok {
			wait = max(time.Until(at), 0)
		}
		timer.Reset(wait)

		select {
		case <-ctx.Done():
			return

		case a, ok := <-inputs:
			if !ok {
				return
			}
			s.tl.AdvanceTo(time.Now())
			if !s.Handle(a) {
				return
			}

		case <-timer.C:
		}
	}
}

// Feed carries published frames from the engine goroutine to a renderer.
// It holds only the most recent frames; when the renderer falls behind, the
// oldest pending frame is dropped so the engine never blocks.
type Feed[T any] struct {
	frames   chan T
	done     chan struct{}
	doneOnce sync.Once
}

// NewFeed creates a feed buffering up to size frames.
func NewFeed[T any](size int) *Feed[T] {
	if size < 1 {
		size = 1
	}
	return &Feed[T]{
		frames: make(chan T, size),
		done:   make(chan struct{}),
	}
}

// Publish offers a frame to the renderer. It never blocks.
func (f *Feed[T]) Publish(frame T) {
	select {
	case <-f.done:
		return
	default:
	}

	select {
	case f.frames <- frame:
	default:
		// Full: drop the oldest and retry once
		select {
		case <-f.frames:
		default:
		}
		select {
		case f.frames <- frame:
		default:
		}
	}
}

// Frames returns the channel the renderer reads from.
func (f *Feed[T]) Frames() <-chan T {
	return f.frames
}

// Done is closed once the feed is closed.
func (f *Feed[T]) Done() <-chan struct{} {
	return f.done
}

// Close marks the feed as finished. Further publishes are ignored.
func (f *Feed[T]) Close() {
	f.doneOnce.Do(func() {
		close(f.done)
	})
}
