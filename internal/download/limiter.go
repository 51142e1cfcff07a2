package download

import "context"

// Limiter caps how many image downloads are in flight across the whole
// process. Every chapter and every manga of a run contends on the same
// instance; nothing else is gated by it.
type Limiter struct {
	slots chan struct{}
}

func NewLimiter(size int) *Limiter {
	return &Limiter{slots: make(chan struct{}, size)}
}

// Acquire blocks until a slot is free or the context is done. Every
// successful Acquire must be paired with exactly one Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	select {
	case l.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Limiter) Release() {
	<-l.slots
}
