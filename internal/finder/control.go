package finder

import (
	"context"
	"sync"
)

// Controller lets another goroutine pause, resume or stop a running transfer.
// The executor consults it only between files. It is safe for concurrent use.
type Controller struct {
	mu      sync.Mutex
	cond    *sync.Cond
	paused  bool
	stopped bool
}

// NewController creates a controller in the running state.
func NewController() *Controller {
	c := &Controller{}
	c.cond = sync.NewCond(&c.mu)

	return c
}

// Pause makes the next Checkpoint block until Resume or Stop.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paused = true
}

// Resume releases a paused transfer.
func (c *Controller) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paused = false
	c.cond.Broadcast()
}

// Stop ends the transfer before its next file. Stop is final.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.cond.Broadcast()
}

// Paused reports whether a pause is in effect.
func (c *Controller) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.paused && !c.stopped
}

// Stopped reports whether Stop was called.
func (c *Controller) Stopped() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stopped
}

// Checkpoint blocks while paused and returns whether work may continue.
// It returns false once Stop was called or ctx is done.
func (c *Controller) Checkpoint(ctx context.Context) bool {
	c.mu.Lock()

	if !c.paused || c.stopped {
		defer c.mu.Unlock()
		return !c.stopped && ctx.Err() == nil
	}

	c.mu.Unlock()

	// Wake the waiter below when ctx ends
	release := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.cond.Broadcast()
	})
	defer release()

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.paused && !c.stopped && ctx.Err() == nil {
		c.cond.Wait()
	}

	return !c.stopped && ctx.Err() == nil
}
