package services

import (
	"sync"
	"time"
)

// Countdown ticks a seconds counter down to zero on its own goroutine.
// Stop is safe to call more than once and after the countdown finished.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}
}

func StartCountdown(seconds int, tick time.Duration) *Countdown {
	c := &Countdown{
		remaining: seconds,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	if seconds <= 0 {
		c.remaining = 0
		close(c.done)
		return c
	}
	go c.run(tick)
	return c
}

func (c *Countdown) run(tick time.Duration) {
	defer close(c.done)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.remaining--
			left := c.remaining
			c.mu.Unlock()
			if left <= 0 {
				return
			}
		}
	}
}

func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remaining
}

// Stop cancels the countdown and waits for its goroutine to exit.
func (c *Countdown) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
	<-c.done
}

// Done is closed when the countdown reached zero or was stopped.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
