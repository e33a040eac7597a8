package display

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

// Countdown counts whole seconds down to zero on the display.
// It is driven by Tick and is not safe for concurrent use.
type Countdown struct {
	clock   clock.Clock
	display *Display

	total   int // seconds requested, 0 when stopped
	current int // seconds currently shown
	start   time.Time
}

func NewCountdown(d *Display, clk clock.Clock) *Countdown {
	return &Countdown{clock: clk, display: d}
}

// Start shows seconds immediately and begins counting down.
func (c *Countdown) Start(seconds int) error {
	c.start = c.clock.Now()
	c.total = seconds
	c.current = seconds
	return c.display.ShowNumber(int64(seconds), 0)
}

func (c *Countdown) Stop() {
	c.start = time.Time{}
	c.total = 0
	c.current = 0
}

func (c *Countdown) Running() bool {
	return c.total != 0
}

// Remaining returns the seconds currently shown.
func (c *Countdown) Remaining() int {
	return c.current
}

// Tick redraws the display when the remaining whole seconds change and
// stops the countdown once it reaches zero.
func (c *Countdown) Tick(now time.Time) {
	if c.total == 0 {
		return
	}

	remaining := c.total - int(now.Sub(c.start)/time.Second)
	if remaining < 0 {
		remaining = 0
	}
	if remaining != c.current {
		if err := c.display.ShowNumber(int64(remaining), 0); err != nil {
			log.Logger.Warn("countdown redraw failed", zap.Error(err))
		}
		c.current = remaining
	}
	if c.current == 0 {
		log.Logger.Info("countdown finished", zap.Int("seconds", c.total))
		c.Stop()
	}
}
