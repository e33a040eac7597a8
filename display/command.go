package display

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

// DefaultDecimals is the number of fractional digits plain numbers are shown with.
const DefaultDecimals = 2

var ErrInvalidCommand = errors.New("invalid command")

// Dispatcher turns received lines into display actions:
//
//	CD<n>   count down n seconds
//	CLR     clear the display
//	RSTNW   forget the network settings
//	<n>     show the integer n, scaled by the configured decimals
type Dispatcher struct {
	display      *Display
	countdown    *Countdown
	decimals     int
	resetNetwork func() error
	min, max     int64
}

type DispatcherOption func(*Dispatcher)

func WithDecimals(n int) DispatcherOption {
	return func(d *Dispatcher) { d.decimals = n }
}

// WithNetworkReset sets the action run for RSTNW.
func WithNetworkReset(fn func() error) DispatcherOption {
	return func(d *Dispatcher) { d.resetNetwork = fn }
}

func NewDispatcher(display *Display, countdown *Countdown, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		display:   display,
		countdown: countdown,
		decimals:  DefaultDecimals,
	}
	for _, opt := range opts {
		opt(d)
	}

	// 4 digits hold 0..9999, or -999 with the sign taking a digit.
	d.max = 1
	for i := 0; i < display.Digits(); i++ {
		d.max *= 10
	}
	d.min = -(d.max/10 - 1)
	d.max--
	return d
}

// HandleMessage implements node.Handler.
func (d *Dispatcher) HandleMessage(msg string) error {
	cmd := strings.TrimSpace(msg)

	switch {
	case strings.HasPrefix(cmd, "CD"):
		seconds, err := strconv.Atoi(strings.TrimSpace(cmd[2:]))
		if err != nil || seconds < 0 || int64(seconds) > d.max {
			return fmt.Errorf("%w: countdown %q", ErrInvalidCommand, cmd)
		}
		log.Logger.Info("starting countdown", zap.Int("seconds", seconds))
		return d.countdown.Start(seconds)

	case cmd == "CLR":
		log.Logger.Info("clearing display")
		d.countdown.Stop()
		return d.display.Clear()

	case cmd == "RSTNW":
		if d.resetNetwork == nil {
			return fmt.Errorf("%w: network reset not supported", ErrInvalidCommand)
		}
		log.Logger.Warn("received a request to clear network settings")
		return d.resetNetwork()
	}

	n, err := strconv.ParseInt(cmd, 10, 64)
	if err != nil || n < d.min || n > d.max {
		return fmt.Errorf("%w: %q", ErrInvalidCommand, cmd)
	}
	d.countdown.Stop()
	log.Logger.Info("showing number", zap.Int64("value", n))
	return d.display.ShowNumber(n, d.decimals)
}
