package node

import (
	"time"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

// Handler receives every complete message taken from the multiplexer.
type Handler interface {
	HandleMessage(msg string) error
}

// HandlerFunc adapts an ordinary function to the Handler interface.
type HandlerFunc func(msg string) error

func (f HandlerFunc) HandleMessage(msg string) error {
	return f(msg)
}

// Housekeeper is called once per server tick, after message dispatch.
type Housekeeper interface {
	Tick(now time.Time)
}

// DefaultHandler only logs what it receives.
type DefaultHandler struct{}

func (DefaultHandler) HandleMessage(msg string) error {
	log.Logger.Info("read data", zap.String("data", msg))
	return nil
}
