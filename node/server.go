package node

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

const (
	DefaultTickInterval  = 10 * time.Millisecond
	DefaultAliveInterval = 5000 * time.Millisecond
)

// Server drives a Multiplexer from a fixed-rate tick and hands one ready
// message per tick to its Handler.
type Server struct {
	addr          string
	handler       Handler
	mux           *Multiplexer
	clock         clock.Clock
	tickInterval  time.Duration
	aliveInterval time.Duration
	housekeepers  []Housekeeper

	started   time.Time
	lastAlive time.Time
}

type ServerOption func(*Server)

func WithMultiplexer(m *Multiplexer) ServerOption {
	return func(s *Server) { s.mux = m }
}

func WithServerClock(clk clock.Clock) ServerOption {
	return func(s *Server) { s.clock = clk }
}

func WithTickInterval(d time.Duration) ServerOption {
	return func(s *Server) { s.tickInterval = d }
}

func WithAliveInterval(d time.Duration) ServerOption {
	return func(s *Server) { s.aliveInterval = d }
}

func WithHousekeeper(h Housekeeper) ServerOption {
	return func(s *Server) { s.housekeepers = append(s.housekeepers, h) }
}

func NewServer(addr string, handler Handler, opts ...ServerOption) *Server {
	s := &Server{
		addr:          addr,
		handler:       handler,
		clock:         clock.New(),
		tickInterval:  DefaultTickInterval,
		aliveInterval: DefaultAliveInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.handler == nil {
		s.handler = DefaultHandler{}
	}
	if s.mux == nil {
		s.mux = NewMultiplexer(WithClock(s.clock))
	}
	return s
}

// ServeAcceptor ticks until ctx is done. The multiplexer, and with it the
// acceptor and every client, is closed on return.
func (s *Server) ServeAcceptor(ctx context.Context, acceptor Acceptor) error {
	s.mux.Initialize(acceptor)
	defer func() {
		if err := s.mux.Close(); err != nil {
			log.Logger.Warn("closing clients", zap.Error(err))
		}
	}()

	s.started = s.clock.Now()
	s.lastAlive = s.started

	ticker := s.clock.Ticker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Logger.Info("server stopped", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
			s.step()
		}
	}
}

// step runs one tick: poll, dispatch at most one message, housekeeping.
func (s *Server) step() {
	s.mux.Poll()

	if s.mux.HasReadyMessage() {
		msg, _ := s.mux.TakeReadyMessage()
		log.Logger.Info("received data", zap.String("data", msg))
		if err := s.handler.HandleMessage(msg); err != nil {
			log.Logger.Warn("invalid data received", zap.String("data", msg), zap.Error(err))
		}
	}

	now := s.clock.Now()
	for _, h := range s.housekeepers {
		h.Tick(now)
	}

	if now.Sub(s.lastAlive) > s.aliveInterval {
		log.Logger.Info("alive", zap.Duration("uptime", now.Sub(s.started).Truncate(time.Second)))
		s.lastAlive = now
	}
}
