//go:build linux
// +build linux

package node

import (
	"context"
	"net"
	"os/signal"
	"syscall"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

// Run listens on the configured address and serves until SIGINT, SIGTERM or SIGQUIT.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		log.Logger.Error("listen error", zap.Error(err))
		return err
	}
	defer ln.Close()

	log.Logger.Info("listening on", zap.String("addr", ln.Addr().String()))
	err = s.Serve(ctx, ln)
	log.Logger.Info("shutting down server")
	return err
}

// Serve serves connections from ln until ctx is done. ln stays owned by the caller.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	acceptor, err := NewTCPAcceptor(ln)
	if err != nil {
		return err
	}
	return s.ServeAcceptor(ctx, acceptor)
}
