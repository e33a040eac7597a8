//go:build linux
// +build linux

package node

import (
	"fmt"
	"net"
	"os"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// TCPAcceptor accepts connections from a TCP listener without ever blocking:
// the listening fd is polled through epoll with a zero timeout.
type TCPAcceptor struct {
	*Registry
	file     *os.File // keeps the duplicated listener fd alive
	listenFD int
	events   []unix.EpollEvent
}

func NewTCPAcceptor(ln net.Listener) (*TCPAcceptor, error) {
	tcpLn, ok := ln.(*net.TCPListener)
	if !ok {
		return nil, fmt.Errorf("unsupported listener type %T", ln)
	}

	f, err := tcpLn.File()
	if err != nil {
		return nil, fmt.Errorf("get listener fd: %w", err)
	}
	lnFd := int(f.Fd())

	if err := unix.SetNonblock(lnFd, true); err != nil {
		f.Close()
		return nil, fmt.Errorf("set nonblock error for fd %d: %w", lnFd, err)
	}

	r, err := NewRegistry()
	if err != nil {
		f.Close()
		return nil, err
	}

	// Register the listener to epoll for read events
	if err := r.registerRead(lnFd); err != nil {
		r.Close()
		f.Close()
		return nil, err
	}

	return &TCPAcceptor{
		Registry: r,
		file:     f,
		listenFD: lnFd,
		events:   make([]unix.EpollEvent, 1),
	}, nil
}

// Accept returns nil, nil when no connection is pending.
func (a *TCPAcceptor) Accept() (Conn, error) {
	fds, err := a.ready(a.events, 0)
	if err != nil {
		return nil, err
	}
	if len(fds) == 0 {
		return nil, nil
	}

	connFd, sa, err := unix.Accept4(a.listenFD, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
	if err != nil {
		// Another accept may have raced us to the connection.
		if IsTemporaryError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("accept error: %w", err)
	}

	ip := sockaddrIP(sa)
	log.Logger.Debug("new connection", zap.Int("fd", connFd), zap.String("ip", ip))
	return newFdConn(connFd, ip), nil
}

// Close order: epoll registration, epoll fd, duplicated listener fd.
// The net.Listener passed to NewTCPAcceptor stays owned by the caller.
func (a *TCPAcceptor) Close() error {
	return multierr.Combine(a.Registry.Close(), a.file.Close())
}

func sockaddrIP(sa unix.Sockaddr) string {
	switch addr := sa.(type) {
	case *unix.SockaddrInet4:
		return net.IPv4(addr.Addr[0], addr.Addr[1], addr.Addr[2], addr.Addr[3]).String()
	case *unix.SockaddrInet6:
		return net.IP(addr.Addr[:]).String()
	default:
		return ""
	}
}
