//go:build linux
// +build linux

package node

import (
	"fmt"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// fdConn is a non-blocking TCP connection driven directly through its file descriptor.
type fdConn struct {
	fd     int
	ip     string
	closed bool
	one    [1]byte
}

func newFdConn(fd int, ip string) *fdConn {
	return &fdConn{fd: fd, ip: ip}
}

func (c *fdConn) Available() int {
	if c.closed {
		return 0
	}
	n, err := unix.IoctlGetInt(c.fd, unix.TIOCINQ)
	if err != nil {
		log.Logger.Debug("TIOCINQ failed", zap.Int("fd", c.fd), zap.Error(err))
		return 0
	}
	return n
}

func (c *fdConn) ReadByte() (byte, error) {
	if c.closed {
		return 0, unix.EBADF
	}
	n, err := unix.Read(c.fd, c.one[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errConnClosed
	}
	return c.one[0], nil
}

func (c *fdConn) WriteByte(b byte) error {
	if c.closed {
		return unix.EBADF
	}
	n, err := unix.Write(c.fd, []byte{b})
	if err != nil {
		return fmt.Errorf("write fd %d: %w", c.fd, err)
	}
	if n != 1 {
		return fmt.Errorf("write fd %d: short write", c.fd)
	}
	return nil
}

// Connected peeks at the socket: a zero-length peek means the peer sent FIN.
func (c *fdConn) Connected() bool {
	if c.closed {
		return false
	}
	var peek [1]byte
	n, _, err := unix.Recvfrom(c.fd, peek[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
	if err != nil {
		return IsTemporaryError(err)
	}
	return n > 0
}

func (c *fdConn) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return CloseFd(c.fd)
}

// Fd returns the file descriptor of the connection.
func (c *fdConn) Fd() int {
	return c.fd
}

// Ip returns the ip of the remote peer.
func (c *fdConn) Ip() string {
	return c.ip
}
