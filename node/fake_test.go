package node

import (
	"bytes"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
)

// fakeConn is an in-memory Conn. Bytes queued with send are what the peer wrote.
type fakeConn struct {
	ip         string
	in         []byte
	out        bytes.Buffer
	closed     bool
	peerClosed bool
	readErr    error
}

func newFakeConn(ip string) *fakeConn {
	return &fakeConn{ip: ip}
}

func (c *fakeConn) send(s string) {
	c.in = append(c.in, s...)
}

func (c *fakeConn) Available() int {
	if c.closed {
		return 0
	}
	return len(c.in)
}

func (c *fakeConn) ReadByte() (byte, error) {
	if c.readErr != nil {
		return 0, c.readErr
	}
	if len(c.in) == 0 {
		return 0, syscall.EAGAIN
	}
	b := c.in[0]
	c.in = c.in[1:]
	return b, nil
}

func (c *fakeConn) WriteByte(b byte) error {
	if c.closed {
		return syscall.EPIPE
	}
	return c.out.WriteByte(b)
}

// Connected mirrors a real socket: pending data is still readable after the peer's FIN.
func (c *fakeConn) Connected() bool {
	if c.closed {
		return false
	}
	return !c.peerClosed || len(c.in) > 0
}

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

func (c *fakeConn) Fd() int {
	return 0
}

func (c *fakeConn) Ip() string {
	return c.ip
}

// fakeAcceptor hands out queued conns, one per Accept call.
type fakeAcceptor struct {
	pending []Conn
	err     error
	closed  bool
}

func (a *fakeAcceptor) push(conns ...*fakeConn) {
	for _, c := range conns {
		a.pending = append(a.pending, c)
	}
}

func (a *fakeAcceptor) Accept() (Conn, error) {
	if a.err != nil {
		return nil, a.err
	}
	if len(a.pending) == 0 {
		return nil, nil
	}
	c := a.pending[0]
	a.pending = a.pending[1:]
	return c, nil
}

func (a *fakeAcceptor) Close() error {
	a.closed = true
	return nil
}

// at returns the mock clock's origin shifted by ms milliseconds.
func at(ms int) time.Time {
	return time.Unix(0, 0).Add(time.Duration(ms) * time.Millisecond)
}

func newTestMultiplexer() (*Multiplexer, *fakeAcceptor, *clock.Mock) {
	clk := clock.NewMock()
	acc := &fakeAcceptor{}
	m := NewMultiplexer(WithClock(clk))
	m.Initialize(acc)
	return m, acc, clk
}
