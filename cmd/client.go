package cmd

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/fzft/go-numeric-display/proto"
)

var (
	ErrRejected = errors.New("message rejected by display")
	ErrNoAck    = errors.New("unexpected reply from display")
)

const DefaultTimeout = 2 * time.Second

// Client talks to a display: every line or probe it sends must be answered
// with a single ACK byte before the next one goes out.
type Client struct {
	conn    net.Conn
	timeout time.Duration
	reply   [1]byte
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	return NewClient(conn, timeout), nil
}

func NewClient(conn net.Conn, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{conn: conn, timeout: timeout}
}

// Probe sends ENQ and waits for the display to acknowledge it.
func (c *Client) Probe() error {
	return c.roundTrip([]byte{proto.ENQ})
}

// Send delivers one line. It must not contain a newline or control byte of its own.
func (c *Client) Send(line string) error {
	if strings.IndexByte(line, proto.Terminator) >= 0 || strings.IndexByte(line, proto.ENQ) >= 0 {
		return fmt.Errorf("line %q contains a protocol control byte", line)
	}
	return c.roundTrip(append([]byte(line), proto.Terminator))
}

func (c *Client) roundTrip(p []byte) error {
	if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(p); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if _, err := c.conn.Read(c.reply[:]); err != nil {
		return fmt.Errorf("read reply: %w", err)
	}

	switch c.reply[0] {
	case proto.ACK:
		return nil
	case proto.NAK:
		return ErrRejected
	default:
		return fmt.Errorf("%w: %#x", ErrNoAck, c.reply[0])
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}
