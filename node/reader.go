package node

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"github.com/fzft/go-numeric-display/proto"
	"go.uber.org/zap"
)

// DefaultClientTimeout is how long a partial line may sit idle before it is dropped.
const DefaultClientTimeout = 5000 * time.Millisecond

// LineReader assembles newline-terminated messages for every connected slot.
// It reads at most one line per slot per tick.
type LineReader struct {
	pool    *SlotPool
	clock   clock.Clock
	timeout time.Duration
}

func NewLineReader(pool *SlotPool, clk clock.Clock, timeout time.Duration) *LineReader {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	return &LineReader{pool: pool, clock: clk, timeout: timeout}
}

// ServiceAll services every connected slot once.
func (r *LineReader) ServiceAll() {
	for i := range r.pool.slots {
		if r.pool.slots[i].connected {
			r.Service(i)
		}
	}
}

func (r *LineReader) Service(i int) {
	s := &r.pool.slots[i]

	if !s.conn.Connected() {
		log.Logger.Info("client closed connection", zap.Int("slot", i), zap.String("ip", s.conn.Ip()))
		r.pool.Reset(i)
		r.pool.Disconnect(i)
		return
	}

	// A stale buffer, partial or complete but never taken, is dropped. The
	// connection stays open.
	if len(s.buffer) > 0 && r.clock.Since(s.lastActivity) > r.timeout {
		log.Logger.Info("no data received before timeout, resetting buffer",
			zap.Int("slot", i), zap.Duration("timeout", r.timeout), zap.Int("dropped", len(s.buffer)))
		r.pool.Reset(i)
		return
	}

	for !s.complete && s.conn.Available() > 0 {
		c, err := s.conn.ReadByte()
		if err != nil {
			if IsTemporaryError(err) {
				return
			}
			if !isPeerGone(err) {
				log.Logger.Warn("read failed, dropping client", zap.Int("slot", i), zap.Error(err))
			}
			r.pool.Disconnect(i)
			return
		}
		s.lastActivity = r.clock.Now()

		switch c {
		case proto.ENQ:
			r.ack(i)
			return
		case proto.Terminator:
			s.complete = true
			log.Logger.Debug("received message", zap.Int("slot", i), zap.ByteString("data", s.buffer))
			r.ack(i)
			return
		default:
			s.buffer = append(s.buffer, c)
		}
	}
}

// ack write failures are left for the next tick's disconnect detection.
func (r *LineReader) ack(i int) {
	if err := r.pool.slots[i].conn.WriteByte(proto.ACK); err != nil {
		log.Logger.Debug("ack failed", zap.Int("slot", i), zap.Error(err))
	}
}
