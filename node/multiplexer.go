package node

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultStatusInterval rate-limits the periodic slot state dump.
const DefaultStatusInterval = 500 * time.Millisecond

// Multiplexer serves several display clients from a single polling loop.
//
// It is not safe for concurrent use: Poll, HasReadyMessage and
// TakeReadyMessage must all be called from the same goroutine.
type Multiplexer struct {
	clock          clock.Clock
	capacity       int
	timeout        time.Duration
	statusInterval time.Duration

	acceptor Acceptor
	pool     *SlotPool
	listener *Listener
	reader   *LineReader
	status   *rate.Limiter
}

type Option func(*Multiplexer)

func WithClock(clk clock.Clock) Option {
	return func(m *Multiplexer) { m.clock = clk }
}

func WithCapacity(n int) Option {
	return func(m *Multiplexer) { m.capacity = n }
}

func WithTimeout(d time.Duration) Option {
	return func(m *Multiplexer) { m.timeout = d }
}

func WithStatusInterval(d time.Duration) Option {
	return func(m *Multiplexer) { m.statusInterval = d }
}

func NewMultiplexer(opts ...Option) *Multiplexer {
	m := &Multiplexer{
		clock:          clock.New(),
		capacity:       DefaultCapacity,
		timeout:        DefaultClientTimeout,
		statusInterval: DefaultStatusInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.pool = NewSlotPool(m.capacity)
	m.reader = NewLineReader(m.pool, m.clock, m.timeout)
	m.listener = NewListener(nil, m.pool, m.clock)
	if m.statusInterval > 0 {
		m.status = rate.NewLimiter(rate.Every(m.statusInterval), 1)
	}
	return m
}

// Initialize attaches the source of new connections. All slots start free.
func (m *Multiplexer) Initialize(acceptor Acceptor) {
	m.acceptor = acceptor
	m.listener = NewListener(acceptor, m.pool, m.clock)
}

// Poll advances the multiplexer by one tick. It never blocks.
func (m *Multiplexer) Poll() {
	m.listener.AcceptIfPending()
	m.reader.ServiceAll()
	m.logSlotStates()
}

func (m *Multiplexer) HasReadyMessage() bool {
	_, ok := m.pool.OldestReady()
	return ok
}

// TakeReadyMessage returns the oldest completed message and frees its slot
// for the next line. Each message is returned exactly once.
func (m *Multiplexer) TakeReadyMessage() (string, bool) {
	i, ok := m.pool.OldestReady()
	if !ok {
		return "", false
	}
	msg := m.pool.take(i)
	log.Logger.Debug("found data in client", zap.Int("slot", i), zap.String("data", msg))
	return msg, true
}

func (m *Multiplexer) Snapshot() []SlotStatus {
	return m.pool.Snapshot()
}

// Close disconnects every client and closes the acceptor.
func (m *Multiplexer) Close() error {
	err := m.pool.CloseAll()
	if m.acceptor != nil {
		err = multierr.Append(err, m.acceptor.Close())
	}
	return err
}

func (m *Multiplexer) logSlotStates() {
	if m.status == nil || !m.status.AllowN(m.clock.Now(), 1) {
		return
	}
	if !log.Logger.Core().Enabled(zap.DebugLevel) {
		return
	}
	for _, st := range m.pool.Snapshot() {
		log.Logger.Debug("slot state",
			zap.Int("slot", st.Index),
			zap.Stringer("state", st.State),
			zap.String("ip", st.Ip),
			zap.Time("lastActivity", st.LastActivity),
			zap.Int("buffered", st.Buffered))
	}
}
