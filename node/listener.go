package node

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// acceptWarnInterval bounds how often a persistent accept failure is logged at warn level.
const acceptWarnInterval = 5 * time.Second

// Listener admits at most one pending connection per tick into the pool.
type Listener struct {
	acceptor Acceptor
	pool     *SlotPool
	clock    clock.Clock
	warn     *rate.Limiter
}

func NewListener(acceptor Acceptor, pool *SlotPool, clk clock.Clock) *Listener {
	return &Listener{
		acceptor: acceptor,
		pool:     pool,
		clock:    clk,
		warn:     rate.NewLimiter(rate.Every(acceptWarnInterval), 1),
	}
}

// AcceptIfPending returns the slot the new connection landed in, if any.
func (l *Listener) AcceptIfPending() (int, bool) {
	if l.acceptor == nil {
		return 0, false
	}

	conn, err := l.acceptor.Accept()
	if err != nil {
		if l.warn.AllowN(l.clock.Now(), 1) {
			log.Logger.Warn("accept failed", zap.Error(err))
		} else {
			log.Logger.Debug("accept failed", zap.Error(err))
		}
		return 0, false
	}
	if conn == nil {
		return 0, false
	}

	i := l.pool.Acquire(conn)
	l.pool.attach(i, conn, l.clock.Now())
	log.Logger.Info("client connected", zap.Int("slot", i), zap.String("ip", conn.Ip()))
	return i, true
}
