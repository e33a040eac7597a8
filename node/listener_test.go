package node

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/fzft/go-numeric-display/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := log.Logger
	log.Logger = zap.New(core)
	t.Cleanup(func() { log.Logger = prev })
	return logs
}

func TestListenerAcceptErrorIsNoop(t *testing.T) {
	clk := clock.NewMock()
	pool := NewSlotPool(2)
	acc := &fakeAcceptor{err: errors.New("epoll wait: bad file descriptor")}
	l := NewListener(acc, pool, clk)

	i, ok := l.AcceptIfPending()
	assert.False(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, pool.Connected())

	acc.err = nil
	acc.push(newFakeConn("a"))
	i, ok = l.AcceptIfPending()
	assert.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, pool.Connected())
}

func TestListenerAcceptErrorWarnIsRateLimited(t *testing.T) {
	logs := observeLogs(t)
	clk := clock.NewMock()
	l := NewListener(&fakeAcceptor{err: errors.New("boom")}, NewSlotPool(1), clk)

	for n := 0; n < 3; n++ {
		l.AcceptIfPending()
		clk.Add(10 * time.Millisecond)
	}
	failures := logs.FilterMessage("accept failed")
	assert.Equal(t, 3, failures.Len())
	assert.Equal(t, 1, failures.FilterLevelExact(zapcore.WarnLevel).Len())

	clk.Add(acceptWarnInterval)
	l.AcceptIfPending()
	assert.Equal(t, 2, logs.FilterMessage("accept failed").FilterLevelExact(zapcore.WarnLevel).Len())
}
