package node

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHousekeeper struct {
	ticks []time.Time
}

func (h *recordingHousekeeper) Tick(now time.Time) {
	h.ticks = append(h.ticks, now)
}

func TestServerStepDispatchesOneMessagePerTick(t *testing.T) {
	clk := clock.NewMock()
	acc := &fakeAcceptor{}
	var got []string
	handler := HandlerFunc(func(msg string) error {
		got = append(got, msg)
		if msg == "bad" {
			return errors.New("bad input")
		}
		return nil
	})
	hk := &recordingHousekeeper{}

	s := NewServer(":0", handler,
		WithServerClock(clk),
		WithMultiplexer(NewMultiplexer(WithClock(clk))),
		WithHousekeeper(hk))
	s.mux.Initialize(acc)

	a, b := newFakeConn("a"), newFakeConn("b")
	acc.push(a, b)
	s.step()
	clk.Add(time.Millisecond)
	a.send("bad\n")
	b.send("12\n")
	s.step()
	assert.Equal(t, []string{"bad"}, got)

	s.step()
	assert.Equal(t, []string{"bad", "12"}, got)

	s.step()
	assert.Len(t, got, 2)
	assert.Len(t, hk.ticks, 4)
}

func TestServerServeAcceptorStopsOnCancel(t *testing.T) {
	clk := clock.NewMock()
	acc := &fakeAcceptor{}
	c := newFakeConn("a")
	acc.push(c)

	s := NewServer(":0", nil, WithServerClock(clk), WithTickInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ServeAcceptor(ctx, acc) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, acc.closed)
}

func TestNewServerDefaults(t *testing.T) {
	s := NewServer(":23", nil)
	assert.IsType(t, DefaultHandler{}, s.handler)
	assert.NotNil(t, s.mux)
	assert.Equal(t, DefaultTickInterval, s.tickInterval)
	assert.Equal(t, DefaultAliveInterval, s.aliveInterval)
	assert.NoError(t, s.handler.HandleMessage("hello"))
}
