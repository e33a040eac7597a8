package display

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	clk := clock.NewMock()
	sink := &recordSink{}
	c := NewCountdown(New(4, sink), clk)

	require.NoError(t, c.Start(3))
	assert.True(t, c.Running())
	assert.Equal(t, "   3", sink.last())

	clk.Add(999 * time.Millisecond)
	c.Tick(clk.Now())
	assert.Len(t, sink.frames, 1)

	clk.Add(time.Millisecond)
	c.Tick(clk.Now())
	assert.Equal(t, "   2", sink.last())
	assert.Equal(t, 2, c.Remaining())

	clk.Add(2 * time.Second)
	c.Tick(clk.Now())
	assert.Equal(t, "   0", sink.last())
	assert.False(t, c.Running())

	clk.Add(time.Second)
	c.Tick(clk.Now())
	assert.Len(t, sink.frames, 3)
}

func TestCountdownCatchesUpAfterLag(t *testing.T) {
	clk := clock.NewMock()
	sink := &recordSink{}
	c := NewCountdown(New(4, sink), clk)

	require.NoError(t, c.Start(2))
	clk.Add(10 * time.Second)
	c.Tick(clk.Now())
	assert.Equal(t, "   0", sink.last())
	assert.False(t, c.Running())
}

func TestCountdownStop(t *testing.T) {
	clk := clock.NewMock()
	sink := &recordSink{}
	c := NewCountdown(New(4, sink), clk)

	require.NoError(t, c.Start(5))
	c.Stop()
	clk.Add(2 * time.Second)
	c.Tick(clk.Now())
	assert.Len(t, sink.frames, 1)
	assert.False(t, c.Running())
}
