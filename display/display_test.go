package display

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSink struct {
	frames []Frame
	err    error
}

func (s *recordSink) Latch(frame Frame) error {
	s.frames = append(s.frames, frame)
	return s.err
}

func (s *recordSink) last() string {
	if len(s.frames) == 0 {
		return ""
	}
	return s.frames[len(s.frames)-1].String()
}

func TestEncode(t *testing.T) {
	assert.Equal(t, SegB|SegC, Encode(1, false))
	assert.Equal(t, byte(0x7f), Encode(8, false))
	assert.Equal(t, byte(0xff), Encode(8, true))
	assert.Equal(t, SegG, Encode(GlyphMinus, false))
	assert.Equal(t, SegG|SegE|SegD, Encode(GlyphC, false))
	assert.Equal(t, byte(0), Encode(GlyphBlank, false))
	assert.Equal(t, SegDP, Encode('x', true))
}

func TestEncodeDecodeDigits(t *testing.T) {
	for d := byte(0); d < 10; d++ {
		r, dp := decode(Encode(d, d%2 == 0))
		assert.Equal(t, rune('0'+d), r)
		assert.Equal(t, d%2 == 0, dp)
	}
}

func TestShowNumber(t *testing.T) {
	tests := []struct {
		value    int64
		decimals int
		want     string
	}{
		{42, 2, " 0.42"},
		{1234, 2, "12.34"},
		{5, 2, " 0.05"},
		{7, 0, "   7"},
		{0, 0, "   0"},
		{120, 0, " 120"},
		{-5, 2, "-0.05"},
		{-999, 0, "-999"},
		{-42, 0, "- 42"},
		{12345, 0, "2345"},
	}
	for _, tt := range tests {
		sink := &recordSink{}
		d := New(4, sink)
		require.NoError(t, d.ShowNumber(tt.value, tt.decimals))
		assert.Equal(t, tt.want, sink.last(), "ShowNumber(%d, %d)", tt.value, tt.decimals)
		assert.Len(t, d.Current(), 4)
	}
}

func TestClear(t *testing.T) {
	sink := &recordSink{}
	d := New(0, sink)
	require.NoError(t, d.ShowNumber(88, 0))
	require.NoError(t, d.Clear())
	assert.Equal(t, "    ", sink.last())
	assert.Equal(t, Frame{0, 0, 0, 0}, d.Current())
}

func TestLatchError(t *testing.T) {
	d := New(4, &recordSink{err: errors.New("bus fault")})
	err := d.ShowNumber(1, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bus fault")
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	d := New(4, NewWriterSink(&buf))
	require.NoError(t, d.ShowNumber(1234, 2))
	assert.Equal(t, "[12.34]\n", buf.String())
}

func TestLogSink(t *testing.T) {
	assert.NoError(t, LogSink{}.Latch(Frame{Encode(1, false)}))
}
