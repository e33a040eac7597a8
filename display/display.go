package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fzft/go-numeric-display/log"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

const DefaultDigits = 4

// Frame holds the segment pattern of every digit, left to right.
type Frame []byte

func (f Frame) String() string {
	var b strings.Builder
	for _, segments := range f {
		r, dp := decode(segments)
		b.WriteRune(r)
		if dp {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Sink latches a complete frame onto the output.
type Sink interface {
	Latch(frame Frame) error
}

type Display struct {
	digits  int
	sink    Sink
	current Frame
}

func New(digits int, sink Sink) *Display {
	if digits <= 0 {
		digits = DefaultDigits
	}
	return &Display{digits: digits, sink: sink, current: make(Frame, digits)}
}

func (d *Display) Digits() int {
	return d.digits
}

// Current returns a copy of the last latched frame.
func (d *Display) Current() Frame {
	return append(Frame(nil), d.current...)
}

// Clear turns every segment of every digit off.
func (d *Display) Clear() error {
	return d.latch(make(Frame, d.digits))
}

// ShowNumber shows value with a decimal point after the given number of
// fractional digits. Zeros left of the decimal digit are blanked, and a
// negative value gives up its leftmost digit to the minus sign.
// Digits that do not fit are dropped.
func (d *Display) ShowNumber(value int64, decimals int) error {
	negative := value < 0
	width := d.digits
	magnitude := uint64(value)
	if negative {
		width--
		magnitude = uint64(-(value + 1)) + 1
	}

	shifted := make([]byte, 0, d.digits)
	for x := 0; x < width; x++ {
		glyph := byte(magnitude % 10)
		if glyph == 0 && magnitude == 0 && x > decimals {
			glyph = GlyphBlank
		}
		shifted = append(shifted, Encode(glyph, x == decimals && decimals > 0))
		magnitude /= 10
	}
	if negative {
		shifted = append(shifted, Encode(GlyphMinus, false))
	}

	frame := make(Frame, len(shifted))
	for i, segments := range shifted {
		frame[len(shifted)-1-i] = segments
	}
	return d.latch(frame)
}

func (d *Display) latch(frame Frame) error {
	d.current = frame
	if d.sink == nil {
		return nil
	}
	if err := d.sink.Latch(frame); err != nil {
		return fmt.Errorf("latch frame %q: %w", frame, err)
	}
	return nil
}

// WriterSink prints frames as text. On a terminal the frame is redrawn in place.
type WriterSink struct {
	w   io.Writer
	tty bool
}

func NewWriterSink(w io.Writer) *WriterSink {
	s := &WriterSink{w: w}
	if f, ok := w.(*os.File); ok {
		s.tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return s
}

func (s *WriterSink) Latch(frame Frame) error {
	var err error
	if s.tty {
		_, err = fmt.Fprintf(s.w, "\r[%s]", frame)
	} else {
		_, err = fmt.Fprintf(s.w, "[%s]\n", frame)
	}
	return err
}

// LogSink records every frame in the log.
type LogSink struct{}

func (LogSink) Latch(frame Frame) error {
	log.Logger.Info("display", zap.Stringer("frame", frame), zap.Binary("segments", frame))
	return nil
}
