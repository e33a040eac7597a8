package node

import (
	"bufio"
	"io"
	"time"

	"github.com/fzft/go-numeric-display/log"
	"go.uber.org/zap"
)

// LineSource feeds newline-terminated commands from a stream, such as a
// console on stdin, into a Handler. It is driven as a Housekeeper, so the
// handler only ever runs on the server goroutine.
type LineSource struct {
	name    string
	handler Handler
	lines   <-chan string
}

func NewLineSource(name string, r io.Reader, handler Handler) *LineSource {
	if handler == nil {
		handler = DefaultHandler{}
	}
	lines := make(chan string, DefaultCapacity)
	s := &LineSource{name: name, handler: handler, lines: lines}
	go s.scan(r, lines)
	return s
}

func (s *LineSource) scan(r io.Reader, lines chan<- string) {
	defer close(lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		log.Logger.Warn("line source stopped", zap.String("source", s.name), zap.Error(err))
		return
	}
	log.Logger.Debug("line source closed", zap.String("source", s.name))
}

// Tick dispatches at most one pending line.
func (s *LineSource) Tick(now time.Time) {
	select {
	case line, ok := <-s.lines:
		if !ok {
			s.lines = nil
			return
		}
		if err := s.handler.HandleMessage(line); err != nil {
			log.Logger.Warn("handle message failed",
				zap.String("source", s.name), zap.String("data", line), zap.Error(err))
		}
	default:
	}
}
