package node

import (
	"errors"
	"io"
	"syscall"
)

var errConnClosed = errors.New("connection closed by peer")

// IsTemporaryError checks if the error is temporary, e.g., EAGAIN or EWOULDBLOCK.
func IsTemporaryError(err error) bool {
	return errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EINTR)
}

// isPeerGone reports whether err means the remote side went away.
func isPeerGone(err error) bool {
	return errors.Is(err, errConnClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE)
}
