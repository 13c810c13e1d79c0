package protocol

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
)

var (
	ErrConnectionClosed = errors.New("protocol: connection closed")
	ErrTimeout          = errors.New("protocol: timeout")
	ErrFormat           = errors.New("protocol: malformed payload")

	ErrInvalidUTF8  = fmt.Errorf("%w: invalid utf-8 string", ErrFormat)
	ErrBadSignature = fmt.Errorf("%w: bad image signature", ErrFormat)
	ErrTooLarge     = fmt.Errorf("%w: length exceeds limit", ErrFormat)
)

// ProtocolError is a failure reported by the remote service through the
// negative-length string sentinel. The stream stays aligned after one.
type ProtocolError struct {
	Code    int32
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol: remote error %d: %s", e.Code, e.Message)
}

// IOError is a transport failure that is neither a clean close nor a timeout.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("protocol: %s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsRemote reports whether err carries a ProtocolError.
func IsRemote(err error) bool {
	var perr *ProtocolError
	return errors.As(err, &perr)
}

// IsFatal reports whether err leaves the stream in an unknown position.
func IsFatal(err error) bool {
	if err == nil || IsRemote(err) {
		return false
	}
	var ioErr *IOError
	return errors.Is(err, ErrConnectionClosed) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrFormat) ||
		errors.As(err, &ioErr)
}

// classify maps a raw transport error onto the protocol taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrConnectionClosed), errors.Is(err, ErrTimeout):
		return err
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe), errors.Is(err, net.ErrClosed),
		errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.ECONNRESET):
		return fmt.Errorf("%w: %s: %v", ErrConnectionClosed, op, err)
	case errors.Is(err, os.ErrDeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %s", ErrTimeout, op)
	}
	return &IOError{Op: op, Err: err}
}
