package client

import "github.com/danmuck/pandalink/internal/protocol"

// Op is one entry of the dispatch table: the command code, the argument
// writer and the reply reader. Args and Reply may be nil for commands that
// carry no arguments or get no reply. Ack bytes are written after a fully
// decoded reply, for sub-protocols where the service waits on the client.
type Op[T any] struct {
	Cmd   Command
	Args  func(w *protocol.Writer)
	Reply func(r *protocol.Reader) (T, error)
	Ack   []byte
}

// Empty is the result of commands with no reply.
type Empty struct{}

// Query builds an Op with no arguments.
func Query[T any](cmd Command, reply func(r *protocol.Reader) (T, error)) Op[T] {
	return Op[T]{Cmd: cmd, Reply: reply}
}

// Notify builds a fire-and-forget Op.
func Notify(cmd Command, args func(w *protocol.Writer)) Op[Empty] {
	return Op[Empty]{Cmd: cmd, Args: args}
}

func readStatus(r *protocol.Reader) (Empty, error) {
	return Empty{}, r.ReadStatus()
}

// readOK reads the u32 1/0 acknowledgement some commands reply with.
func readOK(r *protocol.Reader) (bool, error) {
	v, err := r.ReadU32()
	return v == 1, err
}

func exchange[T any](w *protocol.Writer, r *protocol.Reader, op Op[T]) (T, error) {
	var zero T
	w.WriteU32(uint32(op.Cmd))
	if op.Args != nil {
		op.Args(w)
	}
	if err := w.Flush(); err != nil {
		return zero, err
	}
	var v T
	if op.Reply != nil {
		var err error
		if v, err = op.Reply(r); err != nil {
			return zero, err
		}
	}
	if len(op.Ack) > 0 {
		w.WriteRaw(op.Ack...)
		if err := w.Flush(); err != nil {
			return zero, err
		}
	}
	return v, nil
}
