// Package fakepanda is a scripted in-process stand-in for the device
// service. It runs over net.Pipe, records every byte the client writes and
// answers with canned replies.
package fakepanda

import (
	"bytes"
	"io"
	"net"
	"sync"
	"testing"
)

// Step is one scripted exchange: read Expect bytes from the client, then
// write Reply. Chunk > 0 splits the reply into writes of that size. Hang
// stops replying after the read; Close closes the service side instead.
type Step struct {
	Expect int
	Reply  []byte
	Chunk  int
	Hang   bool
	Close  bool
}

type Peer struct {
	server net.Conn
	client net.Conn
	done   chan struct{}

	mu       sync.Mutex
	received bytes.Buffer
	err      error
}

// Start launches the script. The peer is torn down by t.Cleanup.
func Start(t testing.TB, steps ...Step) *Peer {
	t.Helper()
	server, client := net.Pipe()
	p := &Peer{server: server, client: client, done: make(chan struct{})}
	go p.run(steps)
	t.Cleanup(func() {
		_ = client.Close()
		_ = server.Close()
		<-p.done
	})
	return p
}

// Conn is the client end of the pipe.
func (p *Peer) Conn() net.Conn { return p.client }

// Wait blocks until the script has finished and the client end has been
// closed, then returns the first script failure, if any.
func (p *Peer) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Received returns a copy of everything the client wrote so far. Call it
// after Wait for a complete view.
func (p *Peer) Received() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return bytes.Clone(p.received.Bytes())
}

func (p *Peer) run(steps []Step) {
	defer close(p.done)
	for _, s := range steps {
		if s.Expect > 0 {
			buf := make([]byte, s.Expect)
			if _, err := io.ReadFull(p.server, buf); err != nil {
				p.fail(err)
				return
			}
			p.record(buf)
		}
		if s.Hang {
			break
		}
		if s.Close {
			_ = p.server.Close()
			return
		}
		if err := p.write(s.Reply, s.Chunk); err != nil {
			p.fail(err)
			return
		}
	}
	p.drain()
}

func (p *Peer) write(reply []byte, chunk int) error {
	if chunk <= 0 {
		chunk = len(reply)
	}
	for len(reply) > 0 {
		n := min(chunk, len(reply))
		if _, err := p.server.Write(reply[:n]); err != nil {
			return err
		}
		reply = reply[n:]
	}
	return nil
}

func (p *Peer) drain() {
	buf := make([]byte, 512)
	for {
		n, err := p.server.Read(buf)
		if n > 0 {
			p.record(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (p *Peer) record(b []byte) {
	p.mu.Lock()
	p.received.Write(b)
	p.mu.Unlock()
}

func (p *Peer) fail(err error) {
	p.mu.Lock()
	if p.err == nil {
		p.err = err
	}
	p.mu.Unlock()
}
