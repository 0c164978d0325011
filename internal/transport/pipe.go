package transport

import (
	"context"
	"sync"
)

// Pipe returns two connected in-process Conns. Frames are FIFO per
// direction, matching the only ordering guarantee the room transport
// gives. Used by session tests in place of a live websocket.
func Pipe() (Conn, Conn) {
	ab := make(chan []byte, 64)
	ba := make(chan []byte, 64)
	done := make(chan struct{})
	var once sync.Once
	closeBoth := func() { once.Do(func() { close(done) }) }
	a := &pipeConn{send: ab, recv: ba, done: done, close: closeBoth}
	b := &pipeConn{send: ba, recv: ab, done: done, close: closeBoth}
	return a, b
}

type pipeConn struct {
	send  chan []byte
	recv  chan []byte
	done  chan struct{}
	close func()
}

func (c *pipeConn) Send(ctx context.Context, data []byte) error {
	select {
	case <-c.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	case c.send <- data:
		return nil
	}
}

func (c *pipeConn) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-c.done:
		return nil, ErrClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	case data := <-c.recv:
		return data, nil
	}
}

func (c *pipeConn) Close(string) error {
	c.close()
	return nil
}
