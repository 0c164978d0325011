package transport

import (
	"context"
	"errors"
)

// ErrClosed is returned from Send and Receive once the channel is down.
var ErrClosed = errors.New("transport closed")

// Conn is a thin duplex frame channel. Reconnect policy lives above it;
// a Conn is used until it errors and then discarded.
type Conn interface {
	Send(ctx context.Context, data []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close(reason string) error
}

// Dialer opens a Conn against a room endpoint. The websocket dialer is
// the production implementation; tests substitute a pipe.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}
