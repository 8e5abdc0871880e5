// Package dialtrace decorates dial functions with connection lifecycle
// callbacks.
package dialtrace

import (
	"context"
	"net"
	"sync"
)

// DialContextFunc has the signature of net.Dialer DialContext.
type DialContextFunc func(ctx context.Context, network, address string) (net.Conn, error)

// DialerTrace holds the callbacks run by a traced dialer. Any of them may be
// nil. They may be called concurrently.
type DialerTrace struct {
	// GotConn is called after a connection is established.
	GotConn func(network, address string)

	// ConnError is called when establishing a connection fails.
	ConnError func(network, address string, err error)

	// CloseConn is called once per established connection, when it is
	// closed.
	CloseConn func(network, address string)
}

// NewTracedDialer returns a DialContextFunc dialing through dial and running
// the trace callbacks on connection events.
func NewTracedDialer(dial DialContextFunc, trace DialerTrace) DialContextFunc {
	return func(ctx context.Context, network, address string) (net.Conn, error) {
		conn, err := dial(ctx, network, address)
		if err != nil {
			if trace.ConnError != nil {
				trace.ConnError(network, address, err)
			}
			return nil, err
		}

		if trace.GotConn != nil {
			trace.GotConn(network, address)
		}

		return &tracedConn{
			Conn: conn,
			onClose: func() {
				if trace.CloseConn != nil {
					trace.CloseConn(network, address)
				}
			},
		}, nil
	}
}

type tracedConn struct {
	net.Conn

	once    sync.Once
	onClose func()
}

// Close closes the connection. CloseConn runs only on the first call.
func (c *tracedConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(c.onClose)
	return err
}
