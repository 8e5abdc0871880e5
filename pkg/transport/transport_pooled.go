package transport

import (
	"expvar"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/luizaranda/go-users/pkg/telemetry/dialtrace"
)

var _expvar = expvar.NewMap("users.http.client.conn_pools")

// NewPooled builds an *http.Transport with opts and returns it as a
// PooledTransport registered under name.
func NewPooled(name string, opts ...Option) *PooledTransport {
	return NewPooledFromTransport(name, NewTransport(opts...))
}

// NewPooledFromTransport decorates the dialer of transport so that open
// connections are counted per network address. Counts are published in
// expvar under users.http.client.conn_pools.<name>.
func NewPooledFromTransport(name string, transport *http.Transport) *PooledTransport {
	t := &PooledTransport{
		Transport: transport,
		Name:      name,
	}

	dial := transport.DialContext
	if dial == nil {
		dial = NewTransport().DialContext
	}

	t.DialContext = dialtrace.NewTracedDialer(dial, dialtrace.DialerTrace{
		GotConn:   t.traceConn(1),
		CloseConn: t.traceConn(-1),
	})

	_expvar.Set(name, expvar.Func(func() any { return t.Stats() }))

	return t
}

// PooledTransport is an http.RoundTripper keeping track of the connections it
// has open per network address.
type PooledTransport struct {
	*http.Transport

	Name  string
	stats sync.Map
}

func (t *PooledTransport) traceConn(delta int64) func(network, address string) {
	return func(network, address string) {
		value, _ := t.stats.LoadOrStore(network+":"+address, new(atomic.Int64))
		value.(*atomic.Int64).Add(delta)
	}
}

// Stats returns the number of open connections keyed by "network:address".
func (t *PooledTransport) Stats() map[string]int64 {
	stats := map[string]int64{}

	t.stats.Range(func(key, value any) bool {
		stats[key.(string)] = value.(*atomic.Int64).Load()
		return true
	})

	return stats
}
