package app

import (
	"encoding/json"
	"expvar"

	"github.com/luizaranda/go-users/pkg/telemetry"
)

const _connPoolsVar = "users.http.client.conn_pools"

// reportConnPools sends the open connection count of every pooled transport
// as a gauge.
func reportConnPools(tracer telemetry.Client) {
	v := expvar.Get(_connPoolsVar)
	if v == nil {
		return
	}

	var pools map[string]map[string]int64
	if err := json.Unmarshal([]byte(v.String()), &pools); err != nil {
		return
	}

	for pool, conns := range pools {
		for address, n := range conns {
			tracer.Gauge("users.http.client.conn_pool", float64(n), telemetry.Tags("pool", pool, "address", address))
		}
	}
}
