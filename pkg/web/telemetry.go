package web

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// notifyErr reports err to the New Relic transaction of ctx, if any.
func notifyErr(ctx context.Context, err error) {
	if txn := newrelic.FromContext(ctx); txn != nil {
		txn.NoticeError(err)
	}
}
