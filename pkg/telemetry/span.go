package telemetry

import (
	"context"

	"github.com/newrelic/go-agent/v3/newrelic"
)

// Span is a provider independent unit of work. Nothing is recorded until
// Finish is called.
type Span interface {
	Finish()
	SetLabel(key string, value any)
	NoticeError(err error)
}

// StartSpan begins a segment of the New Relic transaction found in ctx, or
// a new transaction through the Client of ctx when there is none.
func StartSpan(ctx context.Context, name string) (context.Context, Span) {
	tx := newrelic.FromContext(ctx)
	if tx == nil {
		return FromContext(ctx).StartSpan(ctx, name)
	}

	return ctx, &nrSegmentSpan{
		Transaction: tx,
		Segment:     tx.StartSegment(name),
	}
}

type nrTransactionSpan struct{ *newrelic.Transaction }

func (s *nrTransactionSpan) Finish()               { s.Transaction.End() }
func (s *nrTransactionSpan) NoticeError(err error) { s.Transaction.NoticeError(err) }
func (s *nrTransactionSpan) SetLabel(key string, value any) {
	s.Transaction.AddAttribute(key, value)
}

type nrSegmentSpan struct {
	*newrelic.Transaction
	*newrelic.Segment
}

func (s *nrSegmentSpan) Finish()               { s.Segment.End() }
func (s *nrSegmentSpan) NoticeError(err error) { s.Transaction.NoticeError(err) }
func (s *nrSegmentSpan) SetLabel(key string, value any) {
	s.Transaction.AddAttribute(key, value)
}

var (
	_ Span = (*nrTransactionSpan)(nil)
	_ Span = (*nrSegmentSpan)(nil)
)
