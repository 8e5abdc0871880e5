package tracing

import (
	"context"
)

type targetIDCtxKey struct{}

// WithTargetID sets the low cardinality target id (for example
// /api/users/{id}) used to tag metrics of outgoing requests.
func WithTargetID(ctx context.Context, targetID string) context.Context {
	return context.WithValue(ctx, targetIDCtxKey{}, targetID)
}

// TargetID returns the target id stored in ctx, or empty.
func TargetID(ctx context.Context) string {
	value, _ := ctx.Value(targetIDCtxKey{}).(string)
	return value
}

type endpointTemplateKey struct{}

// WithEndpointTemplate sets the unexpanded URL path of the endpoint being
// called.
func WithEndpointTemplate(ctx context.Context, endpointTemplate string) context.Context {
	return context.WithValue(ctx, endpointTemplateKey{}, endpointTemplate)
}

// EndpointTemplate returns the endpoint template stored in ctx, or empty.
func EndpointTemplate(ctx context.Context) string {
	value, _ := ctx.Value(endpointTemplateKey{}).(string)
	return value
}
