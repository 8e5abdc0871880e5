/*
Package httpclient builds the *http.Client used to talk to the users API.

Clients created by New run every request through the decorators of package
transport: a default User-Agent, request hooks (X-Request-Id included),
logging, statsd and New Relic tracing, and OpenTelemetry spans, on top of a
shared PooledTransport.
*/
package httpclient
