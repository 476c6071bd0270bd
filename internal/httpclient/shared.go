// Package httpclient holds the process-wide HTTP client used when callers do not supply their own.
package httpclient

import (
	"net/http"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var shared = sync.OnceValue(func() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
})

// Shared returns the process-wide HTTP client.
// It has no client-level timeout; callers bound requests with their context.
// The client is never closed by the libraries that use it.
func Shared() *http.Client {
	return shared()
}

// GetOrShared returns client when it is non-nil, otherwise the shared client
func GetOrShared(client *http.Client) *http.Client {
	if client != nil {
		return client
	}
	return Shared()
}
