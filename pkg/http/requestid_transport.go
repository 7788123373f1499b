package http

import (
	"net/http"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

type requestIDTransport struct {
	transport http.RoundTripper
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(requestIDHeader) != "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(requestIDHeader, uuid.NewString())

	return t.transport.RoundTrip(reqCopy)
}

// WithRequestID tags every outbound request with a fresh X-Request-ID so
// calls can be correlated with backend logs.
func WithRequestID() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &requestIDTransport{
			transport: rt,
		}
	})
}
