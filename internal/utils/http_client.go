package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "go-bundle-keeper"

// HTTPClient is the resty client used by the node's outbound adapters.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client whose requests give up after timeout. A zero
// timeout means no limit.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	return &HTTPClient{Client: client}
}
