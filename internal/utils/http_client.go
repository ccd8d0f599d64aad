package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers get the full resty API while
// the bridge keeps one place for client defaults.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. Every request sends and
// accepts JSON and is bounded by timeout.
//
//	client := utils.NewHTTPClient("http://klokku.local:8181", 10*time.Second, "klokku-bridge/1.0")
//	resp, err := client.R().Get("/api/budget")
func NewHTTPClient(baseURL string, timeout time.Duration, userAgent string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}

	return &HTTPClient{Client: client}
}
