package http

import (
	"net/http"
	"time"
)

// NewClient builds the shared outbound client. The client timeout is a safety
// net; every call still carries its own context deadline.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
