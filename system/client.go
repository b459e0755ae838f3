package system

import (
	"net/http"
	"time"
)

// Client performs the HTTP requests used to fetch remote documents.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultTimeout bounds a single remote document fetch made with the default client.
const DefaultTimeout = 30 * time.Second

var _ Client = (*http.Client)(nil)

// NewDefaultClient returns the client used when none is configured.
func NewDefaultClient() Client {
	return &http.Client{Timeout: DefaultTimeout}
}
