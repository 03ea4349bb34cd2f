package registry

import (
	"net/http"

	"go.trai.ch/ypms/internal/core/domain"
	"go.trai.ch/ypms/internal/core/ports"
)

// NewClientWithHTTP exposes newClientWithHTTP for testing.
func NewClientWithHTTP(
	settings *domain.Settings,
	sources ports.SourceStore,
	logger ports.Logger,
	client *http.Client,
) *Client {
	return newClientWithHTTP(settings, sources, logger, client)
}

// CachePath exposes cachePath for testing.
func (c *Client) CachePath(url string) string {
	return c.cachePath(url)
}
