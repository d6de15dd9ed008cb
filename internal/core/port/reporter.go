package port

import (
	"context"
	"wiwbot/internal/core/domain"
)

// Reporter fetches and renders what-is-where data for one endpoint format.
type Reporter interface {
	Format() domain.Format
	// Report queries the configured endpoint and returns the rendered report. A non-200 answer is returned as
	// *domain.UpstreamError.
	Report(ctx context.Context, config domain.EndpointConfig) (string, error)
}
