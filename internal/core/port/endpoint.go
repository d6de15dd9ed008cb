package port

import (
	"context"
	"wiwbot/internal/core/domain"
)

type EndpointRepository interface {
	// Get returns the endpoint configured for room, or domain.ErrEndpointNotFound.
	Get(ctx context.Context, room string) (domain.EndpointConfig, error)
	// Set replaces whatever endpoint is configured for config.Room.
	Set(ctx context.Context, config domain.EndpointConfig) error
}
