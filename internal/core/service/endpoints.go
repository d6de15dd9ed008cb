package service

import (
	"context"
	"fmt"
	"wiwbot/internal/core/domain"
	"wiwbot/internal/core/port"

	"github.com/rs/zerolog"
)

type WhatIsWhere interface {
	// Status renders the current deployment report for room.
	Status(ctx context.Context, room string) (string, error)
	// Configure validates args (<format> <url> [api token]) and stores them as the endpoint for room.
	Configure(ctx context.Context, room string, args []string) (domain.EndpointConfig, error)
}

type Endpoints struct {
	repository port.EndpointRepository
	reporters  map[domain.Format]port.Reporter
}

func NewEndpoints(repository port.EndpointRepository, reporters ...port.Reporter) *Endpoints {
	e := &Endpoints{
		repository: repository,
		reporters:  make(map[domain.Format]port.Reporter, len(reporters)),
	}

	for _, r := range reporters {
		e.reporters[r.Format()] = r
	}

	return e
}

func (e *Endpoints) Status(ctx context.Context, room string) (string, error) {
	l := zerolog.Ctx(ctx).With().Str("room", room).Logger()

	config, err := e.repository.Get(ctx, room)
	if err != nil {
		return "", fmt.Errorf("failed to load endpoint: %w", err)
	}

	reporter, ok := e.reporters[config.Format]
	if !ok {
		l.Warn().Str("format", string(config.Format)).Msg("stored format has no reporter")
		return "", fmt.Errorf("%w: %q", domain.ErrNoReporter, config.Format)
	}

	l.Debug().Str("format", string(config.Format)).Str("url", config.URL).Msg("requesting report")

	report, err := reporter.Report(ctx, config)
	if err != nil {
		return "", fmt.Errorf("failed to build report: %w", err)
	}

	return report, nil
}

const minConfigureArgs = 2

func (e *Endpoints) Configure(ctx context.Context, room string, args []string) (domain.EndpointConfig, error) {
	if len(args) < minConfigureArgs {
		return domain.EndpointConfig{}, domain.ErrMissingArguments
	}

	format, err := domain.ParseFormat(args[0])
	if err != nil {
		return domain.EndpointConfig{}, err
	}

	config := domain.EndpointConfig{
		Room:   room,
		Format: format,
		URL:    args[1],
	}

	if len(args) > minConfigureArgs {
		config.APIToken = args[2]
	}

	if err := e.repository.Set(ctx, config); err != nil {
		return domain.EndpointConfig{}, fmt.Errorf("failed to store endpoint: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("room", room).
		Str("format", string(format)).
		Str("url", config.URL).
		Bool("hasToken", config.APIToken != "").
		Msg("endpoint configured")

	return config, nil
}
