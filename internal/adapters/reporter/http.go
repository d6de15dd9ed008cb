package reporter

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"
)

const apiKeyHeader = "x-api-key"

// get fetches url with the api key header set, even when the key is empty, and returns status and body.
func get(ctx context.Context, client *http.Client, url, apiKey string) (int, []byte, error) {
	l := zerolog.Ctx(ctx).With().Str("url", url).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("error creating request: %w", err)
		l.Error().Err(err).Send()
		return 0, nil, err
	}

	req.Header.Set(apiKeyHeader, apiKey)
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		err = fmt.Errorf("error executing request: %w", err)
		l.Error().Err(err).Send()
		return 0, nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		err = fmt.Errorf("error reading response: %w", err)
		l.Error().Err(err).Send()
		return 0, nil, err
	}

	l.Debug().Int("status", res.StatusCode).Int("bytes", len(body)).Msg("endpoint responded")

	return res.StatusCode, body, nil
}
