package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEndpointNotFound   = errors.New("no endpoint configured for room")
	ErrNoReporter         = errors.New("no reporter for format")
	ErrMissingArguments   = errors.New("<format> and <url> are required")
	ErrUnsupportedFormat  = errors.New("format not supported")
	ErrMalformedTopology  = errors.New("malformed topology")
)

// UpstreamError is returned when a what-is-where endpoint answers with anything but 200.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}
