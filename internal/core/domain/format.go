package domain

import (
	"fmt"
	"strings"
)

// Format identifies the wire format of a what-is-where endpoint.
type Format string

const (
	FormatECS Format = "ecs"
)

// SupportedFormats lists every format a room can be configured with.
var SupportedFormats = []Format{FormatECS}

// ParseFormat returns the Format named by s, or ErrUnsupportedFormat.
func ParseFormat(s string) (Format, error) {
	for _, f := range SupportedFormats {
		if string(f) == s {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// FormatList renders the supported formats as a bracketed, quoted list, e.g. ['ecs'].
func FormatList() string {
	quoted := make([]string, len(SupportedFormats))
	for i, f := range SupportedFormats {
		quoted[i] = "'" + string(f) + "'"
	}

	return "[" + strings.Join(quoted, ", ") + "]"
}
