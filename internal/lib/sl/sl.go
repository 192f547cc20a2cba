package sl

import (
	"log/slog"
	"strings"
)

// Err returns a slog attribute for an error value.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module returns a slog attribute identifying the originating module.
func Module(name string) slog.Attr {
	return slog.String("module", name)
}

// Secret returns a slog attribute with the value masked, keeping only
// a short prefix so keys can still be told apart in logs.
func Secret(key, value string) slog.Attr {
	masked := ""
	if len(value) > 4 {
		masked = value[:4] + strings.Repeat("*", 6)
	} else if value != "" {
		masked = "****"
	}
	return slog.String(key, masked)
}
