package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ParseLogLevel maps a config string onto a slog level. Unknown input logs at INFO.
func ParseLogLevel(input string) slog.Level {
	level, ok := parseLogLevel(input)
	if !ok {
		fmt.Fprintf(os.Stderr, "😬 Unable to parse a log level from input: \"%s\". Defaulting to log at INFO level.\n", input)
	}
	return level
}

// IsValidLogLevel reports whether ParseLogLevel would accept the input without falling back.
func IsValidLogLevel(input string) bool {
	_, ok := parseLogLevel(input)
	return ok
}

func parseLogLevel(input string) (slog.Level, bool) {
	sanitized := strings.ToLower(strings.TrimSpace(input))

	switch sanitized {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
