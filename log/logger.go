package log

import (
	"io"
	"log/slog"
	"strings"

	"github.com/dpotapov/slogpfx"
)

// Logger is a wrapper around a slog.Logger, which keeps track of prefixes so that components
// like the simulation client can tag their output hierarchically (ex. "[foresight][tenderly]").
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
	writer      io.Writer
}

// NewLoggerWithWriter creates a logger that writes text records to the given writer.
func NewLoggerWithWriter(rawLogLevel string, prefixes []string, writer io.Writer) *Logger {
	slogger := newLoggerWithLogLevel(rawLogLevel, writer)
	return newLoggerWithSlogger(slogger, rawLogLevel, prefixes, writer)
}

func newLoggerWithSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string, writer io.Writer) *Logger {
	// Set the prefix key to always be the prefix
	prefix := strings.Join(prefixes, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:      prefixedSlogger,
		rawLogLevel: rawLogLevel,
		prefixes:    prefixes,
		writer:      writer,
	}
}

// Add an additional prefix to the logger
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	prefixes := make([]string, 0, len(l.prefixes)+1)
	prefixes = append(prefixes, l.prefixes...)
	prefixes = append(prefixes, prefix)

	return newLoggerWithSlogger(l.Logger, l.rawLogLevel, prefixes, l.writer)
}

// Add a value to the logger
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return newLoggerWithSlogger(slogger, l.rawLogLevel, l.prefixes, l.writer)
}

// Prefix key is the "magic" key that makes this all work. Any value sent to this key is a prefix,
// with the intermediate handlers.
const prefixKey = "_prefixKey"

func newLoggerWithLogLevel(rawLogLevel string, writer io.Writer) *slog.Logger {
	loggingLevel := ParseLogLevel(rawLogLevel)
	lvl := new(slog.LevelVar)
	lvl.Set(loggingLevel)

	textHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: lvl,
	})

	// Custom prefix formatter. The default in slogpfx uses a '>' symbol.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue // skip empty prefixes
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
