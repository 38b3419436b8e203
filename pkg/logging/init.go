// Package logging configures the process-wide slog default.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs a slog default handler of the given type and
// level, writing to stderr.
func Initialize(handlerType, levelName string) error {
	return InitializeWriter(os.Stderr, handlerType, levelName)
}

// InitializeWriter is Initialize with an explicit output writer.
func InitializeWriter(w io.Writer, handlerType, levelName string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return fmt.Errorf("could not parse log level: %w", err)
	}

	handler, err := newHandler(w, handlerType, level)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "type", handlerType, "level", level)
	return nil
}

func newHandler(w io.Writer, handlerType string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}

	switch handlerType {
	case JSON:
		return slog.NewJSONHandler(w, opts), nil
	case Text:
		return slog.NewTextHandler(w, opts), nil
	case Tint:
		return tint.NewHandler(w, &tint.Options{Level: level}), nil
	default:
		return nil, fmt.Errorf("unknown logging type: %s", handlerType)
	}
}
