package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout. main swaps the default for
// a MultiHandler once the database is up, so this covers boot-time logs.
func Setup() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))
}
