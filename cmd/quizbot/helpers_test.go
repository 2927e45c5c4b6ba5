package main

import (
	"context"
	"log/slog"
)

func slogDebugEnabled() bool {
	return slog.Default().Enabled(context.Background(), slog.LevelDebug)
}
