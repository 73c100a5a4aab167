package main

import (
	"log/slog"
	"os"
)

func newVerboseLogger() *slog.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h).With("component", "mindmap")
}
