package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type failingHandler struct{ slog.Handler }

func (failingHandler) Handle(context.Context, slog.Record) error { return errors.New("write failed") }

func TestTee_Collapses(t *testing.T) {
	h := slog.NewTextHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, Tee(nil, h))
	assert.Equal(t, slog.DiscardHandler, Tee())
}

func TestTee_FansOutByLevel(t *testing.T) {
	var term, file bytes.Buffer
	logger := slog.New(Tee(
		NewColorHandler(&term, &slog.HandlerOptions{Level: slog.LevelWarn}, ColorNever),
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)).WithGroup("store").With("dir", "/configs")

	logger.Debug("saved configuration", "path", "/configs/a.json")
	logger.Warn("configuration directory is missing, recreating it")

	assert.NotContains(t, term.String(), "saved configuration")
	assert.Contains(t, term.String(), "store.dir=/configs")
	assert.Contains(t, file.String(), `"msg":"saved configuration"`)
	assert.Contains(t, file.String(), `"store":{"dir":"/configs"`)
}

func TestTee_JoinsErrors(t *testing.T) {
	var buf bytes.Buffer
	ok := slog.NewTextHandler(&buf, nil)
	h := Tee(ok, failingHandler{ok}, failingHandler{ok})

	err := h.Handle(t.Context(), slog.NewRecord(time.Time{}, slog.LevelInfo, "msg", 0))
	assert.ErrorContains(t, err, "write failed")
	assert.Contains(t, buf.String(), "msg=msg", "healthy handlers still write")
	assert.False(t, h.Enabled(t.Context(), slog.LevelDebug))
}
