package territory

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tiles := chain(2)
	tiles = append(tiles, tiles[0])
	BuildGraph(tiles, nil)

	assert.Contains(t, buf.String(), "duplicate tile index")
	assert.Contains(t, buf.String(), "built tile graph")
}

func TestSetLoggerNilSilences(t *testing.T) {
	SetLogger(nil)

	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
