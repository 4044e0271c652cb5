package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInit_WithoutCollector(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	shutdown, err := Init(context.Background(), "", "stub", logger)
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	shutdown(context.Background())
}
