package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/host"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestSimulate_FiresPerLoadAndRepeat(t *testing.T) {
	t.Parallel()

	src, err := content.Vanilla().Build()
	require.NoError(t, err)

	rt := host.NewRuntime("0.217.46")
	var labels []string
	require.NoError(t, rt.Hooks().Register("probe", "count", func(label string) {
		labels = append(labels, label)
	}))

	err = simulate(context.Background(), rt, src, config.SimulationConfig{WorldLoads: 3, RepeatTriggers: 2})
	require.NoError(t, err)

	assert.Len(t, labels, 9)
	assert.Equal(t, uint64(3), rt.Instance().Generation())
}

func TestSimulate_StopsOnCancel(t *testing.T) {
	t.Parallel()

	src, err := content.Vanilla().Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rt := host.NewRuntime("0.217.46")
	require.NoError(t, simulate(ctx, rt, src, config.SimulationConfig{WorldLoads: 5}))
	assert.Nil(t, rt.Instance())
}

func TestLoadContent_Vanilla(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultBronzestone()
	reg, err := loadContent(context.Background(), cfg)
	require.NoError(t, err)
	_, ok := reg.ItemByName("Hammer")
	assert.True(t, ok)
}
