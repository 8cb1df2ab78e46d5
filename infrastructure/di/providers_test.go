package di

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"cupcake-backend/infrastructure/config"
)

func TestProvideLogger_HonorsConfiguredLevel(t *testing.T) {
	logger, err := ProvideLogger(&config.Config{Environment: "development", LogLevel: "warn"})

	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestProvideLogger_DefaultsToEnvironmentLevel(t *testing.T) {
	logger, err := ProvideLogger(&config.Config{Environment: "development"})

	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestProvideLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := ProvideLogger(&config.Config{Environment: "development", LogLevel: "chatty"})

	assert.Error(t, err)
}
