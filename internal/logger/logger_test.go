package logger_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matwasilewski/data-vortex/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config logger.Config
	}{
		{name: "defaults", config: logger.Config{}},
		{name: "json encoding", config: logger.Config{Level: "debug", Encoding: "json"}},
		{name: "development console", config: logger.Config{Level: "warn", Development: true}},
		{name: "unknown level falls back to info", config: logger.Config{Level: "verbose"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.New(&tt.config)
			require.NoError(t, err)
			require.NotNil(t, log)

			// Derived loggers share the interface.
			assert.NotNil(t, log.With("key", "value"))
			assert.NotNil(t, log.WithError(errors.New("boom")))
			assert.NotNil(t, log.WithComponent("crawl"))
		})
	}
}

func TestNoOp(t *testing.T) {
	log := logger.NewNoOp()

	// All operations are safe no-ops.
	log.Debug("msg", "key", "value")
	log.Info("msg")
	log.Warn("msg")
	log.Error("msg", "error", errors.New("boom"))
	assert.NotNil(t, log.With("key", "value").WithComponent("test"))
}
