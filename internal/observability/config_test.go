package observability

import (
	"testing"

	"github.com/smallbiznis/kstore/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	cfg := LoadConfig(config.Config{Environment: "production", LogLevel: "INFO"})
	assert.Equal(t, "kstore", cfg.ServiceName)
	assert.False(t, cfg.Debug())

	cfg = LoadConfig(config.Config{AppName: "shop", Environment: "production", LogLevel: "debug"})
	assert.Equal(t, "shop", cfg.ServiceName)
	assert.True(t, cfg.Debug())

	assert.True(t, LoadConfig(config.Config{Environment: "local"}).Debug())
}
