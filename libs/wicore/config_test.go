package wicore

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, name := range []string{EnvLogLevel, EnvLogFormat, EnvJPEGQuality, EnvPaletteSeed} {
		t.Setenv(name, "")
	}
	cfg := LoadConfig()
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 95, cfg.JPEGQuality)
	assert.Nil(t, cfg.PaletteSeed)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, " DEBUG ")
	t.Setenv(EnvLogFormat, "text")
	t.Setenv(EnvJPEGQuality, "70")
	t.Setenv(EnvPaletteSeed, "42")

	cfg := LoadConfig()
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 70, cfg.JPEGQuality)
	require.NotNil(t, cfg.PaletteSeed)
	assert.Equal(t, uint64(42), *cfg.PaletteSeed)
}

func TestLoadConfigFallsBack(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{EnvJPEGQuality, "500"},
		{EnvJPEGQuality, "high"},
		{EnvLogLevel, "verbose"},
		{EnvLogFormat, "xml"},
		{EnvPaletteSeed, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			cfg := LoadConfig()
			assert.NoError(t, cfg.Validate())
			assert.Nil(t, cfg.PaletteSeed)
		})
	}
}

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { _ = Configure(DefaultConfig()) })

	bad := DefaultConfig()
	bad.JPEGQuality = 0
	assert.Error(t, Configure(bad))
	assert.Equal(t, 95, CurrentConfig().JPEGQuality)

	good := DefaultConfig()
	good.JPEGQuality = 50
	good.LogFormat = "text"
	require.NoError(t, Configure(good))
	assert.Equal(t, 50, CurrentConfig().JPEGQuality)
}

func TestConfigureWhileLogging(t *testing.T) {
	t.Cleanup(func() { _ = Configure(DefaultConfig()) })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			Debug("tick", "i", i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			cfg := DefaultConfig()
			if i%2 == 0 {
				cfg.LogLevel = "error"
			}
			assert.NoError(t, Configure(cfg))
		}
	}()
	wg.Wait()

	assert.NotNil(t, Logger())
}
