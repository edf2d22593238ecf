package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Generator: GeneratorConfig{
			PartySize:     6,
			UniqueClasses: false,
			Seed:          0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Output: OutputConfig{
			Path: "",
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Generator.PartySize)
	assert.False(t, cfg.Generator.UniqueClasses)
	assert.Zero(t, cfg.Generator.Seed)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Output.Path)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
generator:
  party_size: 4
  unique_classes: true
  seed: 99
logging:
  level: debug
  format: console
output:
  path: party.md
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Generator.PartySize)
	assert.True(t, cfg.Generator.UniqueClasses)
	assert.Equal(t, uint64(99), cfg.Generator.Seed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "party.md", cfg.Output.Path)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	err := os.WriteFile(path, []byte("generator:\n  party_size: 2\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Generator.PartySize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViperFlagOverride(t *testing.T) {
	v := viper.New()
	v.Set("generator.party_size", 3)
	v.Set("generator.unique_classes", true)

	cfg, err := LoadFromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Generator.PartySize)
	assert.True(t, cfg.Generator.UniqueClasses)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys fall back to defaults")
}

func TestLoadFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	v.Set("generator.party_size", 0)

	_, err := LoadFromViper(v)
	assert.Error(t, err)
}

func TestValidatePartySize(t *testing.T) {
	cfg := validConfig()
	cfg.Generator.PartySize = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Generator.PartySize = -4
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

// Property-based tests

func TestPropertyValidPartySizes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 1000).Draw(t, "size")
		cfg := validConfig()
		cfg.Generator.PartySize = size
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid party size %d rejected: %v", size, err)
		}
	})
}

func TestPropertyInvalidPartySizes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(-1000, 0).Draw(t, "size")
		cfg := validConfig()
		cfg.Generator.PartySize = size
		if cfg.Validate() == nil {
			t.Fatalf("invalid party size %d accepted", size)
		}
	})
}

func TestPropertyAnySeedValidates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cfg := validConfig()
		cfg.Generator.Seed = rapid.Uint64().Draw(t, "seed")
		if err := cfg.Validate(); err != nil {
			t.Fatalf("seed rejected: %v", err)
		}
	})
}
