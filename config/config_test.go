package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `facility:
  name: downtown
  spaces:
    - id: C1
      size: compact
      floor: 1
      location: A1
    - id: S1
      size: standard
      floor: 1
      location: A2
pricing:
  type: flat
  conf:
    rates:
      standard: 10
metrics:
  sinks:
    - type: nop
mqtt:
  enabled: false
api:
  addr: ":9090"
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "downtown", cfg.Facility.Name)
	assert.Len(t, cfg.Facility.Spaces, 2)
	assert.Equal(t, "flat", cfg.Pricing.Type)
	assert.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, ":9090", cfg.API.Addr)
	// Defaults applied for omitted fields.
	assert.Equal(t, "2112", cfg.API.PrometheusPort)
	assert.Equal(t, "parkd", cfg.MQTT.ClientID)

	spaces, err := cfg.Facility.ModelSpaces()
	require.NoError(t, err)
	assert.Equal(t, "C1", spaces[0].ID)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", `{"facility":{"spaces":[{"id":"S1","size":"standard"}]}}`))
	require.NoError(t, err)
	assert.Len(t, cfg.Facility.Spaces, 1)
	assert.Equal(t, ":8080", cfg.API.Addr)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	_, err := Load(writeConfig(t, "config.toml", ""))
	assert.Error(t, err)
}

func TestLoadRejectsBadSpace(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", `facility:
  spaces:
    - id: S1
      size: gigantic
`))
	assert.Error(t, err)
}

func TestLoadRejectsDuplicateSpaceID(t *testing.T) {
	_, err := Load(writeConfig(t, "config.yaml", `facility:
  spaces:
    - id: S1
      size: standard
    - id: S1
      size: compact
`))
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PARKD_API__ADDR", ":7070")
	cfg, err := Load(writeConfig(t, "config.yaml", sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.API.Addr)
}
