package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"evalgo.org/eqinv/internal/inventory"
	"evalgo.org/eqinv/models"
)

func registry(t *testing.T) *inventory.Registry {
	t.Helper()
	reg := inventory.New()
	_, err := reg.Register(models.Equipment{
		Kind: models.KindRouter, Model: "RT1", IP: "10.0.0.1", Manufacturer: "Acme",
		State: models.StateOn, EnergyWatts: 50, HoursPerDay: 24,
		Router: &models.RouterSpec{SupportsWifi: true, Mbps: 300},
	})
	require.NoError(t, err)
	_, err = reg.Register(models.Equipment{
		Kind: models.KindServer, Model: "PE", IP: "10.0.0.2", Manufacturer: "Dell",
		State: models.StateOff, EnergyWatts: 400, HoursPerDay: 12,
		Server: &models.ServerSpec{OperatingSystem: "Linux", RAMGB: 64, DiskGB: 2000},
	})
	require.NoError(t, err)
	return reg
}

var at = time.Date(2025, time.November, 12, 14, 35, 20, 0, time.UTC)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{"json", FormatJSON, false},
		{" YAML ", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("out/inventory.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("inventory.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("inventory.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("inventory"))
}

func TestEncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, NewSnapshot(registry(t), at)))

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, at.Equal(decoded.GeneratedAt))
	require.Len(t, decoded.Equipment, 2)
	assert.Equal(t, "10.0.0.1", decoded.Equipment[0].IP)
	assert.Equal(t, 2, decoded.Summary.Total)
	assert.Contains(t, buf.String(), `"energyWatts": 50`)
}

func TestEncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatYAML, NewSnapshot(registry(t), at)))

	var decoded Snapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Equipment, 2)
	require.NotNil(t, decoded.Equipment[1].Server)
	assert.Equal(t, "Linux", decoded.Equipment[1].Server.OperatingSystem)
	assert.Contains(t, buf.String(), "energy_watts: 400")
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, Format("xml"), struct{}{}))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "inventory.yaml")
	require.NoError(t, WriteFile(path, FormatFromPath(path), NewSnapshot(registry(t), at)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "ip: 10.0.0.2")
}
