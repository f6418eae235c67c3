package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, 0, "text")

	lg.Info("Region service: region created", "region_id", "r-1")

	assert.Contains(t, buf.String(), "Region service: region created")
	assert.Contains(t, buf.String(), "region_id=r-1")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, 0, "JSON")

	lg.With("component", "geocoder").Warn("retrying")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "retrying", record["msg"])
	assert.Equal(t, "geocoder", record["component"])
	assert.Equal(t, "WARN", record["level"])
}

func TestNewWithWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, 4, "text")

	lg.Info("dropped")
	lg.Debug("dropped too")
	assert.Empty(t, buf.String())

	lg.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
