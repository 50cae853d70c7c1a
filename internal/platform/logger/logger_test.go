package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "production").Info("draft built", "draft_id", "d-1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "draft built", line["msg"])
	assert.Equal(t, "d-1", line["draft_id"])
}

func TestDevelopmentLogsDebugText(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "development").Debug("field rejected", "field", "dependants")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "field=dependants")
}
