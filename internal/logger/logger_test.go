package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("prod", &buf).Info("hello", "k", 1)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "bloglist", line["service"])
}

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("test", &buf).Info("quiet")
	assert.Empty(t, buf.String())

	NewWithWriter("dev", &buf).Debug("loud")
	assert.Contains(t, buf.String(), "loud")
}
