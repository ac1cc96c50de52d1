package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "text", &buf)
	require.NoError(t, err)

	logger.WithFields(log.Fields{"mode": "production"}).Info("validated")
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, `msg=validated`)
	assert.Contains(t, out, `mode=production`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("debug", "json", &buf)
	require.NoError(t, err)

	logger.WithField("keys", 3).Debug("loaded spec")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "loaded spec", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["keys"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New("loud", "text", &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
