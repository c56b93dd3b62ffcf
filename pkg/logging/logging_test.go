package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bizbooks-service/pkg/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogError_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "error")
	logging.LogError(l, "export", "InvoicePDF", "render", map[string]string{"invoice": "INV-1"}, errors.New("boom"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["msg"])
	assert.Equal(t, "export", entry["module"])
	assert.Equal(t, "InvoicePDF", entry["funcName"])
	assert.Equal(t, "render", entry["context"])
	assert.NotNil(t, entry["data"])
}

func TestLogError_NoData(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, "error")
	logging.LogError(l, "store", "ListEntries", "query", nil, errors.New("down"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, ok := entry["data"]
	assert.False(t, ok)
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	l := logging.New(&bytes.Buffer{}, "loud")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
}
