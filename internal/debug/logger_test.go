package debug

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	var buf bytes.Buffer
	Configure(true, &buf, JSON)
	assert.True(t, Enabled())

	With("engine", "sqlite3").Debug("executing statement", "verb", "SELECT")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "executing statement", line["msg"])
	assert.Equal(t, "sqlite3", line["engine"])
	assert.Equal(t, "SELECT", line["verb"])

	buf.Reset()
	Configure(true, &buf, Text)
	Info("connected", "engine", "mysql")
	assert.Contains(t, buf.String(), "engine=mysql")

	buf.Reset()
	Configure(false, &buf, Text)
	assert.False(t, Enabled())
	Error("dropped")
	assert.Empty(t, buf.String())
}
