package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONWithServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "warn", Service: "trade-ledger-api", Output: &buf})

	l.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	cl := l.Component("engine")
	cl.Warn().Str("transaction_id", "t1").Msg("aviso")
	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "trade-ledger-api", event["service"])
	assert.Equal(t, "engine", event["component"])
	assert.Equal(t, "t1", event["transaction_id"])
	assert.Equal(t, "warn", event["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}
