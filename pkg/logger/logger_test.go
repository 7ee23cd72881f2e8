package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContextAddsSession(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "wordbook-test", false)
	SetLevel("debug")
	t.Cleanup(func() { SetLevel("info") })

	ctx := ContextWithSession(context.Background(), "abc-123")
	Info(ctx).Msg("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc-123", line["session_id"])
	assert.Equal(t, "wordbook-test", line["service"])
	assert.Equal(t, "hello", line["message"])
}

func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { SetLevel("info") })

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	SetLevel("bogus")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
