package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		l, err := New(json, false)
		require.NoError(t, err)
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	}

	l, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestWithFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	WithFields(base, zap.String("foo", "bar")).Info("test log")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "bar", entries[0].ContextMap()["foo"])

	fallback := WithFields(nil, zap.String("baz", "qux"))
	require.NotNil(t, fallback)
	assert.NotPanics(t, func() { fallback.Info("another log") })

	assert.Same(t, base, WithFields(base))
}

func TestRankingFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	zap.New(core).Info("ranked", RankingFields("req-1", "overall", 3)...)

	ctx := observed.All()[0].ContextMap()
	assert.Equal(t, "req-1", ctx["requisition_id"])
	assert.Equal(t, "overall", ctx["sort_key"])
	assert.Equal(t, int64(3), ctx["candidates"])

	assert.Len(t, RankingFields("", "", 0), 1)
}
