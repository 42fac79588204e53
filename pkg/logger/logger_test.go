package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"syscall"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infoLevel int8 = 0

func TestGetReturnsSameInstance(t *testing.T) {
	first := Get(infoLevel)
	require.NotNil(t, first)
	assert.Same(t, first, Get(-1))
	assert.Same(t, first, Setup(Options{Console: true}))
}

func TestWithLoggerAndFromContext(t *testing.T) {
	lgr := Get(infoLevel)
	ctx := WithLogger(context.Background(), lgr)
	assert.Same(t, lgr, FromContext(ctx))

	// Same instance keeps the context untouched.
	assert.Equal(t, ctx, WithLogger(ctx, lgr))

	other := logr.Discard()
	replaced := WithLogger(ctx, &other)
	assert.Same(t, &other, FromContext(replaced))
}

func TestFromContextFallbacks(t *testing.T) {
	global := Get(infoLevel)
	assert.Same(t, global, FromContext(context.Background()))

	orig := globalLogrLogger
	globalLogrLogger = nil
	defer func() { globalLogrLogger = orig }()

	assert.Same(t, &defaultNoopLogger, FromContext(context.Background()))
	assert.Same(t, &defaultNoopLogger, GetGlobalLogger())
	assert.Same(t, &defaultNoopLogger, GetNoopLogger())
}

func TestSyncWithoutLogger(t *testing.T) {
	orig := globalZapLogger
	globalZapLogger = nil
	defer func() { globalZapLogger = orig }()

	assert.NotPanics(t, Sync)
}

func TestWithValuesReturnsNewLogger(t *testing.T) {
	lgr := Get(infoLevel)
	derived := WithValues(lgr, RootCommandKey, "baiacufmt")
	require.NotNil(t, derived)
	assert.NotSame(t, lgr, derived)
}

func TestNewForWriterEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewForWriter(&buf, -1)
	lgr.WithValues(FileKey, "main.c").V(1).Info("extracted signature", LineKey, 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "extracted signature", entry[MessageKey])
	assert.Equal(t, "main.c", entry[FileKey])
	assert.EqualValues(t, 3, entry[LineKey])
	assert.Contains(t, entry, CommitKey)
	assert.Contains(t, entry, TimeStampKey)
}

func TestNewForWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewForWriter(&buf, infoLevel)
	lgr.V(1).Info("hidden")
	assert.Zero(t, buf.Len())
	lgr.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestIsIgnorableSyncError(t *testing.T) {
	assert.True(t, isIgnorableSyncError(syscall.ENOTTY))
	assert.True(t, isIgnorableSyncError(syscall.EINVAL))
	assert.True(t, isIgnorableSyncError(errors.New("sync /dev/stderr: The handle is invalid.")))
	assert.False(t, isIgnorableSyncError(errors.New("disk full")))
}
