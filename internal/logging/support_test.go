package logging

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"trace", TraceLevel, false},
		{"TRACE", TraceLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{" warn ", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := LevelFromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.True(t, TraceLevel < zapcore.DebugLevel)
}

func TestFromSettings(t *testing.T) {
	cfg, err := FromSettings("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Redaction.Enabled)

	cfg, err = FromSettings("", "")
	require.NoError(t, err)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level)
	assert.Equal(t, "console", cfg.Format)

	_, err = FromSettings("loud", "json")
	assert.Error(t, err)
	_, err = FromSettings("info", "xml")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Fields = map[string]string{"": "x"}
	assert.Error(t, cfg.Validate())

	cfg.Fields = map[string]string{"k": ""}
	assert.Error(t, cfg.Validate())

	cfg = NewDefaultConfig()
	cfg.Redaction.Patterns = []string{"[unclosed"}
	assert.Error(t, cfg.Validate())
}

func TestSessionContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, SessionIDFromContext(ctx))
	assert.Empty(t, ContextFields(ctx))

	id := NewSessionID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	ctx = WithSessionID(ctx, id)
	assert.Equal(t, id, SessionIDFromContext(ctx))
	fields := ContextFields(ctx)
	require.Len(t, fields, 1)
	assert.Equal(t, zap.String("session.id", id), fields[0])
}

func TestWithSessionID_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { WithSessionID(context.Background(), "") })
	assert.Panics(t, func() { WithSessionID(context.Background(), "bad id!") })
}

func TestLoggerContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	tl := NewTestLogger()
	ctx := WithLogger(context.Background(), tl.Logger)
	FromContext(ctx).Info(ctx, "from context")
	tl.AssertLogged(t, zapcore.InfoLevel, "from context")
}

func TestTestLogger_Assertions(t *testing.T) {
	tl := NewTestLogger()
	ctx := context.Background()

	tl.Info(ctx, "saved records", zap.Int("count", 3), zap.String("path", "a.csv"))
	tl.AssertLogged(t, zapcore.InfoLevel, "saved")
	tl.AssertNotLogged(t, zapcore.ErrorLevel, "saved")
	tl.AssertField(t, "saved records", "count", int64(3))
	tl.AssertField(t, "saved records", "path", "a.csv")
	tl.AssertNoPII(t)

	tl.Reset()
	assert.Empty(t, tl.All())
}

func TestTestLogger_AssertNoPIIDetectsLeaks(t *testing.T) {
	tests := []struct {
		name string
		log  func(tl *TestLogger)
	}{
		{"email key", func(tl *TestLogger) { tl.Info(context.Background(), "x", zap.String("email", "hidden")) }},
		{"email value", func(tl *TestLogger) { tl.Info(context.Background(), "x", zap.String("who", "kim@school.dk")) }},
		{"phone value", func(tl *TestLogger) { tl.Info(context.Background(), "x", zap.String("who", "12 34 56 78")) }},
		{"email in message", func(tl *TestLogger) { tl.Info(context.Background(), "added kim@school.dk") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewTestLogger()
			tt.log(tl)
			probe := &recordingTB{TB: t}
			tl.AssertNoPII(probe)
			assert.True(t, probe.failed)
		})
	}
}

// recordingTB captures failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(string, ...any) { r.failed = true }
