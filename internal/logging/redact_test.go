package logging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestRedactedString(t *testing.T) {
	tl := NewTestLogger()
	tl.Info(context.Background(), "test", RedactedString("email", "kim@school.dk"))
	tl.AssertField(t, "test", "email", "[REDACTED:13]")
}

func TestRedactingEncoder_CallSiteFields(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")

	logger.Info(context.Background(), "staff added for kim@school.dk",
		zap.String("email", "kim@school.dk"),
		zap.String("phone", "12 34 56 78"),
		zap.String("note", "reach me at kim@school.dk"),
		zap.String("contact", "call 12345678"),
		zap.Error(fmt.Errorf("validate: %w", errors.New(`invalid email "kim@school"`))),
		zap.String("path", "/home/u/.config/roster/personliste.csv"),
		zap.Int("age", 45),
	)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	line := lines[0]

	assert.Equal(t, "staff added for [REDACTED]", line["msg"])
	assert.Equal(t, "[REDACTED]", line["email"])
	assert.Equal(t, "[REDACTED]", line["phone"])
	assert.Equal(t, "reach me at [REDACTED]", line["note"])
	assert.Equal(t, "call [REDACTED]", line["contact"])
	assert.Equal(t, `validate: invalid email "kim@school"`, line["error"], "non-matching errors pass through")
	assert.Equal(t, "/home/u/.config/roster/personliste.csv", line["path"])
	assert.Equal(t, float64(45), line["age"])
	assert.NotContains(t, buf.String(), "kim@school.dk")
}

func TestRedactingEncoder_ErrorField(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")

	logger.Error(context.Background(), "rejected", zap.Error(errors.New(`invalid email "kim@school.dk"`)))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, `invalid email "[REDACTED]"`, lines[0]["error"])
}

func TestRedactingEncoder_WithFields(t *testing.T) {
	logger, buf := newBufferLogger(t, "json")

	child := logger.With(zap.String("Email", "kim@school.dk"), zap.String("who", "kim@school.dk"))
	child.Info(context.Background(), "hello")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "[REDACTED]", lines[0]["Email"], "key match ignores case")
	assert.Equal(t, "[REDACTED]", lines[0]["who"])
}

func TestRedactingEncoder_Disabled(t *testing.T) {
	enc, err := NewRedactingEncoder(newEncoder("json"), RedactionConfig{Enabled: false})
	require.NoError(t, err)

	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "kim@school.dk"}, []zapcore.Field{zap.String("email", "kim@school.dk")})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"email":"kim@school.dk"`)
}

func TestNewRedactingEncoder_InvalidPatterns(t *testing.T) {
	_, err := NewRedactingEncoder(newEncoder("json"), RedactionConfig{Enabled: true, Patterns: []string{"("}})
	assert.Error(t, err)

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	_, err = NewRedactingEncoder(newEncoder("json"), RedactionConfig{Enabled: true, Patterns: []string{string(long)}})
	assert.Error(t, err)
}
