package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew(t *testing.T) {
	log := New()
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected logger to be enabled")
	}
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Msg("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("Expected output to contain 'test message', got: %s", buf.String())
	}
}

func TestNewWithLevel(t *testing.T) {
	log := NewWithLevel(zerolog.WarnLevel)
	if log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("Expected warn level, got %v", log.GetLevel())
	}
}

func TestWithContext(t *testing.T) {
	ctx := WithContext(context.Background(), New())
	if ctx.Value(LoggerKey) == nil {
		t.Error("Expected logger in context, got nil")
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	log := FromContext(ctx)
	log.Info().Msg("test")

	if buf.Len() == 0 {
		t.Error("Expected log output from retrieved logger")
	}
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	if log.GetLevel() == zerolog.Disabled {
		t.Error("Expected default logger to be enabled")
	}
}

func TestWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithFields(NewWithWriter(buf), map[string]interface{}{
		"file_id": "parish-1742",
		"page":    3,
	})
	log.Info().Msg("validated")

	out := buf.String()
	if !strings.Contains(out, "file_id") || !strings.Contains(out, "parish-1742") {
		t.Errorf("Expected output to contain file_id field, got: %s", out)
	}
}
