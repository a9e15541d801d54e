package logger

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", "json")
	assert.Error(t, err)

	log, err := New("debug", "console")
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestWithAlerts(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	base := &Logger{zap.New(core)}

	alerts := make(chan string, 4)
	log := base.WithAlerts(zapcore.ErrorLevel, func(msg string) { alerts <- msg })

	log.Info("info with flag", AlertField())
	log.Error("plain error")
	log.With(StringField("job", "sentiment_refresh")).Error("Scheduled job failed", AlertField(), ErrorField(errors.New("yahoo down")))

	select {
	case msg := <-alerts:
		assert.Contains(t, msg, "ERROR Alert")
		assert.Contains(t, msg, "Scheduled job failed")
		assert.Contains(t, msg, "• job: sentiment_refresh")
		assert.Contains(t, msg, "• error: yahoo down")
		assert.NotContains(t, msg, "alert:")
	case <-time.After(time.Second):
		t.Fatal("alert was not forwarded")
	}

	assert.Len(t, alerts, 0)
	assert.Equal(t, 3, logs.Len(), "entries are still written to the wrapped core")
}
