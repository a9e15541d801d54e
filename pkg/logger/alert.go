package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const alertFieldKey = "alert"

// AlertField marks a log entry for forwarding to the alert sink.
func AlertField() zap.Field {
	return zap.Bool(alertFieldKey, true)
}

// AlertSink delivers a formatted alert, e.g. to a Telegram chat.
type AlertSink func(message string)

// AlertCore tees entries at or above minLevel that carry AlertField to a sink.
type AlertCore struct {
	zapcore.Core
	minLevel zapcore.Level
	sink     AlertSink
	fields   []zapcore.Field
}

func (a *AlertCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(a.fields)+len(fields))
	merged = append(merged, a.fields...)
	merged = append(merged, fields...)
	return &AlertCore{
		Core:     a.Core.With(fields),
		minLevel: a.minLevel,
		sink:     a.sink,
		fields:   merged,
	}
}

func (a *AlertCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if a.Enabled(entry.Level) {
		return checked.AddCore(entry, a)
	}
	return checked
}

func (a *AlertCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	all := append(append([]zapcore.Field{}, a.fields...), fields...)
	if entry.Level >= a.minLevel && hasAlertFlag(all) {
		go a.sink(FormatAlert(entry, all))
	}
	return a.Core.Write(entry, fields)
}

func hasAlertFlag(fields []zapcore.Field) bool {
	for _, f := range fields {
		if f.Key == alertFieldKey && f.Type == zapcore.BoolType && f.Integer == 1 {
			return true
		}
	}
	return false
}

// FormatAlert renders an entry and its fields as plain text.
func FormatAlert(entry zapcore.Entry, fields []zapcore.Field) string {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		if f.Key == alertFieldKey {
			continue
		}
		f.AddTo(enc)
	}

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 %s Alert\n\n%s\n\n", entry.Level.CapitalString(), entry.Message))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("• %s: %v\n", k, enc.Fields[k]))
	}
	b.WriteString(fmt.Sprintf("\n%s", entry.Time.UTC().Format("2006-01-02 15:04:05 MST")))
	return b.String()
}

// WithAlerts returns a logger that also forwards flagged entries at or above
// minLevel to sink.
func (l *Logger) WithAlerts(minLevel zapcore.Level, sink AlertSink) *Logger {
	return &Logger{l.Logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &AlertCore{Core: core, minLevel: minLevel, sink: sink}
	}))}
}
