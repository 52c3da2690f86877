package testutil

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogCapture is a custom zap core that captures log messages
type LogCapture struct {
	zapcore.LevelEnabler
	mu       sync.Mutex
	messages []string
}

func NewLogCapture(level zapcore.Level) *LogCapture {
	return &LogCapture{
		LevelEnabler: level,
		messages:     make([]string, 0),
	}
}

// Logger returns a zap logger writing only to the capture.
func (lc *LogCapture) Logger() *zap.Logger {
	return zap.New(lc)
}

func (lc *LogCapture) Enabled(level zapcore.Level) bool {
	return lc.LevelEnabler.Enabled(level)
}

func (lc *LogCapture) With(fields []zapcore.Field) zapcore.Core {
	return lc
}

func (lc *LogCapture) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if lc.Enabled(entry.Level) {
		return checked.AddCore(entry, lc)
	}
	return checked
}

func (lc *LogCapture) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	enc := zapcore.NewMapObjectEncoder()
	for _, field := range fields {
		field.AddTo(enc)
	}

	var buf strings.Builder
	buf.WriteString(entry.Message)
	for _, field := range fields {
		buf.WriteString(" ")
		buf.WriteString(field.Key)
		buf.WriteString("=")
		buf.WriteString(fmt.Sprintf("%v", enc.Fields[field.Key]))
	}
	lc.messages = append(lc.messages, buf.String())
	return nil
}

func (lc *LogCapture) Sync() error {
	return nil
}

func (lc *LogCapture) GetMessages() []string {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	result := make([]string, len(lc.messages))
	copy(result, lc.messages)
	return result
}

func (lc *LogCapture) Contains(pattern string) bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	for _, msg := range lc.messages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
