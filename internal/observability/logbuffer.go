package observability

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// LogEntry is one captured log line as served by the admin log endpoint.
type LogEntry struct {
	Time    time.Time      `json:"time"`
	Level   string         `json:"level"`
	Logger  string         `json:"logger,omitempty"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

type ring struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	full    bool
}

// LogBuffer keeps the most recent log entries in memory. It is a
// zapcore.Core so it can be teed next to the regular encoder output.
// Once full, the oldest entry is overwritten.
type LogBuffer struct {
	zapcore.LevelEnabler
	ring   *ring
	fields []zapcore.Field
}

const defaultLogBufferSize = 500

func NewLogBuffer(size int, level zapcore.LevelEnabler) *LogBuffer {
	if size <= 0 {
		size = defaultLogBufferSize
	}
	if level == nil {
		level = zapcore.InfoLevel
	}
	return &LogBuffer{
		LevelEnabler: level,
		ring:         &ring{entries: make([]LogEntry, size)},
	}
}

func (b *LogBuffer) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(b.fields)+len(fields))
	merged = append(merged, b.fields...)
	merged = append(merged, fields...)
	return &LogBuffer{
		LevelEnabler: b.LevelEnabler,
		ring:         b.ring,
		fields:       merged,
	}
}

func (b *LogBuffer) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if b.Enabled(ent.Level) {
		return ce.AddCore(ent, b)
	}
	return ce
}

func (b *LogBuffer) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range b.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	entry := LogEntry{
		Time:    ent.Time,
		Level:   ent.Level.String(),
		Logger:  ent.LoggerName,
		Message: ent.Message,
	}
	if len(enc.Fields) > 0 {
		entry.Fields = enc.Fields
	}

	r := b.ring
	r.mu.Lock()
	r.entries[r.next] = entry
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
	r.mu.Unlock()
	return nil
}

func (b *LogBuffer) Sync() error {
	return nil
}

// Recent returns up to limit entries not older than since, oldest first.
// A limit <= 0 returns everything retained.
func (b *LogBuffer) Recent(limit int, since time.Time) []LogEntry {
	r := b.ring
	r.mu.Lock()
	var ordered []LogEntry
	if r.full {
		ordered = append(ordered, r.entries[r.next:]...)
	}
	ordered = append(ordered, r.entries[:r.next]...)
	r.mu.Unlock()

	if !since.IsZero() {
		kept := ordered[:0]
		for _, e := range ordered {
			if !e.Time.Before(since) {
				kept = append(kept, e)
			}
		}
		ordered = kept
	}
	if limit > 0 && len(ordered) > limit {
		ordered = ordered[len(ordered)-limit:]
	}
	return ordered
}
