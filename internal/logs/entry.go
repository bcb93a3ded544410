package logs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"moviewatch/internal/logging"
)

// Entry is one decoded diagnostics record.
type Entry struct {
	Time      time.Time
	Level     slog.Level
	Component string
	Message   string
	MovieID   string
	Attrs     map[string]any
}

// ParseEntry decodes a JSON log line. Lines that are not JSON objects are
// reported as not ok.
func ParseEntry(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}

	entry := Entry{Attrs: make(map[string]any)}
	for key, value := range raw {
		text, _ := value.(string)
		switch key {
		case "ts":
			entry.Time, _ = time.Parse(time.RFC3339, text)
		case slog.LevelKey:
			if err := entry.Level.UnmarshalText([]byte(text)); err != nil {
				entry.Level = slog.LevelInfo
			}
		case slog.MessageKey:
			entry.Message = text
		case logging.FieldComponent:
			entry.Component = text
		case logging.FieldMovieID:
			entry.MovieID = text
		case slog.SourceKey:
		default:
			entry.Attrs[key] = value
		}
	}
	return entry, true
}

// Filter narrows entries to a minimum level and, optionally, one movie. The
// movie filter matches on id prefix so short ids work.
type Filter struct {
	MinLevel slog.Level
	MovieID  string
}

// Match reports whether entry passes the filter.
func (f Filter) Match(entry Entry) bool {
	if entry.Level < f.MinLevel {
		return false
	}
	if id := strings.ToLower(strings.TrimSpace(f.MovieID)); id != "" {
		return strings.HasPrefix(strings.ToLower(entry.MovieID), id)
	}
	return true
}

// Format renders an entry the way the console handler prints records.
func Format(entry Entry) string {
	var b strings.Builder
	if !entry.Time.IsZero() {
		b.WriteString(entry.Time.Local().Format("2006-01-02 15:04:05"))
		b.WriteByte(' ')
	}
	b.WriteString(entry.Level.String())
	b.WriteByte(' ')
	if entry.Component != "" {
		b.WriteString(entry.Component)
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)
	if entry.MovieID != "" {
		fmt.Fprintf(&b, " %s=%s", logging.FieldMovieID, entry.MovieID)
	}
	for _, key := range slices.Sorted(maps.Keys(entry.Attrs)) {
		fmt.Fprintf(&b, " %s=%v", key, entry.Attrs[key])
	}
	return b.String()
}
