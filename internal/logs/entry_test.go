package logs_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"moviewatch/internal/logging"
	"moviewatch/internal/logs"
)

func TestParseEntryReadsJSONHandlerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "enrichment")
	logging.WarnWithContext(logger, "enrichment failed", "enrichment_failed",
		logging.String(logging.FieldMovieID, "4f1c2a9e-0000"),
		logging.String(logging.FieldErrorKind, "not_found"),
	)

	entry, ok := logs.ParseEntry(strings.TrimSpace(buf.String()))
	if !ok {
		t.Fatalf("failed to parse %q", buf.String())
	}
	if entry.Level != slog.LevelWarn || entry.Component != "enrichment" || entry.MovieID != "4f1c2a9e-0000" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Message != "enrichment failed" || entry.Time.IsZero() {
		t.Fatalf("unexpected message or time: %+v", entry)
	}
	if entry.Attrs[logging.FieldErrorKind] != "not_found" {
		t.Fatalf("missing error kind attr: %+v", entry.Attrs)
	}

	formatted := logs.Format(entry)
	for _, want := range []string{"WARN enrichment: enrichment failed", "movie_id=4f1c2a9e-0000", "error_kind=not_found"} {
		if !strings.Contains(formatted, want) {
			t.Fatalf("formatted %q missing %q", formatted, want)
		}
	}
}

func TestParseEntryRejectsPlainText(t *testing.T) {
	if _, ok := logs.ParseEntry("not json"); ok {
		t.Fatal("plain text should not parse")
	}
}

func TestFilterMatch(t *testing.T) {
	info := logs.Entry{Level: slog.LevelInfo, MovieID: "ABCDEF12-3456"}
	warn := logs.Entry{Level: slog.LevelWarn}

	if !(logs.Filter{}).Match(info) {
		t.Fatal("zero filter should pass info")
	}
	if (logs.Filter{MinLevel: slog.LevelWarn}).Match(info) {
		t.Fatal("info should be below warn")
	}
	if !(logs.Filter{MovieID: "abcdef"}).Match(info) {
		t.Fatal("movie prefix should match case-insensitively")
	}
	if (logs.Filter{MovieID: "abcdef"}).Match(warn) {
		t.Fatal("entries without a movie should not match a movie filter")
	}
}
