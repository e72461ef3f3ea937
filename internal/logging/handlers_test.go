package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerCollapses(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}

	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevel(t *testing.T) {
	var fileBuf, consoleBuf bytes.Buffer
	file := slog.NewJSONHandler(&fileBuf, &slog.HandlerOptions{Level: slog.LevelDebug})
	console := slog.NewJSONHandler(&consoleBuf, &slog.HandlerOptions{Level: slog.LevelWarn})

	logger := slog.New(newFanoutHandler(file, console))
	logger.Info("matched", slog.String("artist", "Radiohead"))

	if !bytes.Contains(fileBuf.Bytes(), []byte(`"artist"`)) {
		t.Fatalf("expected info record in file handler, got %q", fileBuf.String())
	}
	if consoleBuf.Len() != 0 {
		t.Fatalf("expected warn-level handler to skip info record, got %q", consoleBuf.String())
	}

	logger.Warn("trigger failed")
	if !bytes.Contains(consoleBuf.Bytes(), []byte("trigger failed")) {
		t.Fatalf("expected warning in console handler, got %q", consoleBuf.String())
	}
	if !newFanoutHandler(file, console).Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout enabled when any handler accepts debug")
	}
}

func TestFanoutHandlerWithAttrsReachesAllHandlers(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	fan := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))
	slog.New(fan.WithAttrs([]slog.Attr{slog.String(FieldRunID, "abc")})).Info("start")

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		if !bytes.Contains(buf.Bytes(), []byte(`"run_id":"abc"`)) {
			t.Fatalf("handler %d missing run_id: %q", i, buf.String())
		}
	}
}

func TestPrettyHandlerFoldsSubjectIntoHeader(t *testing.T) {
	var buf bytes.Buffer
	level := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, level, false))

	logger.With(slog.String(FieldComponent, "reconcile")).Info(
		"fuzzy candidate",
		slog.String(FieldStage, "match"),
		slog.Int(FieldLine, 7),
		slog.String("reason", "fuzzy:97.4"),
		slog.String("album", "OK Computer"),
	)

	out := buf.String()
	header, rest, _ := strings.Cut(out, "\n")
	if !strings.Contains(header, "INFO [reconcile] (match #7) - fuzzy candidate") {
		t.Fatalf("unexpected header %q", header)
	}
	if !strings.Contains(rest, "    - reason: fuzzy:97.4") {
		t.Fatalf("expected reason field, got %q", rest)
	}
	if !strings.Contains(rest, "    - album: OK Computer") {
		t.Fatalf("expected unquoted album with space, got %q", rest)
	}
	if strings.Contains(rest, "component") || strings.Contains(rest, "line:") {
		t.Fatalf("header fields should not repeat in body: %q", rest)
	}
}

func TestPrettyHandlerQuotesEmptyAndDedupes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, new(slog.LevelVar), false))

	logger.With(slog.String("album", "first")).Info("msg", slog.String("album", "second"), slog.String("artist", ""))

	out := buf.String()
	if strings.Count(out, "album:") != 1 || !strings.Contains(out, "album: second") {
		t.Fatalf("expected deduped album with last value, got %q", out)
	}
	if !strings.Contains(out, `artist: ""`) {
		t.Fatalf("expected empty value to be quoted, got %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
