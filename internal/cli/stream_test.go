package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/palettelabs/shade/internal/db"
	"github.com/palettelabs/shade/internal/models"
)

// safeBuffer guards a bytes.Buffer so the test can read while the
// streamer goroutine writes.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *safeBuffer) lines() []string {
	out := strings.TrimSpace(b.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func newTestEventRepo(t *testing.T) *db.EventRepository {
	t.Helper()

	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db.NewEventRepository(database)
}

func seedEvent(t *testing.T, repo *db.EventRepository, eventType models.EventType, entityID string, ts time.Time) *models.Event {
	t.Helper()

	event := &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypePair,
		EntityID:   entityID,
		Timestamp:  ts,
	}
	if err := repo.Append(context.Background(), event); err != nil {
		t.Fatalf("failed to seed event: %v", err)
	}
	return event
}

func waitForLines(t *testing.T, buf *safeBuffer, want int) []string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lines := buf.lines(); len(lines) >= want {
			return lines
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d streamed lines, got %d: %q", want, len(buf.lines()), buf.String())
	return nil
}

func TestEventStreamerReplaysSinceHistory(t *testing.T) {
	repo := newTestEventRepo(t)
	base := time.Now().Add(-time.Hour).UTC()
	seedEvent(t, repo, models.EventTypeThemeApplied, "catppuccin", base)
	seedEvent(t, repo, models.EventTypePairSwitched, "everforest", base.Add(time.Minute))

	since := base.Add(-time.Minute)
	buf := &safeBuffer{}
	streamer := NewEventStreamer(repo, buf, StreamConfig{
		PollInterval: 10 * time.Millisecond,
		Since:        &since,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- streamer.Stream(ctx) }()

	lines := waitForLines(t, buf, 2)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected nil error after cancel, got %v", err)
	}

	var first, second models.Event
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("first line is not an event: %v", err)
	}
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("second line is not an event: %v", err)
	}
	if first.Type != models.EventTypeThemeApplied {
		t.Errorf("expected theme.applied first, got %s", first.Type)
	}
	if second.Type != models.EventTypePairSwitched {
		t.Errorf("expected pair.switched second, got %s", second.Type)
	}
}

func TestEventStreamerStreamsNewEvents(t *testing.T) {
	repo := newTestEventRepo(t)
	seedEvent(t, repo, models.EventTypeThemeApplied, "catppuccin", time.Now().Add(-time.Hour).UTC())

	buf := &safeBuffer{}
	streamer := NewEventStreamer(repo, buf, StreamConfig{
		PollInterval: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- streamer.Stream(ctx) }()

	// The pre-existing event must never show up. Give the streamer its
	// first poll before appending the live one.
	time.Sleep(50 * time.Millisecond)
	live := seedEvent(t, repo, models.EventTypeConfigSynced, "gruvbox", time.Now().UTC())

	lines := waitForLines(t, buf, 1)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("expected nil error after cancel, got %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("expected exactly one streamed event, got %d", len(lines))
	}
	var got models.Event
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("streamed line is not an event: %v", err)
	}
	if got.ID != live.ID {
		t.Errorf("expected live event %s, got %s", live.ID, got.ID)
	}
}

func TestEventStreamerFiltersType(t *testing.T) {
	repo := newTestEventRepo(t)
	base := time.Now().Add(-time.Hour).UTC()
	seedEvent(t, repo, models.EventTypeThemeApplied, "catppuccin", base)
	seedEvent(t, repo, models.EventTypePairSwitched, "everforest", base.Add(time.Second))
	seedEvent(t, repo, models.EventTypeThemeApplied, "everforest", base.Add(2*time.Second))

	since := base.Add(-time.Minute)
	wantType := models.EventTypeThemeApplied
	buf := &safeBuffer{}
	streamer := NewEventStreamer(repo, buf, StreamConfig{
		PollInterval: 10 * time.Millisecond,
		Since:        &since,
		Type:         &wantType,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- streamer.Stream(ctx) }()

	lines := waitForLines(t, buf, 2)
	cancel()
	<-done

	for i, line := range lines {
		var event models.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line %d is not an event: %v", i, err)
		}
		if event.Type != models.EventTypeThemeApplied {
			t.Errorf("line %d: expected theme.applied, got %s", i, event.Type)
		}
	}
}

func TestEventStreamerPaginatesLargeBacklog(t *testing.T) {
	repo := newTestEventRepo(t)
	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 7; i++ {
		seedEvent(t, repo, models.EventTypeThemeApplied, fmt.Sprintf("pair-%d", i), base.Add(time.Duration(i)*time.Second))
	}

	since := base.Add(-time.Minute)
	buf := &safeBuffer{}
	streamer := NewEventStreamer(repo, buf, StreamConfig{
		PollInterval: 10 * time.Millisecond,
		BatchSize:    3,
		Since:        &since,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- streamer.Stream(ctx) }()

	lines := waitForLines(t, buf, 7)
	cancel()
	<-done

	seen := make(map[string]bool)
	for _, line := range lines {
		var event models.Event
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("line is not an event: %v", err)
		}
		if seen[event.ID] {
			t.Errorf("event %s streamed twice", event.ID)
		}
		seen[event.ID] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected 7 distinct events, got %d", len(seen))
	}
}

func TestEventStreamerNilOnCancel(t *testing.T) {
	repo := newTestEventRepo(t)
	streamer := NewEventStreamer(repo, &safeBuffer{}, StreamConfig{PollInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- streamer.Stream(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error on cancel, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("streamer did not stop after cancel")
	}
}

func TestParseSince(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, got *time.Time)
	}{
		{
			name:  "empty",
			input: "",
			check: func(t *testing.T, got *time.Time) {
				if got != nil {
					t.Errorf("expected nil for empty input, got %v", got)
				}
			},
		},
		{
			name:  "whitespace",
			input: "   ",
			check: func(t *testing.T, got *time.Time) {
				if got != nil {
					t.Errorf("expected nil for whitespace input, got %v", got)
				}
			},
		},
		{
			name:  "duration hours",
			input: "1h",
			check: func(t *testing.T, got *time.Time) {
				want := now.Add(-time.Hour)
				if got == nil || got.Sub(want.UTC()).Abs() > time.Minute {
					t.Errorf("expected about %v, got %v", want, got)
				}
			},
		},
		{
			name:  "duration days",
			input: "2d",
			check: func(t *testing.T, got *time.Time) {
				want := now.Add(-48 * time.Hour)
				if got == nil || got.Sub(want.UTC()).Abs() > time.Minute {
					t.Errorf("expected about %v, got %v", want, got)
				}
			},
		},
		{
			name:  "rfc3339",
			input: "2026-01-15T10:30:00Z",
			check: func(t *testing.T, got *time.Time) {
				want := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
				if got == nil || !got.Equal(want) {
					t.Errorf("expected %v, got %v", want, got)
				}
			},
		},
		{
			name:  "date only",
			input: "2026-01-15",
			check: func(t *testing.T, got *time.Time) {
				want := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
				if got == nil || !got.Equal(want) {
					t.Errorf("expected %v, got %v", want, got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSince(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestParseSinceInvalid(t *testing.T) {
	for _, input := range []string{"not-a-time", "abc123", "2026-13-45"} {
		if _, err := ParseSince(input); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestParseDurationWithDays(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
		{"0.5d", 12 * time.Hour},
		{"1h30m", 90 * time.Minute},
		{"45s", 45 * time.Second},
	}
	for _, tt := range tests {
		got, err := parseDurationWithDays(tt.input)
		if err != nil {
			t.Errorf("parseDurationWithDays(%q) returned error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDurationWithDays(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseDurationWithDays("invalid"); err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestMustBeJSONLForFollow(t *testing.T) {
	restoreFollow, restoreJSONL := historyFollow, jsonlOutput
	defer func() {
		historyFollow, jsonlOutput = restoreFollow, restoreJSONL
	}()

	historyFollow, jsonlOutput = true, false
	if err := MustBeJSONLForFollow(); err == nil {
		t.Error("expected error when following without --jsonl")
	}

	historyFollow, jsonlOutput = true, true
	if err := MustBeJSONLForFollow(); err != nil {
		t.Errorf("unexpected error with --jsonl: %v", err)
	}

	historyFollow, jsonlOutput = false, false
	if err := MustBeJSONLForFollow(); err != nil {
		t.Errorf("unexpected error when not following: %v", err)
	}
}
