// Package cli provides journal event streaming for history --follow.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/palettelabs/shade/internal/db"
	"github.com/palettelabs/shade/internal/models"
)

const (
	defaultStreamPollInterval = 500 * time.Millisecond
	defaultStreamBatchSize    = 100
)

// StreamConfig configures an EventStreamer.
type StreamConfig struct {
	// PollInterval is the delay between journal polls. Default: 500ms.
	PollInterval time.Duration

	// BatchSize caps the events fetched per poll. Default: 100.
	BatchSize int

	// Since starts the stream at a point in the past. Nil streams only
	// events appended after the streamer starts.
	Since *time.Time

	// Type restricts the stream to one event type.
	Type *models.EventType

	// EntityType and EntityID restrict the stream to one entity, for
	// example a single pair.
	EntityType *models.EntityType
	EntityID   *string
}

// EventStreamer polls the journal and writes new events as JSON lines.
type EventStreamer struct {
	repo   *db.EventRepository
	out    io.Writer
	config StreamConfig
}

// NewEventStreamer creates a streamer writing to out.
func NewEventStreamer(repo *db.EventRepository, out io.Writer, config StreamConfig) *EventStreamer {
	if config.PollInterval <= 0 {
		config.PollInterval = defaultStreamPollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaultStreamBatchSize
	}
	return &EventStreamer{repo: repo, out: out, config: config}
}

// Stream emits events until the context is cancelled, which is the
// normal way to stop and returns nil.
func (s *EventStreamer) Stream(ctx context.Context) error {
	since := s.config.Since
	if since == nil {
		now := time.Now().UTC()
		since = &now
	}

	cursor := ""
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		events, next, err := s.poll(ctx, cursor, since)
		if err != nil {
			return err
		}
		if next != "" {
			cursor = next
		}
		for _, event := range events {
			if err := s.writeEvent(event); err != nil {
				return err
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll fetches everything past the cursor. The since filter only
// matters for the first poll; afterwards the cursor pins the position.
func (s *EventStreamer) poll(ctx context.Context, cursor string, since *time.Time) ([]*models.Event, string, error) {
	next := cursor
	var out []*models.Event

	for {
		query := db.EventQuery{
			Type:       s.config.Type,
			EntityType: s.config.EntityType,
			EntityID:   s.config.EntityID,
			Cursor:     next,
			Limit:      s.config.BatchSize,
		}
		if next == "" {
			query.Since = since
		}

		page, err := s.repo.Query(ctx, query)
		if err != nil {
			return nil, "", fmt.Errorf("query events: %w", err)
		}
		out = append(out, page.Events...)
		if len(page.Events) > 0 {
			next = page.Events[len(page.Events)-1].ID
		}
		if page.NextCursor == "" {
			return out, next, nil
		}
	}
}

func (s *EventStreamer) writeEvent(event *models.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.out, "%s\n", data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

// ParseSince turns a --since value into a point in time. Durations
// ("30m", "1h", "7d") are relative to now; timestamps accept RFC3339,
// a date-time without zone, or a bare date.
func ParseSince(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if d, err := parseDurationWithDays(value); err == nil {
		t := time.Now().Add(-d).UTC()
		return &t, nil
	}

	formats := []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}
	for _, format := range formats {
		if parsed, err := time.Parse(format, value); err == nil {
			t := parsed.UTC()
			return &t, nil
		}
	}

	return nil, fmt.Errorf("invalid time %q (use a duration like 1h or 7d, or a timestamp like 2026-01-02)", value)
}

// parseDurationWithDays extends time.ParseDuration with a "d" suffix.
func parseDurationWithDays(value string) (time.Duration, error) {
	if strings.HasSuffix(value, "d") {
		if days, err := strconv.ParseFloat(strings.TrimSuffix(value, "d"), 64); err == nil {
			return time.Duration(days * 24 * float64(time.Hour)), nil
		}
	}
	return time.ParseDuration(value)
}
