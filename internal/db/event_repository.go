package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/palettelabs/shade/internal/models"
)

// Journal errors.
var (
	ErrEventNotFound = errors.New("event not found")
	ErrInvalidEvent  = errors.New("invalid event")
)

// eventColumns is the column list shared by every journal statement.
// The argument order in Create and the scan order in scanEvent must
// match it.
const eventColumns = "id, timestamp, type, entity_type, entity_id, payload_json"

// EventRepository appends to and reads the change journal.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates an EventRepository backed by db.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// EventQuery filters a journal read. Zero-value fields are ignored.
type EventQuery struct {
	Type       *models.EventType  // only this event type
	EntityType *models.EntityType // only this entity type
	EntityID   *string            // only this entity
	Since      *time.Time         // at or after this time (inclusive)
	Until      *time.Time         // before this time (exclusive)
	Cursor     string             // resume after this event ID
	Limit      int                // page size, defaults to 100
}

// EventPage is one page of journal events, oldest first. NextCursor is
// empty on the last page.
type EventPage struct {
	Events     []*models.Event
	NextCursor string
}

// Append records an event in the journal. Events missing a type,
// entity type, or entity ID return ErrInvalidEvent.
func (r *EventRepository) Append(ctx context.Context, event *models.Event) error {
	return r.Create(ctx, event)
}

// Create records an event, filling in the ID and timestamp when unset.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Timestamp = event.Timestamp.UTC()

	var payload *string
	if len(event.Payload) > 0 {
		s := string(event.Payload)
		payload = &s
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID,
		event.Timestamp.Format(time.RFC3339),
		string(event.Type),
		string(event.EntityType),
		event.EntityID,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Get retrieves one event by ID, or ErrEventNotFound.
func (r *EventRepository) Get(ctx context.Context, id string) (*models.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	event, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	return event, err
}

// Query reads one page of events matching q, oldest first. Pagination
// is keyed on (timestamp, id) so pages stay stable while new events
// are appended behind the cursor.
func (r *EventRepository) Query(ctx context.Context, q EventQuery) (*EventPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	var conds []string
	var args []any
	if q.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*q.Type))
	}
	if q.EntityType != nil {
		conds = append(conds, "entity_type = ?")
		args = append(args, string(*q.EntityType))
	}
	if q.EntityID != nil {
		conds = append(conds, "entity_id = ?")
		args = append(args, *q.EntityID)
	}
	if q.Since != nil {
		conds = append(conds, "timestamp >= ?")
		args = append(args, q.Since.UTC().Format(time.RFC3339))
	}
	if q.Until != nil {
		conds = append(conds, "timestamp < ?")
		args = append(args, q.Until.UTC().Format(time.RFC3339))
	}
	if q.Cursor != "" {
		conds = append(conds, "(timestamp, id) > (SELECT timestamp, id FROM events WHERE id = ?)")
		args = append(args, q.Cursor)
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp, id LIMIT ?"
	// Fetching one past the page size tells us whether a next page exists.
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	page := &EventPage{Events: events}
	if len(events) > limit {
		page.Events = events[:limit]
		page.NextCursor = events[limit-1].ID
	}
	return page, nil
}

// ListByEntity reads the history of one entity, oldest first.
func (r *EventRepository) ListByEntity(ctx context.Context, entityType models.EntityType, entityID string, limit int) ([]*models.Event, error) {
	page, err := r.Query(ctx, EventQuery{
		EntityType: &entityType,
		EntityID:   &entityID,
		Limit:      limit,
	})
	if err != nil {
		return nil, err
	}
	return page.Events, nil
}

// scanEvent reads one row in eventColumns order. A sql.ErrNoRows from
// the row stays identifiable through the wrap.
func scanEvent(row interface{ Scan(...any) error }) (*models.Event, error) {
	var event models.Event
	var timestamp, eventType, entityType string
	var payload sql.NullString

	if err := row.Scan(
		&event.ID,
		&timestamp,
		&eventType,
		&entityType,
		&event.EntityID,
		&payload,
	); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	event.Type = models.EventType(eventType)
	event.EntityType = models.EntityType(entityType)
	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		event.Timestamp = t
	}
	if payload.Valid {
		event.Payload = json.RawMessage(payload.String)
	}
	return &event, nil
}
