package models

import (
	"encoding/json"
	"strings"
	"time"
)

// EventType categorizes events in the change journal.
type EventType string

const (
	// Theme events
	EventTypeThemeApplied EventType = "theme.applied"
	EventTypePairSwitched EventType = "pair.switched"

	// Ghostty events
	EventTypePalettesInstalled EventType = "palettes.installed"
	EventTypeConfigSynced      EventType = "config.synced"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypePair   EntityType = "pair"
	EntityTypeSystem EntityType = "system"
)

// Trigger identifies what caused a theme application.
type Trigger string

const (
	TriggerStartup Trigger = "startup"
	TriggerPoll    Trigger = "poll"
	TriggerSwitch  Trigger = "switch"
)

// Event represents an append-only journal entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity, usually a pair id.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	validation := &ValidationErrors{}
	if strings.TrimSpace(string(e.Type)) == "" {
		validation.AddMessage("type", "event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		validation.AddMessage("entity_type", "entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		validation.AddMessage("entity_id", "entity_id is required")
	}
	return validation.Err()
}

// ThemeAppliedPayload is the payload for theme.applied events.
type ThemeAppliedPayload struct {
	Pair    string  `json:"pair"`
	Variant string  `json:"variant"`
	Mode    Mode    `json:"mode"`
	Trigger Trigger `json:"trigger"`
}

// PairSwitchedPayload is the payload for pair.switched events.
type PairSwitchedPayload struct {
	OldPair string `json:"old_pair"`
	NewPair string `json:"new_pair"`
}

// PalettesInstalledPayload is the payload for palettes.installed events.
type PalettesInstalledPayload struct {
	Written []string `json:"written,omitempty"`
	Skipped []string `json:"skipped,omitempty"`
}

// ConfigSyncedPayload is the payload for config.synced events.
type ConfigSyncedPayload struct {
	Path    string `json:"path"`
	Updated bool   `json:"updated"`
}
