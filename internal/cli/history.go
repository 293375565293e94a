// Package cli provides the change journal listing command.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/palettelabs/shade/internal/db"
	"github.com/palettelabs/shade/internal/models"
)

var (
	historySince  string
	historyType   string
	historyPair   string
	historyLimit  int
	historyFollow bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historySince, "since", "", "only events after this time (duration like 1h or 7d, or a timestamp)")
	historyCmd.Flags().StringVar(&historyType, "type", "", "only events of this type (theme.applied, pair.switched, palettes.installed, config.synced)")
	historyCmd.Flags().StringVar(&historyPair, "pair", "", "only events touching this pair")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of events to list")
	historyCmd.Flags().BoolVar(&historyFollow, "follow", false, "stream new events as they are recorded (requires --jsonl)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded theme activity",
	Long: `List the change journal: theme applications, pair switches, palette
installs, and config syncs. With --follow, polls the journal and
streams new events as JSON lines until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := MustBeJSONLForFollow(); err != nil {
			return err
		}

		since, err := ParseSince(historySince)
		if err != nil {
			return err
		}

		var eventType *models.EventType
		if historyType != "" {
			t := models.EventType(historyType)
			eventType = &t
		}

		// The journal may hold pairs that no longer exist, so the
		// filter is not validated against the registry.
		var entityType *models.EntityType
		var entityID *string
		if historyPair != "" {
			t := models.EntityTypePair
			entityType = &t
			entityID = &historyPair
		}

		database, err := openDatabase()
		if err != nil {
			return err
		}
		defer database.Close()
		repo := db.NewEventRepository(database)

		if historyFollow {
			streamer := NewEventStreamer(repo, os.Stdout, StreamConfig{
				Since:      since,
				Type:       eventType,
				EntityType: entityType,
				EntityID:   entityID,
			})
			return streamer.Stream(cmd.Context())
		}

		page, err := repo.Query(cmd.Context(), db.EventQuery{
			Type:       eventType,
			EntityType: entityType,
			EntityID:   entityID,
			Since:      since,
			Limit:      historyLimit,
		})
		if err != nil {
			return fmt.Errorf("query journal: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(os.Stdout, page.Events)
		}

		if len(page.Events) == 0 {
			fmt.Fprintln(os.Stdout, "No events recorded.")
			return nil
		}

		headers := []string{"TIMESTAMP", "TYPE", "ENTITY", "DETAILS"}
		rows := make([][]string, 0, len(page.Events))
		for _, event := range page.Events {
			rows = append(rows, []string{
				formatTimestamp(event.Timestamp),
				string(event.Type),
				event.EntityID,
				formatEventDetails(event),
			})
		}
		if err := writeTable(os.Stdout, headers, rows); err != nil {
			return err
		}
		if page.NextCursor != "" {
			fmt.Fprintf(os.Stdout, "\nMore events available, raise --limit to see them.\n")
		}
		return nil
	},
}

// MustBeJSONLForFollow rejects --follow without --jsonl; a stream of
// indented JSON documents or table fragments is not consumable.
func MustBeJSONLForFollow() error {
	if historyFollow && !jsonlOutput {
		return fmt.Errorf("--follow requires --jsonl output")
	}
	return nil
}

func formatEventDetails(event *models.Event) string {
	switch event.Type {
	case models.EventTypeThemeApplied:
		var p models.ThemeAppliedPayload
		if err := json.Unmarshal(event.Payload, &p); err == nil {
			return fmt.Sprintf("%s via %s", p.Variant, p.Trigger)
		}
	case models.EventTypePairSwitched:
		var p models.PairSwitchedPayload
		if err := json.Unmarshal(event.Payload, &p); err == nil {
			if p.OldPair == "" {
				return fmt.Sprintf("to %s", p.NewPair)
			}
			return fmt.Sprintf("%s to %s", p.OldPair, p.NewPair)
		}
	case models.EventTypePalettesInstalled:
		var p models.PalettesInstalledPayload
		if err := json.Unmarshal(event.Payload, &p); err == nil {
			return fmt.Sprintf("%d written, %d skipped", len(p.Written), len(p.Skipped))
		}
	case models.EventTypeConfigSynced:
		var p models.ConfigSyncedPayload
		if err := json.Unmarshal(event.Payload, &p); err == nil {
			if p.Updated {
				return fmt.Sprintf("updated %s", p.Path)
			}
			return fmt.Sprintf("unchanged %s", p.Path)
		}
	}
	if len(event.Payload) > 0 {
		return string(event.Payload)
	}
	return "-"
}
