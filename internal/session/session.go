package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/palettelabs/shade/internal/appearance"
	"github.com/palettelabs/shade/internal/events"
	"github.com/palettelabs/shade/internal/ghostty"
	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/prefs"
	"github.com/palettelabs/shade/internal/themes"
)

// Session errors.
var (
	ErrRegistryRequired = errors.New("registry is required")
	ErrStoreRequired    = errors.New("preference store is required")
	ErrResolverRequired = errors.New("appearance resolver is required")
	ErrHostRequired     = errors.New("host is required")
)

// Options configures a Session.
type Options struct {
	// Registry holds the known palette pairs. Required.
	Registry *themes.Registry

	// Store persists the selected pair across restarts. Required.
	Store *prefs.Store

	// Resolver reports the OS appearance mode. Required.
	Resolver *appearance.Resolver

	// Host receives applied themes. Required.
	Host Host

	// Notifier shows switch notifications in the host UI. Optional.
	Notifier Notifier

	// Reloader asks Ghostty to re-read its config after a sync
	// changed it. Optional.
	Reloader *ghostty.Reloader

	// Events receives journal entries. Optional.
	Events events.Repository

	// GhosttyConfig overrides Ghostty config file discovery. Optional.
	GhosttyConfig string

	// DisableGhosttySync turns off the automatic config rewrite on
	// startup and switch. Sync() still works when called directly.
	DisableGhosttySync bool

	// PollInterval is how often the OS appearance is re-read.
	// Default: 2 seconds.
	PollInterval time.Duration
}

// Session owns the runtime state for one shade instance: which pair is
// active, which mode the OS reports, and the poll loop between them.
type Session struct {
	registry *themes.Registry
	store    *prefs.Store
	resolver *appearance.Resolver
	applier  *Applier
	notifier Notifier
	reloader *ghostty.Reloader
	repo     events.Repository
	poller   *appearance.Poller
	logger   zerolog.Logger

	ghosttyConfig string
	syncDisabled  bool

	mu   sync.RWMutex
	pair *themes.Pair
	mode models.Mode
}

// Status is a point-in-time snapshot of the session state.
type Status struct {
	Pair          string      `json:"pair"`
	Variant       string      `json:"variant"`
	Mode          models.Mode `json:"mode"`
	LastApplied   string      `json:"last_applied,omitempty"`
	Polling       bool        `json:"polling"`
	GhosttyConfig string      `json:"ghostty_config,omitempty"`
}

// New creates a Session from the given options.
func New(opts Options) (*Session, error) {
	if opts.Registry == nil {
		return nil, ErrRegistryRequired
	}
	if opts.Store == nil {
		return nil, ErrStoreRequired
	}
	if opts.Resolver == nil {
		return nil, ErrResolverRequired
	}
	if opts.Host == nil {
		return nil, ErrHostRequired
	}

	s := &Session{
		registry:      opts.Registry,
		store:         opts.Store,
		resolver:      opts.Resolver,
		applier:       NewApplier(opts.Host),
		notifier:      opts.Notifier,
		reloader:      opts.Reloader,
		repo:          opts.Events,
		ghosttyConfig: opts.GhosttyConfig,
		syncDisabled:  opts.DisableGhosttySync,
		mode:          models.ModeLight,
		logger:        logging.Component("session"),
	}
	s.poller = appearance.NewPoller(
		appearance.Config{Interval: opts.PollInterval},
		opts.Resolver,
		s.handleTick,
	)
	return s, nil
}

// Startup restores the persisted pair (falling back to the registry
// default), applies the variant for the current OS mode, and brings
// the Ghostty config in line. Polling is started separately.
func (s *Session) Startup(ctx context.Context) error {
	pair := s.loadPersistedPair()
	if pair == nil {
		return errors.New("registry has no pairs")
	}

	mode := s.resolver.Resolve(ctx)

	s.mu.Lock()
	s.pair = pair
	s.mode = mode
	s.mu.Unlock()

	s.applyCurrent(ctx, models.TriggerStartup, false)
	s.syncExternal(ctx)

	s.logger.Info().
		Str("pair", pair.ID).
		Str("mode", mode.String()).
		Msg("session started")
	return nil
}

// StartPolling begins the appearance poll loop.
func (s *Session) StartPolling(ctx context.Context) error {
	return s.poller.Start(ctx)
}

// StopPolling halts the poll loop. Safe to call when not polling.
func (s *Session) StopPolling() {
	s.poller.Stop()
}

// PollNow requests an immediate poll cycle outside the regular
// interval.
func (s *Session) PollNow() {
	s.poller.PollNow()
}

// Switch changes the active pair, persists the choice, force-applies
// the matching variant, and brings the Ghostty config in line. An
// unknown pair id is the one error surfaced to the user.
func (s *Session) Switch(ctx context.Context, id string) error {
	pair, err := s.registry.Get(id)
	if err != nil {
		return fmt.Errorf("unknown pair %q (valid pairs: %s)", id, strings.Join(s.registry.IDs(), ", "))
	}

	mode := s.resolver.Resolve(ctx)

	s.mu.Lock()
	var oldID string
	if s.pair != nil {
		oldID = s.pair.ID
	}
	s.pair = pair
	s.mode = mode
	s.mu.Unlock()

	// One-shot invocations switch without a Startup, so the previous
	// pair has to come from the store.
	if oldID == "" {
		if id, ok := s.store.Load(); ok {
			oldID = id
		}
	}

	if err := s.store.Save(pair.ID); err != nil {
		s.logger.Warn().Err(err).Str("pair", pair.ID).Msg("failed to persist pair selection")
	}

	if oldID != pair.ID {
		s.recordPairSwitched(ctx, oldID, pair.ID)
	}

	s.applyCurrent(ctx, models.TriggerSwitch, true)
	s.syncExternal(ctx)
	s.notify(ctx, fmt.Sprintf("shade: %s (%s)", pair.ID, pair.Variant(mode)))

	return nil
}

// ReloadPreference re-reads the persisted pair and applies it when it
// differs from the active one. Used when another process rewrites the
// preference file.
func (s *Session) ReloadPreference(ctx context.Context) {
	id, ok := s.store.Load()
	if !ok {
		return
	}
	pair, found := s.registry.Lookup(id)
	if !found {
		return
	}

	s.mu.Lock()
	changed := s.pair == nil || s.pair.ID != pair.ID
	s.pair = pair
	s.mu.Unlock()

	if !changed {
		return
	}

	s.logger.Info().Str("pair", pair.ID).Msg("preference change detected")
	s.applyCurrent(ctx, models.TriggerSwitch, false)
	s.syncExternal(ctx)
}

// InstallPalettes writes missing Ghostty theme files for every known
// pair. Existing files are left untouched.
func (s *Session) InstallPalettes(ctx context.Context) (ghostty.InstallReport, error) {
	path := s.ghosttyConfig
	if path == "" {
		path = ghostty.InstallTarget()
	}

	report, err := ghostty.InstallPalettes(path, s.registry.List())
	if err != nil {
		return report, err
	}

	if len(report.Written) > 0 || len(report.Skipped) > 0 {
		s.recordPalettesInstalled(ctx, report)
	}
	return report, nil
}

// Sync brings the Ghostty config in line with the active pair and
// requests a reload when the file changed. Before Startup the pair is
// hydrated from the preference store. It reports the config path and
// whether the file was rewritten; a missing config is a successful
// no-op with an empty path.
func (s *Session) Sync(ctx context.Context) (string, bool, error) {
	pair := s.Pair()
	if pair == nil {
		pair = s.loadPersistedPair()
		if pair == nil {
			return "", false, errors.New("registry has no pairs")
		}
	}

	path := s.ghosttyConfig
	if path == "" {
		p, ok := ghostty.FindConfig()
		if !ok {
			return "", false, nil
		}
		path = p
	} else if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", false, nil
	}

	updated, err := ghostty.SyncConfig(path, pair)
	if err != nil {
		return path, false, err
	}

	s.recordConfigSynced(ctx, pair.ID, path, updated)

	if updated && s.reloader != nil {
		if result := s.reloader.Reload(ctx); result.Err != nil {
			s.logger.Debug().Err(result.Err).Msg("ghostty reload failed")
		}
	}
	return path, updated, nil
}

// Status reports the current session state, re-resolving the OS mode.
// Before Startup the pair is hydrated from the preference store.
func (s *Session) Status(ctx context.Context) Status {
	mode := s.resolver.Resolve(ctx)

	s.mu.RLock()
	pair := s.pair
	s.mu.RUnlock()
	if pair == nil {
		pair = s.loadPersistedPair()
	}

	st := Status{
		Mode:        mode,
		LastApplied: s.applier.LastApplied(),
		Polling:     s.poller.Running(),
	}
	if pair != nil {
		st.Pair = pair.ID
		st.Variant = pair.Variant(mode)
	}
	if s.ghosttyConfig != "" {
		st.GhosttyConfig = s.ghosttyConfig
	} else if p, ok := ghostty.FindConfig(); ok {
		st.GhosttyConfig = p
	}
	return st
}

// Pair returns the active pair, or nil before Startup.
func (s *Session) Pair() *themes.Pair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pair
}

// Mode returns the most recently observed appearance mode.
func (s *Session) Mode() models.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Registry returns the pair registry the session was built with.
func (s *Session) Registry() *themes.Registry {
	return s.registry
}

// Close halts the poll loop and releases session resources.
func (s *Session) Close() {
	s.poller.Stop()
}

// handleTick records the observed mode and re-applies the active pair.
// The applier dedups, so an unchanged mode costs no host round trip.
func (s *Session) handleTick(ctx context.Context, mode models.Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()

	s.applyCurrent(ctx, models.TriggerPoll, false)
}

func (s *Session) applyCurrent(ctx context.Context, trigger models.Trigger, force bool) {
	s.mu.RLock()
	pair := s.pair
	mode := s.mode
	s.mu.RUnlock()

	if pair == nil {
		return
	}

	apply := s.applier.Apply
	if force {
		apply = s.applier.ForceApply
	}

	variant, applied, err := apply(ctx, pair, mode)
	if err != nil {
		s.logger.Debug().Err(err).Str("variant", variant).Msg("host apply failed")
		return
	}
	if applied {
		s.recordThemeApplied(ctx, pair.ID, variant, mode, trigger)
	}
}

// syncExternal is the automatic sync path used on startup and switch.
// Every failure here degrades to a log line.
func (s *Session) syncExternal(ctx context.Context) {
	if s.syncDisabled {
		return
	}
	if path, _, err := s.Sync(ctx); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("ghostty config sync failed")
	}
}

// loadPersistedPair resolves the persisted selection against the
// registry, falling back to the default pair on any miss.
func (s *Session) loadPersistedPair() *themes.Pair {
	pair := s.registry.Default()
	if id, ok := s.store.Load(); ok {
		if p, found := s.registry.Lookup(id); found {
			pair = p
		}
	}
	return pair
}

func (s *Session) notify(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.DisplayMessage(ctx, message); err != nil {
		s.logger.Debug().Err(err).Msg("host notification failed")
	}
}

// Journal writes never interrupt the session.
func (s *Session) recordThemeApplied(ctx context.Context, pairID, variant string, mode models.Mode, trigger models.Trigger) {
	if s.repo == nil {
		return
	}
	if err := events.LogThemeApplied(ctx, s.repo, pairID, variant, mode, trigger); err != nil {
		s.logger.Debug().Err(err).Msg("failed to record theme application")
	}
}

func (s *Session) recordPairSwitched(ctx context.Context, oldPair, newPair string) {
	if s.repo == nil {
		return
	}
	if err := events.LogPairSwitched(ctx, s.repo, oldPair, newPair); err != nil {
		s.logger.Debug().Err(err).Msg("failed to record pair switch")
	}
}

func (s *Session) recordPalettesInstalled(ctx context.Context, report ghostty.InstallReport) {
	if s.repo == nil {
		return
	}
	if err := events.LogPalettesInstalled(ctx, s.repo, report.Written, report.Skipped); err != nil {
		s.logger.Debug().Err(err).Msg("failed to record palette install")
	}
}

func (s *Session) recordConfigSynced(ctx context.Context, pairID, path string, updated bool) {
	if s.repo == nil {
		return
	}
	if err := events.LogConfigSynced(ctx, s.repo, pairID, path, updated); err != nil {
		s.logger.Debug().Err(err).Msg("failed to record config sync")
	}
}
