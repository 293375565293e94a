// Package shaded provides the long-running daemon that keeps the host
// terminal in step with the operating system appearance.
package shaded

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/palettelabs/shade/internal/config"
	"github.com/palettelabs/shade/internal/session"
)

// Options configure the daemon runtime.
type Options struct {
	// Session is the runtime the daemon drives. Required.
	Session *session.Session

	// PreferencePath is the preference document watched for switches
	// made by other shade processes. Required.
	PreferencePath string

	// InstallPalettes writes missing Ghostty theme files on startup.
	InstallPalettes bool

	Version string
}

// Daemon is the long-running appearance sync process.
type Daemon struct {
	cfg     *config.Config
	logger  zerolog.Logger
	opts    Options
	session *session.Session
}

// New constructs a daemon with the provided configuration.
func New(cfg *config.Config, logger zerolog.Logger, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if opts.Session == nil {
		return nil, errors.New("session is required")
	}
	if opts.PreferencePath == "" {
		return nil, errors.New("preference path is required")
	}

	return &Daemon{
		cfg:     cfg,
		logger:  logger,
		opts:    opts,
		session: opts.Session,
	}, nil
}

// Run applies the startup state, starts the poll loop and the
// preference watcher, and blocks until the context is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	if err := d.session.Startup(ctx); err != nil {
		return err
	}

	if d.opts.InstallPalettes {
		report, err := d.session.InstallPalettes(ctx)
		if err != nil {
			d.logger.Warn().Err(err).Msg("palette install failed")
		} else if len(report.Written) > 0 {
			d.logger.Info().Strs("written", report.Written).Msg("installed ghostty themes")
		}
	}

	if err := d.session.StartPolling(ctx); err != nil {
		return err
	}
	defer d.session.StopPolling()

	watcher, err := d.startWatcher(ctx)
	if err != nil {
		// Polling still keeps the host correct; only cross-process
		// switches lose their fast path.
		d.logger.Warn().Err(err).Msg("preference watcher unavailable")
	} else {
		defer watcher.Close()
	}

	d.logger.Info().
		Str("version", d.opts.Version).
		Str("preference", d.opts.PreferencePath).
		Dur("poll_interval", d.cfg.Poll.Interval).
		Msg("shaded started")

	<-ctx.Done()

	d.logger.Info().Msg("shaded shutting down")
	return nil
}

// startWatcher watches the directory holding the preference document.
// Watching the file itself would break the first time another process
// recreates it.
func (d *Daemon) startWatcher(ctx context.Context) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(d.opts.PreferencePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		watcher.Close()
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	go d.watchLoop(ctx, watcher)
	return watcher, nil
}

func (d *Daemon) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	target := filepath.Clean(d.opts.PreferencePath)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			d.logger.Debug().
				Str("op", event.Op.String()).
				Str("file", event.Name).
				Msg("preference change detected")
			d.session.ReloadPreference(ctx)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.logger.Warn().Err(err).Msg("preference watcher error")
		}
	}
}
