package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"engage/internal/catalog"
	"engage/internal/config"
	"engage/internal/journal"
	"engage/internal/logging"
	"engage/internal/profiles"
)

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	sessionID string
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{
		flags:     flags,
		sessionID: uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(strings.TrimSpace(c.flags.config))
		if err != nil {
			c.configErr = err
			return
		}
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if value := strings.TrimSpace(c.flags.library); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("--library: %w", err)
		}
		cfg.Paths.LibraryDir = expanded
	}
	if value := strings.TrimSpace(c.flags.profiles); value != "" {
		expanded, err := config.ExpandPath(value)
		if err != nil {
			return fmt.Errorf("--profiles: %w", err)
		}
		cfg.Paths.ProfileDir = expanded
	}
	if value := strings.TrimSpace(c.flags.logLevel); value != "" {
		cfg.Logging.Level = value
	}
	return cfg.Validate()
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger.With(logging.String(logging.FieldSessionID, c.sessionID))
	})
	return c.logger, c.loggerErr
}

// commandCtx attaches the session id so journal entries written during the
// command share it.
func (c *commandContext) commandCtx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithSession(ctx, c.sessionID)
}

func (c *commandContext) loadCatalog() (*catalog.Catalog, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.Paths.LibraryDir,
		catalog.WithLogger(logger),
		catalog.WithDimensions(dimensionsFor(cfg)),
	)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	return cat, nil
}

// session bundles the catalog, profile store, and optional journal a command
// works against.
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	catalog *catalog.Catalog
	store   *profiles.Store
	journal *journal.Store
}

func (s *session) Close() error {
	if s.journal == nil {
		return nil
	}
	return s.journal.Close()
}

func (c *commandContext) withSession(cmd *cobra.Command, fn func(context.Context, *session) error) error {
	ctx := c.commandCtx(cmd)
	sess, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(ctx, sess)
}

func (c *commandContext) openSession(ctx context.Context) (*session, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	cat, err := c.loadCatalog()
	if err != nil {
		return nil, err
	}

	sess := &session{cfg: cfg, logger: logger, catalog: cat}
	opts := profiles.Options{
		Dir:        cfg.Paths.ProfileDir,
		PruneStale: cfg.Reconcile.PruneStale,
		SessionID:  c.sessionID,
		Logger:     logger,
	}
	if cfg.Journal.Enabled {
		js, err := journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal unavailable; continuing without it",
				logging.String("path", cfg.Journal.Path),
				logging.Error(err),
			)
		} else {
			sess.journal = js
			opts.Recorder = js
		}
	}

	store, err := profiles.Open(ctx, cat, opts)
	if err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("open profiles: %w", err)
	}
	sess.store = store
	return sess, nil
}

func dimensionsFor(cfg *config.Config) catalog.Dimensions {
	return catalog.Dimensions{
		ThumbWidth:    cfg.Display.ThumbWidth,
		ThumbHeight:   cfg.ThumbHeight(),
		FullWidth:     cfg.Display.CenterWidth,
		FullHeight:    cfg.CenterHeight(),
		HeightToWidth: cfg.Display.HeightToWidth,
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
