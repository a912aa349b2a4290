package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/careerco/companion/internal/app"
	"github.com/careerco/companion/internal/audio"
	"github.com/careerco/companion/internal/auth"
	"github.com/careerco/companion/internal/config"
	"github.com/careerco/companion/internal/gateway"
	"github.com/careerco/companion/internal/learn"
	"github.com/careerco/companion/internal/lessons"
	"github.com/careerco/companion/internal/profile"
	"github.com/careerco/companion/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file beside the DB.
	log, closeLog, err := openLogger(dbPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	gw, err := gateway.New(ctx, cfg.Gateway, st.EventRepo(), log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "AI provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Agents will answer with canned replies. Set GEMINI_API_KEY to go live.")
		mockCfg := gateway.DefaultConfig()
		mockCfg.Provider = "mock"
		gw, err = gateway.New(ctx, mockCfg, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("init gateway: %w", err)
		}
	}

	var authStore auth.Store
	if cfg.Remote.Enabled() {
		authStore = auth.NewRemoteStore(cfg.Remote.FirebaseAPIKey, st.SessionRepo())
	} else {
		authStore = auth.NewLocalStore(st.UserRepo(), st.SessionRepo())
	}
	if n, ok := authStore.(auth.Notifier); ok {
		n.Subscribe(func(u *learn.User) {
			if u == nil {
				log.Info("auth state", "signed_in", false)
				return
			}
			log.Info("auth state", "signed_in", true, "uid", u.UID)
		})
	}

	var syncer *profile.Syncer
	if cfg.Remote.SyncEnabled() {
		syncer, err = profile.NewSyncer(ctx, cfg.Remote.FirestoreProject, log)
		if err != nil {
			log.Warn("profile sync unavailable", "err", err)
			syncer = nil
		}
	}

	lc := learn.NewContext()
	lc.SetLanguage(cfg.Language)

	// Resume a persisted session, if any.
	if u, err := authStore.Current(ctx); err == nil && u != nil {
		lc.SetUser(u)
		if syncer != nil {
			syncer.Hydrate(ctx, u, lc)
			syncer.Bind(lc, u.UID)
		}
	}

	return app.Run(app.Deps{
		Ctx:     lc,
		Auth:    authStore,
		Syncer:  syncer,
		Gateway: gw,
		Lessons: lessons.NewService(gw),
		Device:  audio.NewNullDevice(),
		Log:     log,
	})
}

// openLogger writes structured JSON logs next to the database file.
func openLogger(dbPath string) (*slog.Logger, func(), error) {
	path := filepath.Join(filepath.Dir(dbPath), "companion.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return log, func() { f.Close() }, nil
}
