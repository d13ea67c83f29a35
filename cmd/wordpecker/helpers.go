package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/iremert/wordpecker/internal/auth"
	"github.com/iremert/wordpecker/internal/config"
	"github.com/iremert/wordpecker/internal/database"
	"github.com/iremert/wordpecker/internal/progress"
	"github.com/iremert/wordpecker/internal/store"
	"github.com/iremert/wordpecker/internal/store/firebase"
	"github.com/iremert/wordpecker/internal/store/sqlstore"
	"github.com/iremert/wordpecker/internal/store/yamlstore"
	"github.com/iremert/wordpecker/internal/tracker"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStore returns the store selected by store.driver, wrapped with retries.
func openStore(cfg *config.Config) (store.Store, io.Closer, error) {
	var (
		next   store.Store
		closer io.Closer = nopCloser{}
	)
	switch driver := cfg.Store.Driver; {
	case driver == "yaml":
		next = yamlstore.New(cfg.Store.Directory)
	case driver == "firebase":
		next = firebase.New(cfg.Store.Firebase.URL, cfg.Store.Firebase.AuthToken, time.Duration(cfg.Store.Firebase.TimeoutSeconds)*time.Second)
	case database.IsSQLDriver(driver):
		db, err := database.Open(driver, cfg.Store.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		next = sqlstore.New(db)
		closer = db
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	retrying := store.NewRetryingStore(next, cfg.Store.Retry.Attempts, time.Duration(cfg.Store.Retry.DelayMs)*time.Millisecond, slog.Default())
	return retrying, closer, nil
}

// newAuthProvider prefers a signed token over a configured user id.
func newAuthProvider(cfg *config.Config) auth.Provider {
	if cfg.Auth.Token != "" {
		return auth.NewTokenProvider(cfg.Auth.Token, cfg.Auth.JWTSecret, slog.Default())
	}
	return auth.NewStaticProvider(cfg.Auth.UserID)
}

func newEngine(cfg *config.Config, now progress.Clock) (tracker.Engine, error) {
	catalog, err := progress.LoadCatalog(cfg.Engine.AchievementsFile)
	if err != nil {
		return tracker.Engine{}, fmt.Errorf("progress.LoadCatalog() > %w", err)
	}
	loc, err := cfg.Engine.Location()
	if err != nil {
		return tracker.Engine{}, err
	}
	engine, err := tracker.NewEngine(cfg.Engine.Rules(), catalog, loc, now)
	if err != nil {
		return tracker.Engine{}, fmt.Errorf("tracker.NewEngine() > %w", err)
	}
	return engine, nil
}

// clock is replaced in tests.
var clock progress.Clock = time.Now

type app struct {
	cfg     *config.Config
	tracker *tracker.Tracker
	closer  io.Closer
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	engine, err := newEngine(cfg, clock)
	if err != nil {
		return nil, err
	}
	st, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:     cfg,
		tracker: tracker.New(st, newAuthProvider(cfg), engine, slog.Default()),
		closer:  closer,
	}, nil
}

func (a *app) Close() {
	if err := a.closer.Close(); err != nil {
		slog.Default().Warn("failed to close the store", slog.Any("error", err))
	}
}
