package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/kv"
	"github.com/tgienger/todo/internal/logger"
	"github.com/tgienger/todo/internal/persist"
	"github.com/tgienger/todo/internal/session"
)

// redisNamespace groups this program's keys in a shared Redis database
const redisNamespace = "todo"

type globalOptions struct {
	configPath string
	ephemeral  bool
}

// backend is a record store that holds an open connection
type backend interface {
	persist.Backend
	Close() error
}

// env is everything a command needs: configuration, logging and storage
type env struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *zap.Logger
	backend backend
	adapter *persist.Adapter
}

// openEnv loads the configuration and opens the configured storage. Logs
// go to a file since the terminal UI owns the screen and the other
// commands print their results to stdout.
func openEnv(ctx context.Context, opts *globalOptions) (*env, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.ephemeral {
		cfg.Storage = config.StorageMemory
	}

	path := cfg.LogFile
	if path == "" {
		path = config.DefaultLogPath()
	}
	log, err := logger.NewFileLogger(cfg.Debug, path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		_ = logger.Sync(log)
		return nil, err
	}
	log.Info("storage opened", zap.String("storage", cfg.Storage))

	return &env{
		ctx:     ctx,
		cfg:     cfg,
		logger:  log,
		backend: b,
		adapter: persist.New(b,
			persist.WithLogger(log),
			persist.WithPrefix(cfg.KeyPrefix),
		),
	}, nil
}

func openBackend(ctx context.Context, cfg *config.Config) (backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return kv.NewMemory(), nil
	case config.StorageRedis:
		return kv.NewRedis(ctx, cfg.RedisURL, redisNamespace)
	default:
		path := cfg.DBPath
		if path == "" {
			var err error
			if path, err = db.DefaultPath(); err != nil {
				return nil, fmt.Errorf("failed to resolve database path: %w", err)
			}
		}
		database, err := db.New(path)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		return database, nil
	}
}

// session opens a session over the persisted records
func (e *env) session() *session.Session {
	return session.Open(e.ctx, e.adapter, session.WithLogger(e.logger))
}

// Close releases the storage connection and flushes the log
func (e *env) Close() error {
	err := e.backend.Close()
	_ = logger.Sync(e.logger)
	return err
}
