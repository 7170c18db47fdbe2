package setup

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fourchess/fourchess/backend/internal/handler"
	"github.com/fourchess/fourchess/backend/internal/service"
	"github.com/fourchess/fourchess/backend/internal/storage/fs"
	"github.com/fourchess/fourchess/backend/internal/storage/memory"
	"github.com/fourchess/fourchess/backend/internal/storage/pg"
	"github.com/fourchess/fourchess/backend/internal/storage/redis"
	"github.com/fourchess/fourchess/shared/config"
	"github.com/fourchess/fourchess/shared/logger"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Media   *fs.Storage
	Handler *handler.Handler
	// GC is nil when the collector is disabled.
	GC *service.MediaGarbageCollector

	closers []io.Closer
}

// SetupDependencies connects the stores, prepares the schema and wires the
// services into a handler.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg}

	storage, err := pg.New(ctx, cfg.Private.Pg)
	if err != nil {
		return nil, err
	}
	deps.Storage = storage
	deps.closers = append(deps.closers, closerFunc(storage.Cleanup))

	if err := storage.Migrate(ctx); err != nil {
		deps.Close()
		return nil, err
	}
	if err := storage.SeedBoards(ctx, cfg.Public.Boards); err != nil {
		deps.Close()
		return nil, err
	}

	media, err := fs.New(fs.Config{
		ImageRoot:      cfg.Public.Media.ImageRoot,
		VideoRoot:      cfg.Public.Media.VideoRoot,
		MaxBytes:       cfg.Public.Media.MaxBytes,
		MaxImagePixels: cfg.Public.Media.MaxImagePixels,
	})
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Media = media

	var cache service.BoardCache = memory.NewBoardCache(cfg.Public.BoardCacheTTL)
	if cfg.Private.Redis.Addr != "" {
		client, err := redis.NewClient(ctx, cfg.Private.Redis)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.closers = append(deps.closers, client)
		cache = redis.NewBoardCache(client, cfg.Public.BoardCacheTTL)
		logger.Log.Info("board cache enabled", "addr", cfg.Private.Redis.Addr)
	}

	gate, err := service.NewGate(cfg.Private.AdminSecret, cfg.Private.AdminSecretHash)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("admin gate: %w", err)
	}

	board := service.NewBoard(storage, cache, cfg.Public.ThreadsPerPage)
	thread := service.NewThread(storage, storage, media)
	reply := service.NewReply(storage)
	moderation := service.NewModeration(gate, storage, storage, storage, cache)

	deps.Handler = handler.New(board, thread, reply, moderation, storage, &cfg.Public)

	if cfg.Public.Media.GCInterval > 0 {
		deps.GC = service.NewMediaGarbageCollector(storage, media, cfg.Public.Media.GCSafetyAge)
	}

	return deps, nil
}

// Close releases connections in reverse order of creation.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
