package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/autoquote/pkg/adapters/bunt"
	"github.com/aretw0/autoquote/pkg/adapters/file"
	"github.com/aretw0/autoquote/pkg/adapters/loam"
	"github.com/aretw0/autoquote/pkg/adapters/memory"
	"github.com/aretw0/autoquote/pkg/adapters/redis"
	"github.com/aretw0/autoquote/pkg/domain"
	"github.com/aretw0/autoquote/pkg/ports"
)

// DefaultBuntPath is the database file of the bunt store when --store-path is empty.
const DefaultBuntPath = ".autoquote/settings.db"

// openStore creates the settings store selected by --store.
func openStore(ctx context.Context, opts Options, logger *slog.Logger) (ports.SettingsStore, func() error, error) {
	noop := func() error { return nil }

	switch opts.Store {
	case StoreMemory:
		return memory.NewStore(), noop, nil

	case "", StoreFile:
		var fileOpts []file.Option
		switch opts.StoreFormat {
		case "", string(file.FormatYAML):
		case string(file.FormatJSON):
			fileOpts = append(fileOpts, file.WithFormat(file.FormatJSON))
		default:
			return nil, nil, fmt.Errorf("unsupported store format %q", opts.StoreFormat)
		}
		store := file.NewStore(opts.StorePath, fileOpts...)
		logger.Debug("using file store", "path", store.BasePath, "format", store.Format)
		return store, noop, nil

	case StoreLoam:
		store, err := loam.Open(opts.StorePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using loam store", "dir", store.Dir())
		return store, noop, nil

	case StoreRedis:
		store := redis.New(opts.RedisAddr, "", 0)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		logger.Debug("using redis store", "addr", opts.RedisAddr)
		return store, store.Close, nil

	case StoreBunt:
		path := opts.StorePath
		if path == "" {
			path = DefaultBuntPath
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
		}
		store, err := bunt.Open(path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using buntdb store", "path", path)
		return store, store.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", domain.ErrUnknownStore, opts.Store)
}
