package setup

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/mesto-decin/parking-permits/backend/internal/handler"
	"github.com/mesto-decin/parking-permits/backend/internal/service"
	"github.com/mesto-decin/parking-permits/backend/internal/storage/graph"
	"github.com/mesto-decin/parking-permits/backend/internal/storage/memory"
	"github.com/mesto-decin/parking-permits/backend/internal/storage/pg"
	"github.com/mesto-decin/parking-permits/backend/internal/storage/session"
	"github.com/mesto-decin/parking-permits/shared/api"
	"github.com/mesto-decin/parking-permits/shared/config"
	"github.com/mesto-decin/parking-permits/shared/logger"
	"github.com/mesto-decin/parking-permits/shared/zones"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config  *config.Config
	Handler *handler.Handler

	cleanup func() error
}

// Cleanup releases storage resources. Safe to call when the selected
// provider holds none.
func (d *Dependencies) Cleanup() error {
	if d.cleanup == nil {
		return nil
	}
	return d.cleanup()
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Config: cfg}

	var storage service.PermitStorage
	switch cfg.Provider {
	case config.ProviderSharePoint:
		storage, err = graph.New(cfg.Graph)
		if err != nil {
			return nil, err
		}
	case config.ProviderPostgres:
		pgStorage, err := pg.New(cfg.Pg)
		if err != nil {
			return nil, err
		}
		storage = pgStorage
		deps.cleanup = pgStorage.Cleanup
	case config.ProviderMemory:
		storage = memory.New()
	default:
		return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
	}
	logger.Log.Info("permit storage ready", "provider", string(cfg.Provider))

	var profiles session.ProfileStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		profiles = session.NewRedisStore(client, cfg.SessionTTL())
		logger.Log.Info("profile store ready", "backend", "redis", "addr", cfg.Redis.Addr)
	} else {
		profiles = session.NewMemoryStore(cfg.SessionTTL())
		logger.Log.Info("profile store ready", "backend", "memory")
	}

	permit := service.NewPermit(storage, catalog)
	validator := api.NewValidator(catalog)

	deps.Handler = handler.New(permit, profiles, catalog, validator, cfg.SessionTTL())
	return deps, nil
}

func loadCatalog(cfg *config.Config) (*zones.Catalog, error) {
	if path := cfg.Public.ZoneCatalogPath; path != "" {
		catalog, err := zones.LoadFile(path)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("zone catalog loaded", "path", path, "zones", len(catalog.Zones()))
		return catalog, nil
	}
	return zones.Default(), nil
}
