package catalog

import (
	"context"
	"fmt"

	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/config"
	"github.com/example/aseertime/pkg/models"
	"github.com/example/aseertime/pkg/repository"
	"github.com/example/aseertime/pkg/seed"
	"go.uber.org/zap"
)

// OpenRepositories picks storage from cfg.Driver. The returned close func
// releases the database connection; it is a no-op for memory storage.
func OpenRepositories(cfg config.DatabaseConfig) (Repositories, func() error, error) {
	if cfg.Driver == "" || cfg.Driver == "memory" {
		return NewMemoryRepositories(), func() error { return nil }, nil
	}

	db, err := repository.Open(cfg)
	if err != nil {
		return Repositories{}, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Repositories{}, nil, fmt.Errorf("failed to get database handle: %w", err)
	}

	return Repositories{
		Branches:   repository.NewGorm[models.Branch](db),
		Zones:      repository.NewGorm[models.DeliveryZone](db),
		Categories: repository.NewGorm[models.Category](db),
		Products:   repository.NewGorm[models.Product](db),
		Settings:   repository.NewGorm[models.Settings](db),
		Orders:     repository.NewGorm[models.Order](db),
	}, sqlDB.Close, nil
}

func OptionsFrom(shop config.ShopConfig) (Options, error) {
	d, err := shop.Defaults()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Overnight: shop.OvernightWindows,
		Defaults:  cart.Defaults{DeliveryFee: d.DeliveryFee, MinimumOrder: d.MinimumOrder},
	}, nil
}

// Open builds a store from configuration and seeds empty collections when
// shop.seed_on_start is set. Close the store to release its storage.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	opts, err := OptionsFrom(cfg.Shop)
	if err != nil {
		return nil, err
	}
	repos, closeRepos, err := OpenRepositories(cfg.Database)
	if err != nil {
		return nil, err
	}

	store := NewStore(repos, opts, logger)
	store.OnClose(closeRepos)

	if cfg.Shop.SeedOnStart {
		if err := store.Load(ctx, seed.Default()); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}
	logger.Info("Catalog storage ready", zap.String("driver", cfg.Database.Driver))
	return store, nil
}
