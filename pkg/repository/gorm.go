package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/aseertime/pkg/config"
	"github.com/example/aseertime/pkg/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to MySQL or SQLite and migrates every catalog table.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	}

	if err := db.AutoMigrate(
		&models.Branch{},
		&models.DeliveryZone{},
		&models.Category{},
		&models.Product{},
		&models.Settings{},
		&models.Order{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return db, nil
}

// Gorm stores one model type in its table. T must be a gorm model keyed by an "id" column.
type Gorm[T Entity] struct {
	db *gorm.DB
}

func NewGorm[T Entity](db *gorm.DB) *Gorm[T] {
	return &Gorm[T]{db: db}
}

func (r *Gorm[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list: %w", err)
	}
	return out, nil
}

func (r *Gorm[T]) Get(ctx context.Context, id string) (T, error) {
	var v T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return v, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return v, fmt.Errorf("failed to get %s: %w", id, err)
	}
	return v, nil
}

func (r *Gorm[T]) Put(ctx context.Context, v T) error {
	if err := r.db.WithContext(ctx).Save(&v).Error; err != nil {
		return fmt.Errorf("failed to save %s: %w", v.Key(), err)
	}
	return nil
}

func (r *Gorm[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (r *Gorm[T]) ReplaceAll(ctx context.Context, items []T) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
			return fmt.Errorf("failed to clear table: %w", err)
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(items, 100).Error; err != nil {
			return fmt.Errorf("failed to insert: %w", err)
		}
		return nil
	})
}

func (r *Gorm[T]) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count: %w", err)
	}
	return int(n), nil
}
