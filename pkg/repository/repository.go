package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// Entity is anything stored by string id.
type Entity interface {
	Key() string
}

// Repository is per-entity storage. Put inserts or replaces by key.
type Repository[T Entity] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Put(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []T) error
	Count(ctx context.Context) (int, error)
}
