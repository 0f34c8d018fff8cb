package collection

import (
	"context"

	"github.com/kuriozlab/vecman/internal/domain"
)

// Repository defines the storage contract for collections.
type Repository interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, spec domain.CollectionSpec) error
	Get(ctx context.Context, name string) (domain.Collection, error)
	List(ctx context.Context) ([]domain.Collection, error)
	UpdateMetadata(ctx context.Context, name string, description *string, updatedAt string) error
	Delete(ctx context.Context, name string) error
	Recreate(ctx context.Context, name string) error
}
