package collection

import (
	"context"
	"fmt"
	"time"

	"github.com/kuriozlab/vecman/internal/domain"
)

// Service handles collection CRUD operations.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a collection service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the timestamp source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create creates a collection with the given vector parameters. The distance
// string is mapped to a known metric, defaulting unrecognized values to
// Cosine. vector_size and distance are immutable after creation.
func (s *Service) Create(ctx context.Context, name string, description *string, vectorSize uint64, distance string) error {
	spec := domain.CollectionSpec{
		Name:        name,
		Description: description,
		VectorSize:  vectorSize,
		Distance:    domain.ParseDistance(distance),
		CreatedAt:   s.timestamp(),
	}
	if err := s.repo.Create(ctx, spec); err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	return nil
}

// Get retrieves a collection's stats by name.
func (s *Service) Get(ctx context.Context, name string) (domain.Collection, error) {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("get collection: %w", err)
	}
	return col, nil
}

// List returns the stats of all collections.
func (s *Service) List(ctx context.Context) ([]domain.Collection, error) {
	cols, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return cols, nil
}

// Update replaces the collection description, stamping updated_at.
func (s *Service) Update(ctx context.Context, name string, description *string) error {
	if err := s.repo.UpdateMetadata(ctx, name, description, s.timestamp()); err != nil {
		return fmt.Errorf("update collection: %w", err)
	}
	return nil
}

// Delete removes a collection. A collection that still holds points is only
// deleted when force is set; otherwise the call fails with ErrNotEmpty.
func (s *Service) Delete(ctx context.Context, name string, force bool) error {
	col, err := s.repo.Get(ctx, name)
	if err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	if col.PointsCount > 0 && !force {
		return fmt.Errorf("delete collection: %w: %s has %d points, use force=true",
			domain.ErrNotEmpty, name, col.PointsCount)
	}
	if err := s.repo.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// Clear wipes all points of a collection while preserving its vector
// parameters and metadata.
func (s *Service) Clear(ctx context.Context, name string) error {
	if err := s.repo.Recreate(ctx, name); err != nil {
		return fmt.Errorf("clear collection: %w", err)
	}
	return nil
}

// Exists reports whether a collection exists.
func (s *Service) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := s.repo.Exists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check collection exists: %w", err)
	}
	return exists, nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}
