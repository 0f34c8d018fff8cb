package collection

import (
	"context"
	"fmt"
	"sort"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/kuriozlab/vecman/internal/domain"
)

// store is the consumer interface for collection persistence (ISP).
type store interface {
	CollectionExists(ctx context.Context, name string) (bool, error)
	ListCollections(ctx context.Context) ([]string, error)
	CollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error)
	CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error
	UpdateCollection(ctx context.Context, req *qdrant.UpdateCollection) error
	DeleteCollection(ctx context.Context, name string) error
	CreateFieldIndex(ctx context.Context, req *qdrant.CreateFieldIndexCollection) error
}

// defaultPayloadIndexes is the known chunk payload schema. Indexes accelerate
// filename filters; they are not required for correctness.
var defaultPayloadIndexes = map[string]qdrant.FieldType{
	domain.FieldFilename:     qdrant.FieldType_FieldTypeKeyword,
	domain.FieldDocumentHash: qdrant.FieldType_FieldTypeKeyword,
	domain.FieldFormat:       qdrant.FieldType_FieldTypeKeyword,
	domain.FieldDate:         qdrant.FieldType_FieldTypeKeyword,
	domain.FieldChunk:        qdrant.FieldType_FieldTypeInteger,
	domain.FieldTotalPages:   qdrant.FieldType_FieldTypeInteger,
	domain.FieldTotalChunks:  qdrant.FieldType_FieldTypeInteger,
}

// Repo implements usecase/collection.Repository against Qdrant.
type Repo struct {
	store  store
	logger *zap.Logger
}

// New creates a collection repository.
func New(s store, logger *zap.Logger) *Repo {
	return &Repo{store: s, logger: logger}
}

// Exists reports whether a collection exists.
func (r *Repo) Exists(ctx context.Context, name string) (bool, error) {
	exists, err := r.store.CollectionExists(ctx, name)
	if err != nil {
		return false, fmt.Errorf("check exists: %w", err)
	}
	return exists, nil
}

// Create creates a collection with native metadata and best-effort payload
// indexes. An individual index failure is logged and swallowed.
func (r *Repo) Create(ctx context.Context, spec domain.CollectionSpec) error {
	exists, err := r.Exists(ctx, spec.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, spec.Name)
	}

	req := &qdrant.CreateCollection{
		CollectionName: spec.Name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     spec.VectorSize,
			Distance: distanceToQdrant(spec.Distance),
		}),
		Metadata: createMetadata(spec.Description, spec.CreatedAt),
	}
	if err := r.store.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("create collection %s: %w", spec.Name, err)
	}

	r.createPayloadIndexes(ctx, spec.Name)
	return nil
}

// Get returns the live stats view of a collection.
func (r *Repo) Get(ctx context.Context, name string) (domain.Collection, error) {
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return domain.Collection{}, err
	}
	if !exists {
		return domain.Collection{}, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	info, err := r.store.CollectionInfo(ctx, name)
	if err != nil {
		return domain.Collection{}, err
	}
	return collectionFromInfo(name, info), nil
}

// List returns the stats of every collection, sorted by name. Each listed
// name costs one extra info read against the store.
func (r *Repo) List(ctx context.Context) ([]domain.Collection, error) {
	names, err := r.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	cols := make([]domain.Collection, 0, len(names))
	for _, name := range names {
		info, err := r.store.CollectionInfo(ctx, name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, collectionFromInfo(name, info))
	}
	return cols, nil
}

// UpdateMetadata replaces the collection metadata with the new description
// and updated_at, carrying the existing created_at forward.
func (r *Repo) UpdateMetadata(ctx context.Context, name string, description *string, updatedAt string) error {
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	info, err := r.store.CollectionInfo(ctx, name)
	if err != nil {
		return err
	}

	req := &qdrant.UpdateCollection{
		CollectionName: name,
		Metadata:       updateMetadata(info.GetConfig().GetMetadata(), description, updatedAt),
	}
	if err := r.store.UpdateCollection(ctx, req); err != nil {
		return fmt.Errorf("update collection %s: %w", name, err)
	}
	return nil
}

// Delete removes a collection outright.
func (r *Repo) Delete(ctx context.Context, name string) error {
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	if err := r.store.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	return nil
}

// Recreate wipes a collection by delete-then-create, preserving its vector
// configuration and metadata and restoring the payload indexes. The two
// steps are independent store calls with no atomicity guarantee.
func (r *Repo) Recreate(ctx context.Context, name string) error {
	exists, err := r.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}

	info, err := r.store.CollectionInfo(ctx, name)
	if err != nil {
		return err
	}
	vectors := info.GetConfig().GetParams().GetVectorsConfig()
	metadata := info.GetConfig().GetMetadata()

	if err := r.store.DeleteCollection(ctx, name); err != nil {
		return fmt.Errorf("delete collection %s: %w", name, err)
	}
	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig:  vectors,
		Metadata:       metadata,
	}
	if err := r.store.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("recreate collection %s: %w", name, err)
	}

	r.createPayloadIndexes(ctx, name)
	return nil
}

func (r *Repo) createPayloadIndexes(ctx context.Context, name string) {
	fields := make([]string, 0, len(defaultPayloadIndexes))
	for field := range defaultPayloadIndexes {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		fieldType := defaultPayloadIndexes[field]
		err := r.store.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
			CollectionName: name,
			FieldName:      field,
			FieldType:      &fieldType,
		})
		if err != nil {
			r.logger.Warn("payload index not created",
				zap.String("collection", name),
				zap.String("field", field),
				zap.Error(err),
			)
		}
	}
}
