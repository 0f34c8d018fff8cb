package document

import "context"

// Repository defines the point-scanning contract for document aggregation.
type Repository interface {
	ListPayloads(ctx context.Context, collectionName string) ([]map[string]any, error)
	CountByFilename(ctx context.Context, collectionName, filename string) (int, error)
	DeleteByFilename(ctx context.Context, collectionName, filename string) error
}

// CollectionChecker reports collection existence, used as a precondition for
// every document operation.
type CollectionChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}
