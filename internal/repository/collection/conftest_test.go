package collection

import (
	"context"
	"testing"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	collectionExistsFn func(ctx context.Context, name string) (bool, error)
	listCollectionsFn  func(ctx context.Context) ([]string, error)
	collectionInfoFn   func(ctx context.Context, name string) (*qdrant.CollectionInfo, error)
	createCollectionFn func(ctx context.Context, req *qdrant.CreateCollection) error
	updateCollectionFn func(ctx context.Context, req *qdrant.UpdateCollection) error
	deleteCollectionFn func(ctx context.Context, name string) error
	createFieldIndexFn func(ctx context.Context, req *qdrant.CreateFieldIndexCollection) error
}

func (m *mockStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	if m.collectionExistsFn != nil {
		return m.collectionExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) ListCollections(ctx context.Context) ([]string, error) {
	if m.listCollectionsFn != nil {
		return m.listCollectionsFn(ctx)
	}
	return nil, nil
}

func (m *mockStore) CollectionInfo(ctx context.Context, name string) (*qdrant.CollectionInfo, error) {
	if m.collectionInfoFn != nil {
		return m.collectionInfoFn(ctx, name)
	}
	return &qdrant.CollectionInfo{}, nil
}

func (m *mockStore) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	if m.createCollectionFn != nil {
		return m.createCollectionFn(ctx, req)
	}
	return nil
}

func (m *mockStore) UpdateCollection(ctx context.Context, req *qdrant.UpdateCollection) error {
	if m.updateCollectionFn != nil {
		return m.updateCollectionFn(ctx, req)
	}
	return nil
}

func (m *mockStore) DeleteCollection(ctx context.Context, name string) error {
	if m.deleteCollectionFn != nil {
		return m.deleteCollectionFn(ctx, name)
	}
	return nil
}

func (m *mockStore) CreateFieldIndex(ctx context.Context, req *qdrant.CreateFieldIndexCollection) error {
	if m.createFieldIndexFn != nil {
		return m.createFieldIndexFn(ctx, req)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, zap.NewNop())
	return repo, ms
}

// testInfo builds a live collection info fixture in the shape the store
// returns for a 768-dim cosine collection with metadata.
func testInfo() *qdrant.CollectionInfo {
	return &qdrant.CollectionInfo{
		Status:              qdrant.CollectionStatus_Green,
		PointsCount:         qdrant.PtrOf(uint64(5)),
		IndexedVectorsCount: qdrant.PtrOf(uint64(5)),
		Config: &qdrant.CollectionConfig{
			Params: &qdrant.CollectionParams{
				VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
					Size:     768,
					Distance: qdrant.Distance_Cosine,
				}),
			},
			Metadata: map[string]*qdrant.Value{
				metaDescription: {Kind: &qdrant.Value_StringValue{StringValue: "course material"}},
				metaCreatedAt:   {Kind: &qdrant.Value_StringValue{StringValue: "2026-01-10T12:00:00Z"}},
			},
		},
	}
}
