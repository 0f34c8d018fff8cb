package chi

import (
	"context"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kuriozlab/vecman/internal/domain"
	collectionuc "github.com/kuriozlab/vecman/internal/usecase/collection"
	documentuc "github.com/kuriozlab/vecman/internal/usecase/document"
	healthuc "github.com/kuriozlab/vecman/internal/usecase/health"
)

// fakeCollection is the in-memory state of one collection.
type fakeCollection struct {
	spec      domain.CollectionSpec
	updatedAt string
	payloads  []map[string]any
}

// fakeStore is an in-memory stand-in for the Qdrant-backed repositories. It
// satisfies the collection repository, the document repository, and the
// health pinger contracts at once.
type fakeStore struct {
	collections map[string]*fakeCollection

	pingErr error
	listErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{collections: make(map[string]*fakeCollection)}
}

func (f *fakeStore) Exists(_ context.Context, name string) (bool, error) {
	_, ok := f.collections[name]
	return ok, nil
}

func (f *fakeStore) Create(_ context.Context, spec domain.CollectionSpec) error {
	if _, ok := f.collections[spec.Name]; ok {
		return domain.ErrAlreadyExists
	}
	f.collections[spec.Name] = &fakeCollection{spec: spec}
	return nil
}

func (f *fakeStore) Get(_ context.Context, name string) (domain.Collection, error) {
	col, ok := f.collections[name]
	if !ok {
		return domain.Collection{}, domain.ErrNotFound
	}
	return domain.Collection{
		Name:                name,
		Description:         col.spec.Description,
		VectorSize:          col.spec.VectorSize,
		Distance:            string(col.spec.Distance),
		PointsCount:         uint64(len(col.payloads)),
		IndexedVectorsCount: uint64(len(col.payloads)),
		Status:              "Green",
		CreatedAt:           col.spec.CreatedAt,
		UpdatedAt:           col.updatedAt,
	}, nil
}

func (f *fakeStore) List(ctx context.Context) ([]domain.Collection, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	sort.Strings(names)

	cols := make([]domain.Collection, 0, len(names))
	for _, name := range names {
		col, err := f.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func (f *fakeStore) UpdateMetadata(_ context.Context, name string, description *string, updatedAt string) error {
	col, ok := f.collections[name]
	if !ok {
		return domain.ErrNotFound
	}
	col.spec.Description = description
	col.updatedAt = updatedAt
	return nil
}

func (f *fakeStore) Delete(_ context.Context, name string) error {
	if _, ok := f.collections[name]; !ok {
		return domain.ErrNotFound
	}
	delete(f.collections, name)
	return nil
}

func (f *fakeStore) Recreate(_ context.Context, name string) error {
	col, ok := f.collections[name]
	if !ok {
		return domain.ErrNotFound
	}
	col.payloads = nil
	return nil
}

func (f *fakeStore) ListPayloads(_ context.Context, name string) ([]map[string]any, error) {
	col, ok := f.collections[name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return col.payloads, nil
}

func (f *fakeStore) CountByFilename(_ context.Context, name, filename string) (int, error) {
	col, ok := f.collections[name]
	if !ok {
		return 0, domain.ErrNotFound
	}
	n := 0
	for _, p := range col.payloads {
		if p[domain.FieldFilename] == filename {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) DeleteByFilename(_ context.Context, name, filename string) error {
	col, ok := f.collections[name]
	if !ok {
		return domain.ErrNotFound
	}
	kept := col.payloads[:0]
	for _, p := range col.payloads {
		if p[domain.FieldFilename] != filename {
			kept = append(kept, p)
		}
	}
	col.payloads = kept
	return nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.pingErr
}

// seed inserts a collection with chunk payloads, bypassing the service layer.
func (f *fakeStore) seed(name string, filenames ...string) {
	col := &fakeCollection{spec: domain.CollectionSpec{
		Name:       name,
		VectorSize: 768,
		Distance:   domain.DistanceCosine,
		CreatedAt:  "2026-01-10T12:00:00Z",
	}}
	for i, filename := range filenames {
		col.payloads = append(col.payloads, map[string]any{
			domain.FieldFilename:     filename,
			domain.FieldDocumentHash: "hash-" + filename,
			domain.FieldFormat:       "pdf",
			domain.FieldChunk:        int64(i),
			domain.FieldTotalPages:   int64(10),
			domain.FieldTotalChunks:  int64(3),
			domain.FieldDate:         "2026-01-10",
		})
	}
	f.collections[name] = col
}

func newTestServer(t *testing.T) (*chi.Mux, *fakeStore) {
	t.Helper()
	fs := newFakeStore()
	logger := zap.NewNop()

	srv := NewServer(
		collectionuc.New(fs),
		documentuc.New(fs, fs),
		healthuc.New(fs),
		logger,
	)

	r := chi.NewRouter()
	srv.Routes(r)
	return r, fs
}
