package document

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/kuriozlab/vecman/internal/domain"
	qdrantutil "github.com/kuriozlab/vecman/internal/qdrant"
)

// scrollPageSize is the page size for full collection scans.
const scrollPageSize = 100

// store is the consumer interface for point scanning (ISP).
type store interface {
	ScrollPage(ctx context.Context, req *qdrant.ScrollPoints) ([]*qdrant.RetrievedPoint, *qdrant.PointId, error)
	Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error)
	DeletePoints(ctx context.Context, req *qdrant.DeletePoints) error
}

// Repo implements usecase/document.Repository against Qdrant.
type Repo struct {
	store store
}

// New creates a document repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ListPayloads scans every point of a collection via cursor pagination and
// returns the payloads in scan order. Vectors are never fetched.
func (r *Repo) ListPayloads(ctx context.Context, collectionName string) ([]map[string]any, error) {
	var payloads []map[string]any
	var offset *qdrant.PointId

	for {
		points, next, err := r.store.ScrollPage(ctx, &qdrant.ScrollPoints{
			CollectionName: collectionName,
			Limit:          qdrant.PtrOf(uint32(scrollPageSize)),
			Offset:         offset,
			WithPayload:    qdrant.NewWithPayload(true),
			WithVectors:    qdrant.NewWithVectors(false),
		})
		if err != nil {
			return nil, fmt.Errorf("scroll %s: %w", collectionName, err)
		}

		for _, p := range points {
			payloads = append(payloads, qdrantutil.ValuesToMap(p.GetPayload()))
		}

		if next == nil {
			return payloads, nil
		}
		offset = next
	}
}

// CountByFilename returns the exact number of points whose filename payload
// matches the given value.
func (r *Repo) CountByFilename(ctx context.Context, collectionName, filename string) (int, error) {
	n, err := r.store.Count(ctx, &qdrant.CountPoints{
		CollectionName: collectionName,
		Filter:         filenameFilter(filename),
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collectionName, err)
	}
	return int(n), nil
}

// DeleteByFilename removes every point whose filename payload matches the
// given value, waiting for the operation to be applied.
func (r *Repo) DeleteByFilename(ctx context.Context, collectionName, filename string) error {
	err := r.store.DeletePoints(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{
				Filter: filenameFilter(filename),
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("delete by filename %s: %w", collectionName, err)
	}
	return nil
}

func filenameFilter(filename string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch(domain.FieldFilename, filename),
		},
	}
}
