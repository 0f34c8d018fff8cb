package collection

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/kuriozlab/vecman/internal/domain"
	qdrantutil "github.com/kuriozlab/vecman/internal/qdrant"
)

// Metadata keys on the collection itself (not point payload fields).
const (
	metaDescription = "description"
	metaCreatedAt   = "created_at"
	metaUpdatedAt   = "updated_at"
)

func distanceToQdrant(d domain.Distance) qdrant.Distance {
	switch d {
	case domain.DistanceEuclid:
		return qdrant.Distance_Euclid
	case domain.DistanceDot:
		return qdrant.Distance_Dot
	default:
		return qdrant.Distance_Cosine
	}
}

func createMetadata(description *string, createdAt string) map[string]*qdrant.Value {
	meta := map[string]any{
		metaDescription: nil,
		metaCreatedAt:   createdAt,
	}
	if description != nil {
		meta[metaDescription] = *description
	}
	return qdrant.NewValueMap(meta)
}

// updateMetadata builds the replacement metadata for an update: the new
// description and updated_at, with created_at carried over from the current
// metadata so it survives the rewrite.
func updateMetadata(current map[string]*qdrant.Value, description *string, updatedAt string) map[string]*qdrant.Value {
	meta := map[string]any{
		metaDescription: nil,
		metaUpdatedAt:   updatedAt,
	}
	if description != nil {
		meta[metaDescription] = *description
	}
	if createdAt, ok := qdrantutil.ValueToAny(current[metaCreatedAt]).(string); ok && createdAt != "" {
		meta[metaCreatedAt] = createdAt
	}
	return qdrant.NewValueMap(meta)
}

// collectionFromInfo maps the store's live collection info onto the stats
// shape this service exposes.
func collectionFromInfo(name string, info *qdrant.CollectionInfo) domain.Collection {
	col := domain.Collection{
		Name:                name,
		PointsCount:         info.GetPointsCount(),
		IndexedVectorsCount: info.GetIndexedVectorsCount(),
		Status:              info.GetStatus().String(),
	}

	if params := info.GetConfig().GetParams().GetVectorsConfig().GetParams(); params != nil {
		col.VectorSize = params.GetSize()
		col.Distance = params.GetDistance().String()
	}

	meta := qdrantutil.ValuesToMap(info.GetConfig().GetMetadata())
	if desc, ok := meta[metaDescription].(string); ok {
		col.Description = &desc
	}
	if createdAt, ok := meta[metaCreatedAt].(string); ok {
		col.CreatedAt = createdAt
	}
	if updatedAt, ok := meta[metaUpdatedAt].(string); ok {
		col.UpdatedAt = updatedAt
	}

	return col
}
