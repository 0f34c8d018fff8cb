package domain

// Distance is a similarity metric for a collection's vectors.
type Distance string

const (
	// DistanceCosine is cosine similarity.
	DistanceCosine Distance = "Cosine"
	// DistanceEuclid is euclidean distance.
	DistanceEuclid Distance = "Euclid"
	// DistanceDot is dot product similarity.
	DistanceDot Distance = "Dot"
)

// DefaultVectorSize is the vector dimensionality used when a create request
// does not specify one.
const DefaultVectorSize = 768

// ParseDistance maps a distance name to a known metric.
// Unrecognized values fall back to Cosine.
func ParseDistance(s string) Distance {
	switch s {
	case string(DistanceEuclid):
		return DistanceEuclid
	case string(DistanceDot):
		return DistanceDot
	default:
		return DistanceCosine
	}
}

// Collection is the stats view of a collection in the vector store.
// Counts and status are reported live by the store; description and
// timestamps live in the collection's native metadata.
type Collection struct {
	Name                string  `json:"name"`
	Description         *string `json:"description"`
	VectorSize          uint64  `json:"vector_size"`
	Distance            string  `json:"distance"`
	PointsCount         uint64  `json:"points_count"`
	IndexedVectorsCount uint64  `json:"indexed_vectors_count"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"created_at,omitempty"`
	UpdatedAt           string  `json:"updated_at,omitempty"`
}

// CollectionSpec carries the parameters of a collection create request.
type CollectionSpec struct {
	Name        string
	Description *string
	VectorSize  uint64
	Distance    Distance
	CreatedAt   string
}
