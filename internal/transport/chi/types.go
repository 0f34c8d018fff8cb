package chi

import "github.com/kuriozlab/vecman/internal/domain"

// Error codes surfaced in error responses.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeCollectionExists   = "collection_already_exists"
	codeCollectionNotFound = "collection_not_found"
	codeCollectionNotEmpty = "collection_not_empty"
	codeDocumentNotFound   = "document_not_found"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type createCollectionRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	VectorSize  *int    `json:"vector_size"`
	Distance    string  `json:"distance"`
}

type updateCollectionRequest struct {
	Description *string `json:"description"`
}

// actionResponse is the mutation acknowledgement shape shared by create,
// update, delete, and clear.
type actionResponse struct {
	Success        bool   `json:"success"`
	CollectionName string `json:"collection_name"`
	Message        string `json:"message"`
}

type existsResponse struct {
	CollectionName string `json:"collection_name"`
	Exists         bool   `json:"exists"`
}

type deleteDocumentResponse struct {
	Success        bool   `json:"success"`
	CollectionName string `json:"collection_name"`
	Filename       string `json:"filename"`
	DeletedPoints  int    `json:"deleted_points"`
	Message        string `json:"message"`
}

// collectionStatsResponse merges collection stats with document counts.
type collectionStatsResponse struct {
	domain.Collection
	TotalDocuments int `json:"total_documents"`
	TotalPoints    int `json:"total_points"`
}

type healthResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}
