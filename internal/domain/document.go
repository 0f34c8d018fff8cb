package domain

// Payload fields written by the ingest pipeline. The service indexes them at
// collection creation and reads them during document aggregation, but never
// validates them on points.
const (
	FieldFilename     = "filename"
	FieldDocumentHash = "document_hash"
	FieldFormat       = "format"
	FieldChunk        = "chunk"
	FieldTotalPages   = "total_pages"
	FieldTotalChunks  = "total_chunks"
	FieldDate         = "date"
)

// UnknownFilename groups points that carry no filename payload.
const UnknownFilename = "unknown"

// Document is a derived grouping of points sharing one filename value.
// It is never stored; every listing recomputes it from a full point scan.
type Document struct {
	Filename     string `json:"filename"`
	DocumentHash string `json:"document_hash"`
	Format       string `json:"format"`
	TotalPages   int64  `json:"total_pages"`
	TotalChunks  int64  `json:"total_chunks"`
	Date         string `json:"date"`
	ChunksCount  int    `json:"chunks_count"`
}

// DocumentList is the aggregation result for one collection.
type DocumentList struct {
	CollectionName string     `json:"collection_name"`
	TotalDocuments int        `json:"total_documents"`
	TotalPoints    int        `json:"total_points"`
	Documents      []Document `json:"documents"`
}
