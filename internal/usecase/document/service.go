package document

import (
	"context"
	"fmt"
	"sort"

	"github.com/kuriozlab/vecman/internal/domain"
)

// Service computes document views over chunk points and deletes documents by
// filename. Documents are never stored; every listing is a full scan.
type Service struct {
	repo        Repository
	collections CollectionChecker
}

// New creates a document service.
func New(repo Repository, collections CollectionChecker) *Service {
	return &Service{repo: repo, collections: collections}
}

// List scans all points of a collection and groups them by the filename
// payload value. The first point seen for a filename supplies the document
// attributes; later points only increment chunks_count. The result is sorted
// by filename so output is deterministic regardless of scan order.
func (s *Service) List(ctx context.Context, collectionName string) (domain.DocumentList, error) {
	if err := s.requireCollection(ctx, collectionName); err != nil {
		return domain.DocumentList{}, err
	}

	payloads, err := s.repo.ListPayloads(ctx, collectionName)
	if err != nil {
		return domain.DocumentList{}, fmt.Errorf("list documents: %w", err)
	}

	byFilename := make(map[string]*domain.Document)
	for _, payload := range payloads {
		filename := asString(payload[domain.FieldFilename])
		if filename == "" {
			filename = domain.UnknownFilename
		}

		doc, ok := byFilename[filename]
		if !ok {
			doc = &domain.Document{
				Filename:     filename,
				DocumentHash: asString(payload[domain.FieldDocumentHash]),
				Format:       asString(payload[domain.FieldFormat]),
				TotalPages:   asInt(payload[domain.FieldTotalPages]),
				TotalChunks:  asInt(payload[domain.FieldTotalChunks]),
				Date:         asString(payload[domain.FieldDate]),
			}
			byFilename[filename] = doc
		}
		doc.ChunksCount++
	}

	docs := make([]domain.Document, 0, len(byFilename))
	for _, doc := range byFilename {
		docs = append(docs, *doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })

	return domain.DocumentList{
		CollectionName: collectionName,
		TotalDocuments: len(docs),
		TotalPoints:    len(payloads),
		Documents:      docs,
	}, nil
}

// Delete removes every chunk point of a document and returns how many points
// the pre-delete count observed. The count and the delete are separate store
// calls, so points inserted in between are deleted but not counted.
func (s *Service) Delete(ctx context.Context, collectionName, filename string) (int, error) {
	if err := s.requireCollection(ctx, collectionName); err != nil {
		return 0, err
	}

	count, err := s.repo.CountByFilename(ctx, collectionName, filename)
	if err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}
	if count == 0 {
		return 0, fmt.Errorf("delete document: %w: no points with filename %q in collection %q",
			domain.ErrDocumentNotFound, filename, collectionName)
	}

	if err := s.repo.DeleteByFilename(ctx, collectionName, filename); err != nil {
		return 0, fmt.Errorf("delete document: %w", err)
	}
	return count, nil
}

func (s *Service) requireCollection(ctx context.Context, name string) error {
	exists, err := s.collections.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("check collection exists: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
