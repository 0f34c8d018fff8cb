package domain

import "errors"

var (
	// ErrNotFound signals a missing collection.
	ErrNotFound = errors.New("collection not found")
	// ErrAlreadyExists signals a duplicate collection name.
	ErrAlreadyExists = errors.New("collection already exists")
	// ErrNotEmpty signals a delete refused because the collection still holds points.
	ErrNotEmpty = errors.New("collection is not empty")
	// ErrDocumentNotFound signals that no points match the requested filename.
	ErrDocumentNotFound = errors.New("document not found")
)
