package types

import (
	"errors"
	"fmt"
)

// ErrNoChunks is returned when chunking produced nothing to index. The
// ingestion service decides whether this fails the request or skips it.
var ErrNoChunks = errors.New("text could not be segmented: empty or unparseable source")

// IngestionError wraps any failure raised during the ingestion pipeline.
type IngestionError struct {
	Cause error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("ingestion failed: %v", e.Cause)
}

func (e *IngestionError) Unwrap() error { return e.Cause }

// SearchError wraps any failure raised during query embedding or vector search.
type SearchError struct {
	Cause error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search failed: %v", e.Cause)
}

func (e *SearchError) Unwrap() error { return e.Cause }

// DimensionMismatchError is a hard failure at store time: an embedding does
// not match the collection's configured vector size. Never truncated or padded.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: collection expects %d, got %d", e.Want, e.Got)
}
