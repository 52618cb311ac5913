package types

type ChunkType string

const (
	ChunkAbstract    ChunkType = "abstract"
	ChunkClaim       ChunkType = "claim"
	ChunkDescription ChunkType = "description"
)

// Chunk is one embeddable piece of a patent document. Index is local to the
// section the chunk came from, starting at 0.
type Chunk struct {
	Text            string
	Type            ChunkType
	SectionPriority float64
	Index           int
	ClaimNumber     *int
}

// PatentMetadata carries the caller-supplied document fields. Every persisted
// chunk gets a full copy of these in its payload.
type PatentMetadata struct {
	PatentID     string   `json:"patent_id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Assignee     string   `json:"assignee" validate:"required"`
	Jurisdiction string   `json:"jurisdiction" validate:"required"`
	FilingYear   int      `json:"filing_year" validate:"required,gte=1000,lte=9999"`
	PatentClass  []string `json:"patent_class"`
}

// SearchFilters is a conjunction of optional constraints. A zero value on a
// field means "no constraint", not "match empty".
type SearchFilters struct {
	Jurisdiction   []string `json:"jurisdiction,omitempty"`
	Assignee       []string `json:"assignee,omitempty"`
	PatentClass    []string `json:"patent_class,omitempty"`
	FilingYearFrom int      `json:"filing_year_from,omitempty"`
	FilingYearTo   int      `json:"filing_year_to,omitempty"`
	Topic          string   `json:"topic,omitempty"`
}

// Empty reports whether no constraint is set at all.
func (f *SearchFilters) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Jurisdiction) == 0 && len(f.Assignee) == 0 && len(f.PatentClass) == 0 &&
		f.FilingYearFrom == 0 && f.FilingYearTo == 0 && f.Topic == ""
}

// SearchResult is one ranked hit. Score is the raw similarity returned by the
// vector store; only the explanation text carries the rounded value.
type SearchResult struct {
	Score            float64  `json:"score"`
	PatentID         string   `json:"patent_id"`
	Title            string   `json:"title,omitempty"`
	Assignee         string   `json:"assignee,omitempty"`
	Jurisdiction     string   `json:"jurisdiction,omitempty"`
	FilingYear       int      `json:"filing_year,omitempty"`
	PatentClass      []string `json:"patent_class,omitempty"`
	Text             string   `json:"text,omitempty"`
	MatchedChunkType string   `json:"matched_chunk_type"`
	Explanation      string   `json:"explanation"`
}

type IngestStatus string

const (
	IngestSuccess IngestStatus = "success"
	IngestSkipped IngestStatus = "skipped"
)

type IngestResult struct {
	Status        IngestStatus `json:"status"`
	PatentID      string       `json:"patent_id"`
	ChunksCreated int          `json:"chunks_created"`
	Reason        string       `json:"reason,omitempty"`
}
