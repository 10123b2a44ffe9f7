package api

import (
	"time"

	"github.com/araddon/dateparse"
)

// Note is the persisted entity owned by the backend. Timestamps arrive as
// strings and are parsed lazily since older backends emitted a few formats.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

func (n Note) Created() time.Time {
	return parseTime(n.CreatedAt)
}

func (n Note) Updated() time.Time {
	return parseTime(n.UpdatedAt)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

type NoteCreate struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NoteUpdate is a partial update; nil fields are left untouched server-side.
type NoteUpdate struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

type NoteListResponse struct {
	Notes    []Note `json:"notes"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

type NoteDeleteResponse struct {
	Message   string `json:"message"`
	DeletedID string `json:"deleted_id"`
}

type NoteDeleteAllResponse struct {
	Message      string `json:"message"`
	DeletedCount int    `json:"deleted_count"`
}

type NoteStatsResponse struct {
	TotalNotes int            `json:"total_notes"`
	TagsCount  map[string]int `json:"tags_count"`
}

// RetrievedNote is a note scoped to one query result, ranked by the
// backend. It is never persisted client-side.
type RetrievedNote struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Content         string   `json:"content"`
	Tags            []string `json:"tags"`
	SimilarityScore float64  `json:"similarity_score"`
	CreatedAt       string   `json:"created_at"`
}

func (n RetrievedNote) Created() time.Time {
	return parseTime(n.CreatedAt)
}

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type QueryRequest struct {
	Query         string   `json:"query"`
	TopK          int      `json:"top_k,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
}

// QueryResult is the canonical result shape for both query modalities.
// RetrievedNotes keeps the backend's ranking order; citation rendering
// depends on it.
type QueryResult struct {
	Query           string          `json:"query"`
	Answer          string          `json:"answer"`
	Confidence      Confidence      `json:"confidence"`
	RetrievedNotes  []RetrievedNote `json:"retrieved_notes"`
	CitedNotes      []string        `json:"cited_notes"`
	ExecutionTimeMS float64         `json:"execution_time_ms"`
}

// Cited returns the set of cited note ids that actually appear in
// RetrievedNotes. Backends occasionally cite ids they did not return;
// those are treated as uncited rather than an error.
func (r *QueryResult) Cited() map[string]bool {
	retrieved := make(map[string]bool, len(r.RetrievedNotes))
	for _, n := range r.RetrievedNotes {
		retrieved[n.ID] = true
	}

	cited := make(map[string]bool, len(r.CitedNotes))
	for _, id := range r.CitedNotes {
		if retrieved[id] {
			cited[id] = true
		}
	}
	return cited
}

type SearchRequest struct {
	Query         string   `json:"query"`
	TopK          int      `json:"top_k,omitempty"`
	MinSimilarity *float64 `json:"min_similarity,omitempty"`
}

// SearchResponse is the legacy retrieval shape: ranked results with no
// answer synthesis. The voice endpoint on older backends also returns a
// variant of it.
type SearchResponse struct {
	Query        string          `json:"query"`
	Results      []RetrievedNote `json:"results"`
	TotalResults int             `json:"total_results"`
}

// AsQueryResult adapts the legacy shape into the canonical one. Answer and
// Confidence stay empty since the endpoint performs no synthesis.
func (s *SearchResponse) AsQueryResult() *QueryResult {
	return &QueryResult{
		Query:          s.Query,
		RetrievedNotes: s.Results,
	}
}
