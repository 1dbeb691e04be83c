package domain

import (
	"fmt"
	"sort"
)

// Chunk is a contiguous unit of source text identified by blank-line
// separation, the atomic unit of semantic annotation. Chunk order is the
// list order; ids are stable labels, not a sort key.
type Chunk struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// DraftRecord is an unreviewed, machine-generated annotation for one
// chunk. The chunk id it carries must survive unchanged through
// canonicalization.
type DraftRecord struct {
	ChunkID    string   `json:"chunk_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

// EmptyDraft returns the fallback draft substituted when a model response
// cannot be parsed. It carries the original chunk id and zero confidence.
func EmptyDraft(chunkID string) DraftRecord {
	return DraftRecord{
		ChunkID:  chunkID,
		Keywords: []string{},
	}
}

// CanonicalRecord is a reviewed annotation, the dataset's terminal unit.
// Rejection is recorded in Approved, never by omitting the record.
type CanonicalRecord struct {
	ChunkID    string   `json:"chunk_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
	Approved   bool     `json:"approved"`
}

// ReviewDecision captures a reviewer's response for one draft record.
// An empty Title or Summary means keep the drafted value; there is no
// way to blank a field. Keywords applies only when KeywordsSet is true.
type ReviewDecision struct {
	Title       string
	Summary     string
	Keywords    []string
	KeywordsSet bool
	Approved    bool
}

// Apply merges a reviewer decision into a draft, producing the canonical
// record. The chunk id and confidence always pass through untouched.
func (d ReviewDecision) Apply(rec DraftRecord) CanonicalRecord {
	out := CanonicalRecord{
		ChunkID:    rec.ChunkID,
		Title:      rec.Title,
		Summary:    rec.Summary,
		Keywords:   rec.Keywords,
		Confidence: rec.Confidence,
		Approved:   d.Approved,
	}
	if d.Title != "" {
		out.Title = d.Title
	}
	if d.Summary != "" {
		out.Summary = d.Summary
	}
	if d.KeywordsSet {
		out.Keywords = d.Keywords
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	return out
}

// RequiredDraftFields are the fields every draft record must carry
// before canonicalization may begin.
var RequiredDraftFields = []string{"chunk_id", "title", "summary", "keywords", "confidence"}

// ValidateDraftObject checks a decoded draft record against the required
// field schema. Keywords must be a JSON array.
func ValidateDraftObject(obj map[string]any) error {
	var missing []string
	for _, field := range RequiredDraftFields {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing fields %v", ErrInvalidInput, missing)
	}
	if _, ok := obj["keywords"].([]any); !ok {
		return fmt.Errorf("%w: 'keywords' must be a list", ErrInvalidInput)
	}
	return nil
}
