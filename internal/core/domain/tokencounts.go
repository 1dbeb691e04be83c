package domain

import (
	"bytes"
	"encoding/json"
)

// TokenCounts accumulates token frequencies while remembering each
// token's first-seen order. Serialization iterates in that order,
// never sorted, so re-runs over the same text are byte-identical.
type TokenCounts struct {
	order  []string
	counts map[string]int
}

// NewTokenCounts creates an empty frequency table.
func NewTokenCounts() *TokenCounts {
	return &TokenCounts{counts: make(map[string]int)}
}

// Add records one occurrence of a token.
func (t *TokenCounts) Add(token string) {
	if _, seen := t.counts[token]; !seen {
		t.order = append(t.order, token)
	}
	t.counts[token]++
}

// Count returns the number of occurrences recorded for a token.
func (t *TokenCounts) Count(token string) int {
	return t.counts[token]
}

// Len returns the number of distinct tokens.
func (t *TokenCounts) Len() int {
	return len(t.order)
}

// Total returns the sum of all counts.
func (t *TokenCounts) Total() int {
	sum := 0
	for _, n := range t.counts {
		sum += n
	}
	return sum
}

// Tokens returns the distinct tokens in first-seen order.
func (t *TokenCounts) Tokens() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// MarshalJSON emits a JSON object with keys in first-seen order.
func (t *TokenCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, token := range t.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(token)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(t.counts[token])
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
