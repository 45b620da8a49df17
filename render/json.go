package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/annotext/match"
)

// JSONRenderer writes SentenceMatch results as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Match serializes sentence match results as a JSON array. No results is
// an empty array, not null.
func (r *JSONRenderer) Match(results []*match.SentenceMatch) error {
	if results == nil {
		results = []*match.SentenceMatch{}
	}
	return json.NewEncoder(r.W).Encode(results)
}

var _ MatchRenderer = (*JSONRenderer)(nil)
