package search

import (
	"context"

	"github.com/tidwall/gjson"
)

type Client interface {
	Search(ctx context.Context, term string) ([]Result, error)
}

// Result is one displayable search hit.
type Result struct {
	// ID is a rendering key assigned when a response is received. It is not
	// provided by the backend and is not stable across responses.
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Source      string `json:"source"`
	Date        string `json:"date"`

	// Raw is the JSON object as received from the backend.
	Raw string `json:"-"`
}

// Get reads a field of the original backend object, including the ones
// Result does not map.
func (r Result) Get(path string) gjson.Result {
	return gjson.Get(r.Raw, path)
}

// Number returns a copy of results with identifiers assigned from 1, in
// the order received.
func Number(results []Result) []Result {
	numbered := make([]Result, len(results))
	for i, r := range results {
		r.ID = i + 1
		numbered[i] = r
	}

	return numbered
}
