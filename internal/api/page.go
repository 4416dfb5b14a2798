package api

import "context"

// Meta is the pagination block list endpoints return.
type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	Total       int `json:"total"`
}

type singleEnvelope[T any] struct {
	Data T `json:"data"`
}

type listEnvelope[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta"`
}

// Page is one page of a list response.
type Page[T any] struct {
	Items   []T
	Number  int
	PerPage int
	Meta    *Meta
}

// HasMorePages reports whether another page should be fetched. The meta
// last-page hint wins when present; otherwise a short page means the list
// is exhausted.
func (p Page[T]) HasMorePages() bool {
	if p.Meta != nil && p.Meta.LastPage > 0 {
		return p.Number < p.Meta.LastPage
	}
	return p.PerPage > 0 && len(p.Items) == p.PerPage
}

// fetchAll walks sequential pages starting at 1 until exhaustion and
// returns the merged items.
func fetchAll[T any](ctx context.Context, fetch func(ctx context.Context, page int) (Page[T], error)) ([]T, error) {
	var items []T
	for page := 1; ; page++ {
		p, err := fetch(ctx, page)
		if err != nil {
			return nil, err
		}
		items = append(items, p.Items...)
		if !p.HasMorePages() {
			return items, nil
		}
	}
}
