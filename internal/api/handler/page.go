package handler

import "github.com/hszk-dev/vidtube/internal/domain/model"

// PageResponse is the wire form of one page of a listing.
type PageResponse[T any] struct {
	Docs        []T    `json:"docs"`
	TotalDocs   int64  `json:"totalDocs"`
	Limit       int64  `json:"limit"`
	Page        int64  `json:"page"`
	TotalPages  int64  `json:"totalPages"`
	HasPrevPage bool   `json:"hasPrevPage"`
	HasNextPage bool   `json:"hasNextPage"`
	PrevPage    *int64 `json:"prevPage"`
	NextPage    *int64 `json:"nextPage"`
}

func toPageResponse[S, T any](p *model.Page[S], convert func(S) T) PageResponse[T] {
	docs := make([]T, 0, len(p.Items))
	for _, item := range p.Items {
		docs = append(docs, convert(item))
	}

	resp := PageResponse[T]{
		Docs:        docs,
		TotalDocs:   p.Total,
		Limit:       p.Limit,
		Page:        p.Page,
		TotalPages:  p.TotalPages(),
		HasPrevPage: p.HasPrev(),
		HasNextPage: p.HasNext(),
	}
	if resp.HasPrevPage {
		prev := p.Page - 1
		resp.PrevPage = &prev
	}
	if resp.HasNextPage {
		next := p.Page + 1
		resp.NextPage = &next
	}
	return resp
}
