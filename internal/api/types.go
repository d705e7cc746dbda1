package api

import (
	"encoding/json"

	"github.com/b9s/b9s/internal/pager"
)

// ListQuery carries the query parameters of a list request.
type ListQuery struct {
	Page          *int
	PageSize      int
	SearchKeyword string
	Filters       map[string]string
	Sorting       []pager.SortOrder
}

// PageResult is the decoded list envelope. Items stay raw; the dao layer
// decodes them into typed entities.
type PageResult struct {
	List        []json.RawMessage  `json:"list"`
	TotalCount  int                `json:"totalCount"`
	PageDetails *pager.PageDetails `json:"pageDetails"`
}
