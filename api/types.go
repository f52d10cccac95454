package api

import "github.com/rpupo63/blog-catalog-backend/errs"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogPostHandler blogPostHandler
	healthHandler   healthHandler
}

// Response is the JSON envelope every endpoint answers with.
type Response struct {
	Success    bool                  `json:"success"`
	Data       any                   `json:"data,omitempty"`
	Message    string                `json:"message,omitempty"`
	Error      string                `json:"error,omitempty"`
	Errors     []errs.FieldViolation `json:"errors,omitempty"`
	Pagination *Pagination           `json:"pagination,omitempty"`
}

// Pagination is the list-response metadata block.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalBlogs  int64 `json:"totalBlogs"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// newPagination derives the metadata block for a page of results.
// totalPages is the ceiling of total/limit.
func newPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalBlogs:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
