// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "storefront/internal/domain/repository"

// PageRequest is a 1-based page number and a page size as sent by clients.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaultLimit to a missing size and caps it at maxLimit.
func (p PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}

	return p
}

// Repository converts the request into an offset window.
func (p PageRequest) Repository() repository.Page {
	return repository.Page{Offset: (p.Page - 1) * p.Limit, Limit: p.Limit}
}

// Pagination is the metadata returned with every paged listing.
type Pagination struct {
	Page  int
	Limit int
	Total int64
	Pages int
}

// NewPagination computes the page count for total matches.
func NewPagination(req PageRequest, total int64) Pagination {
	pages := 0
	if req.Limit > 0 {
		pages = int((total + int64(req.Limit) - 1) / int64(req.Limit))
	}

	return Pagination{Page: req.Page, Limit: req.Limit, Total: total, Pages: pages}
}
