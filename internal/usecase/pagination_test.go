package usecase

import (
	"testing"

	"storefront/internal/domain/repository"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageRequest
		want PageRequest
	}{
		{name: "defaults", in: PageRequest{}, want: PageRequest{Page: 1, Limit: 20}},
		{name: "negative page", in: PageRequest{Page: -3, Limit: 5}, want: PageRequest{Page: 1, Limit: 5}},
		{name: "capped", in: PageRequest{Page: 2, Limit: 500}, want: PageRequest{Page: 2, Limit: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize(20, 100))
		})
	}
}

func TestPageRequest_Repository(t *testing.T) {
	assert.Equal(t, repository.Page{Offset: 40, Limit: 20}, PageRequest{Page: 3, Limit: 20}.Repository())
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 41, Pages: 3}, NewPagination(PageRequest{Page: 1, Limit: 20}, 41))
	assert.Equal(t, 0, NewPagination(PageRequest{Page: 1, Limit: 20}, 0).Pages)
}
