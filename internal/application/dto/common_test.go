package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/core-stock/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		in   dto.PageRequest
		want dto.PageRequest
	}{
		{dto.PageRequest{}, dto.PageRequest{Limit: 20}},
		{dto.PageRequest{Limit: -5, Offset: -1}, dto.PageRequest{Limit: 20}},
		{dto.PageRequest{Limit: 500, Offset: 40}, dto.PageRequest{Limit: 100, Offset: 40}},
		{dto.PageRequest{Limit: 7, Offset: 3}, dto.PageRequest{Limit: 7, Offset: 3}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalize())
	}
}
