// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/userdesk/pkg/pagination"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{query: "", want: pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{query: "page=3&limit=5", want: pagination.Params{Page: 3, Limit: 5}},
		{query: "page=0&limit=-1", want: pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{query: "page=abc&limit=xyz", want: pagination.Params{Page: 1, Limit: pagination.DefaultLimit}},
		{query: "limit=5000", want: pagination.Params{Page: 1, Limit: pagination.MaxLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, pagination.FromQuery(values))
		})
	}
}

func TestNewMeta(t *testing.T) {
	params := pagination.Params{Page: 2, Limit: 2}
	assert.Equal(t, 2, params.Offset())

	meta := pagination.NewMeta(params, 5)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)

	last := pagination.NewMeta(pagination.Params{Page: 3, Limit: 2}, 5)
	assert.False(t, last.HasNext)

	empty := pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 0)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasNext)
}
