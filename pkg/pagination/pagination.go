// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination parses page-based list requests and builds the "meta"
// block of paginated responses.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the page size when none is requested.
	DefaultLimit = 20
	// MaxLimit caps the page size. Larger requests are clamped to it.
	MaxLimit = 100
)

// Params is a 1-indexed page request.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewMeta describes page params of a result set holding total rows.
func NewMeta(params Params, total int) Meta {
	totalPages := 0
	if params.Limit > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}

	return Meta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    params.Page < totalPages,
	}
}

// FromRequest reads "page" and "limit" from the request's query string.
func FromRequest(r *http.Request) Params {
	return FromQuery(r.URL.Query())
}

// FromQuery reads "page" and "limit" from values.
//
// Missing or unparseable values fall back to page 1 and [DefaultLimit].
// A limit above [MaxLimit] is clamped down to it.
func FromQuery(values url.Values) Params {
	page := intOr(values.Get("page"), 1)
	if page < 1 {
		page = 1
	}

	limit := intOr(values.Get("limit"), DefaultLimit)
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit}
}

func intOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
