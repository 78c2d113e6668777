// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package pointer holds the small generic helpers used by the patch structs,
where a nil pointer means "leave the field alone".
*/
package pointer

// To returns a pointer to a copy of v.
func To[T any](v T) *T {
	return &v
}

// Copy returns a pointer to a fresh copy of *p, or nil when p is nil.
//
// Records handed out by the in-memory stores are copied with it so callers
// cannot reach back into stored state.
func Copy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}
