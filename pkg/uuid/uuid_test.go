// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	googleuuid "github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/pkg/uuid"
)

func TestNew(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	assert.NotEqual(t, first, second)

	parsed, err := googleuuid.Parse(first)
	require.NoError(t, err)
	assert.Equal(t, googleuuid.Version(7), parsed.Version())
	assert.Less(t, first, second, "v7 ids sort by creation time")
}

func TestValid(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: uuid.New(), want: true},
		{value: "0190f5a4-7c4e-7b3a-9d2e-5f6a7b8c9d0e", want: true},
		{value: "", want: false},
		{value: "acc-1", want: false},
		{value: "urn:uuid:0190f5a4-7c4e-7b3a-9d2e-5f6a7b8c9d0e", want: false},
		{value: "0190f5a47c4e7b3a9d2e5f6a7b8c9d0e", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, uuid.Valid(tt.value))
		})
	}
}
