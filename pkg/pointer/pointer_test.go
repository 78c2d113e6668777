// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/userdesk/pkg/pointer"
)

func TestCopy(t *testing.T) {
	assert.Nil(t, pointer.Copy[int](nil))

	original := pointer.To(3)
	copied := pointer.Copy(original)
	require.NotNil(t, copied)
	assert.NotSame(t, original, copied)

	*copied = 4
	assert.Equal(t, 3, *original)
}
