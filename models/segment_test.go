package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPathSegment(t *testing.T) {
	for _, good := range []string{"mail", "peer-1", "a.b", "tmp-x", "..x"} {
		assert.True(t, ValidPathSegment(good), good)
	}
	for _, bad := range []string{"", ".", "..", "a/b", `a\b`, ".tmp-x", TempFilePrefix} {
		assert.False(t, ValidPathSegment(bad), bad)
	}
}
