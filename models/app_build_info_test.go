package models

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuildInfo(t *testing.T) {
	info := NewBuildInfo("v1.2.0", "", "abc123")

	assert.Equal(t, BuildInfo{Version: "v1.2.0", Date: "N/A", Commit: "abc123"}, info)

	var buf bytes.Buffer
	info.Print(&buf)
	assert.Equal(t, "Build version: v1.2.0\nBuild date: N/A\nBuild commit: abc123\n", buf.String())
}
