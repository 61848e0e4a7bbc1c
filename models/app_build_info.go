// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"io"
)

const unknownBuildValue = "N/A"

// BuildInfo is the version stamp linked into the node binaries with -ldflags.
type BuildInfo struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}

// NewBuildInfo replaces empty values with "N/A".
func NewBuildInfo(version, date, commit string) BuildInfo {
	return BuildInfo{
		Version: orUnknown(version),
		Date:    orUnknown(date),
		Commit:  orUnknown(commit),
	}
}

// Print writes the stamp in the format shown at node start-up.
func (b BuildInfo) Print(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", b.Version)
	fmt.Fprintf(w, "Build date: %s\n", b.Date)
	fmt.Fprintf(w, "Build commit: %s\n", b.Commit)
}

func orUnknown(s string) string {
	if s == "" {
		return unknownBuildValue
	}
	return s
}
