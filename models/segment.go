package models

import "strings"

// TempFilePrefix starts the name of a file that is still being written.
const TempFilePrefix = ".tmp-"

// ValidPathSegment reports whether s can be used as one file or directory
// name in a data dir or transport tree. Peer ids, app ids and bundle ids all
// pass through it.
func ValidPathSegment(s string) bool {
	return s != "" && s != "." && s != ".." &&
		!strings.ContainsAny(s, `/\`) &&
		!strings.HasPrefix(s, TempFilePrefix)
}
