package utils

import (
	"context"
)

type contextKey string

func (c contextKey) String() string {
	return string(c)
}

// SubjectCtxKey holds the subject of the admin token that authorized a
// request.
var SubjectCtxKey = contextKey("subject")

// GetSubjectFromContext returns the admin subject stored by the auth
// middleware.
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectCtxKey).(string)
	return subject, ok && subject != ""
}
