package web

import (
	"context"
	"strconv"
	"strings"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// idFromPath extracts the positive integer id that follows prefix, as in
// /post/{id}. Anything else after the prefix is rejected.
func idFromPath(path, prefix string) (uint, bool) {
	rest, found := strings.CutPrefix(path, prefix)
	if !found || rest == "" {
		return 0, false
	}

	id, err := strconv.ParseUint(rest, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return uint(id), true
}

// requestIDFrom returns the id set by the requestID middleware, or "".
func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
