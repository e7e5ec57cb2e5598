package validate

import "strconv"

// ParseID parses a path-supplied identifier. It succeeds only for a
// bare base-10 integer, so "malformed id" (a client error) is decided
// before any store lookup ever runs.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}
