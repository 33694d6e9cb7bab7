package domain

import "github.com/oklog/ulid/v2"

// NewID returns a lexically sortable identifier for any stored record.
func NewID() string {
	return ulid.Make().String()
}
