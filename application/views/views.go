// Package views materializes per-request projections over raw records.
//
// Constructing a view is free: no storage is touched until a field is read.
// The first field access fetches and caches the whole underlying record for
// that view instance; concurrent first accesses share the one in-flight
// fetch. Views are never shared across requests.
//
// Fields derived from other collections (like counts, liked-by-me, pending
// request flags) are deliberately not cached with the record: they issue
// their own query on every access, since edges can change between accesses
// within one request.
package views

import (
	"fbclone-backend/application/ports"
	"fbclone-backend/application/relationships"
)

// Deps bundles the collaborators every view needs. One instance serves all
// views of a request.
type Deps struct {
	Users   ports.UserRepository
	Posts   ports.PostRepository
	Replies ports.ReplyRepository
	Rel     *relationships.Engine
}
