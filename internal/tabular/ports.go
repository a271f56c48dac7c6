// Package tabular defines the persistence port of the store: named CSV
// tables held in an opaque key/value blob store. Backends live in the
// subpackages (memory, sqlite, githubfs, gsheet) and are interchangeable.
package tabular

import (
	"context"
	"errors"
)

// ErrStaleWrite reports that an overwrite lost a content-hash race with a
// concurrent writer. The store is last-write-wins; callers retry by
// re-reading and reapplying the same logical operation.
var ErrStaleWrite = errors.New("stale write: remote content changed")

// Store is the persistence collaborator. Load never fails: a missing key,
// malformed content or an unexpected header all yield an empty table
// shaped to the expected schema. Save overwrites the whole table;
// changeDescription becomes the commit message on version-controlled
// backends and is ignored elsewhere.
type Store interface {
	Load(ctx context.Context, key string, schema []string) Table
	Save(ctx context.Context, key string, t Table, changeDescription string) error
}
