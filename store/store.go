// Package store defines the append-only table contract shared by every
// persistence backend, plus a fan-out backend that accepts a write as soon
// as at least one of its members does.
package store

import (
	"context"
	"errors"

	"github.com/soulware-systems/training-survey/model"
)

// ErrNotFound is returned by ReadAll when the table has never been created.
// Callers that tolerate empty aggregation treat it as zero rows.
var ErrNotFound = errors.New("store: table not found")

// Backend persists submission records as rows of one logical table.
//
// Append must flush to durable storage before returning; if the record
// carries columns the table has not seen, the backend widens the table
// (union columns, old rows backfilled empty) instead of rejecting the
// write. Append is not safe for concurrent writers against the same
// backing file: single writer per deployment, or external locking.
type Backend interface {
	Name() string
	Append(ctx context.Context, rec model.Record) error
	ReadAll(ctx context.Context) (model.Table, error)
}
