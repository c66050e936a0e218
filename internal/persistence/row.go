// Package persistence bridges in-memory documents and a row-oriented store
// keyed by (document id, owning user).
package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/types"
)

// Row is one stored document. Content holds the JSON-encoded Document.
type Row struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      types.Kind
	Title     string
	Template  string
	Content   []byte
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RowStore is the storage contract consumed by the Adapter. Get and Latest
// return (nil, nil) when nothing matches.
type RowStore interface {
	// InsertDocument stores a new row and returns it with the store-assigned
	// id, version and timestamps.
	InsertDocument(ctx context.Context, row *Row) (*Row, error)
	// UpdateDocument overwrites the row keyed by (row.ID, row.UserID) only if
	// its stored version equals baseline. It returns ErrConflict when the
	// version moved and ErrDocumentNotFound when no row exists.
	UpdateDocument(ctx context.Context, row *Row, baseline int64) (*Row, error)
	GetDocument(ctx context.Context, userID, id uuid.UUID) (*Row, error)
	LatestDocument(ctx context.Context, userID uuid.UUID, kind types.Kind) (*Row, error)
	// ListDocuments returns rows ordered by updated_at descending, content omitted.
	ListDocuments(ctx context.Context, userID uuid.UUID, kind types.Kind) ([]Row, error)
	DeleteDocument(ctx context.Context, userID, id uuid.UUID) (bool, error)
}
