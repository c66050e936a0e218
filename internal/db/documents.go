package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/types"
)

const documentColumns = `id, user_id, kind, title, template, content, version, created_at, updated_at`

// InsertDocument stores a new document row. The id and version are assigned
// by the database.
func (db *DB) InsertDocument(ctx context.Context, row *persistence.Row) (*persistence.Row, error) {
	out, err := scanDocument(db.pool.QueryRow(ctx,
		`INSERT INTO documents (user_id, kind, title, template, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()), COALESCE($7, NOW()))
		 RETURNING `+documentColumns,
		row.UserID, string(row.Kind), row.Title, row.Template, row.Content,
		nullTime(row.CreatedAt), nullTime(row.UpdatedAt),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return out, nil
}

// UpdateDocument overwrites the row only if its version still equals baseline.
func (db *DB) UpdateDocument(ctx context.Context, row *persistence.Row, baseline int64) (*persistence.Row, error) {
	out, err := scanDocument(db.pool.QueryRow(ctx,
		`UPDATE documents
		 SET title = $1, template = $2, content = $3, version = version + 1, updated_at = $4
		 WHERE id = $5 AND user_id = $6 AND version = $7
		 RETURNING `+documentColumns,
		row.Title, row.Template, row.Content, row.UpdatedAt, row.ID, row.UserID, baseline,
	))
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to update document %s: %w", row.ID, err)
	}

	// Nothing matched: tell a missing row from a moved version.
	var exists bool
	if err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE id = $1 AND user_id = $2)`,
		row.ID, row.UserID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check document %s: %w", row.ID, err)
	}
	if exists {
		return nil, persistence.ErrConflict
	}
	return nil, persistence.ErrDocumentNotFound
}

// GetDocument retrieves a document owned by userID. Returns nil, nil if not found.
func (db *DB) GetDocument(ctx context.Context, userID, id uuid.UUID) (*persistence.Row, error) {
	out, err := scanDocument(db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND user_id = $2`,
		id, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return out, nil
}

// LatestDocument retrieves the most recently updated document of kind.
// Returns nil, nil if the user has none.
func (db *DB) LatestDocument(ctx context.Context, userID uuid.UUID, kind types.Kind) (*persistence.Row, error) {
	out, err := scanDocument(db.pool.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		 ORDER BY updated_at DESC, id LIMIT 1`,
		userID, string(kind),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest document: %w", err)
	}
	return out, nil
}

// ListDocuments lists the user's documents, most recently updated first.
// Content is not loaded.
func (db *DB) ListDocuments(ctx context.Context, userID uuid.UUID, kind types.Kind) ([]persistence.Row, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, kind, title, template, version, created_at, updated_at
		 FROM documents
		 WHERE user_id = $1 AND ($2 = '' OR kind = $2)
		 ORDER BY updated_at DESC, id`,
		userID, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []persistence.Row
	for rows.Next() {
		var (
			r    persistence.Row
			kind string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &kind, &r.Title, &r.Template, &r.Version, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		r.Kind = types.Kind(kind)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return out, nil
}

// DeleteDocument deletes a document owned by userID and reports whether it existed.
func (db *DB) DeleteDocument(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete document: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

func scanDocument(row pgx.Row) (*persistence.Row, error) {
	var (
		r    persistence.Row
		kind string
	)
	if err := row.Scan(&r.ID, &r.UserID, &kind, &r.Title, &r.Template, &r.Content, &r.Version, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Kind = types.Kind(kind)
	return &r, nil
}
