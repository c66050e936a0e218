package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/types"
)

const documentColumns = `id, user_id, kind, title, template, content, version, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// InsertDocument stores a new document row with a fresh id at version 1.
func (s *Store) InsertDocument(ctx context.Context, row *persistence.Row) (*persistence.Row, error) {
	r := *row
	r.ID = uuid.New()
	r.Version = 1
	now := s.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (`+documentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), r.UserID.String(), string(r.Kind), r.Title, r.Template, string(r.Content),
		r.Version, formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	return &r, nil
}

// UpdateDocument overwrites the row only if its version still equals baseline.
func (s *Store) UpdateDocument(ctx context.Context, row *persistence.Row, baseline int64) (*persistence.Row, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents
		 SET title = ?, template = ?, content = ?, version = version + 1, updated_at = ?
		 WHERE id = ? AND user_id = ? AND version = ?`,
		row.Title, row.Template, string(row.Content), formatTime(row.UpdatedAt),
		row.ID.String(), row.UserID.String(), baseline,
	)
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", row.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update document %s: %w", row.ID, err)
	}
	if n == 0 {
		var exists bool
		if err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM documents WHERE id = ? AND user_id = ?)`,
			row.ID.String(), row.UserID.String(),
		).Scan(&exists); err != nil {
			return nil, fmt.Errorf("check document %s: %w", row.ID, err)
		}
		if exists {
			return nil, persistence.ErrConflict
		}
		return nil, persistence.ErrDocumentNotFound
	}

	out, err := s.GetDocument(ctx, row.UserID, row.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, persistence.ErrDocumentNotFound
	}
	return out, nil
}

// GetDocument retrieves a document owned by userID. Returns nil, nil if not found.
func (s *Store) GetDocument(ctx context.Context, userID, id uuid.UUID) (*persistence.Row, error) {
	out, err := scanDocument(s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ? AND user_id = ?`,
		id.String(), userID.String(),
	), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return out, nil
}

// LatestDocument retrieves the most recently updated document of kind.
func (s *Store) LatestDocument(ctx context.Context, userID uuid.UUID, kind types.Kind) (*persistence.Row, error) {
	out, err := scanDocument(s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE user_id = ? AND (? = '' OR kind = ?)
		 ORDER BY updated_at DESC, id LIMIT 1`,
		userID.String(), string(kind), string(kind),
	), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest document: %w", err)
	}
	return out, nil
}

// ListDocuments lists the user's documents, most recently updated first.
func (s *Store) ListDocuments(ctx context.Context, userID uuid.UUID, kind types.Kind) ([]persistence.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, kind, title, template, '', version, created_at, updated_at
		 FROM documents
		 WHERE user_id = ? AND (? = '' OR kind = ?)
		 ORDER BY updated_at DESC, id`,
		userID.String(), string(kind), string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var out []persistence.Row
	for rows.Next() {
		r, err := scanDocument(rows, false)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

// DeleteDocument deletes a document owned by userID and reports whether it existed.
func (s *Store) DeleteDocument(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND user_id = ?`, id.String(), userID.String())
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete document: %w", err)
	}
	return n > 0, nil
}

func scanDocument(sc scanner, withContent bool) (*persistence.Row, error) {
	var (
		r                    persistence.Row
		id, userID, kind     string
		content              string
		createdAt, updatedAt string
	)
	if err := sc.Scan(&id, &userID, &kind, &r.Title, &r.Template, &content, &r.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if r.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parse document id: %w", err)
	}
	if r.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	r.Kind = types.Kind(kind)
	if withContent {
		r.Content = []byte(content)
	}
	return &r, nil
}
