package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/types"
)

// Summary is a dashboard listing entry.
type Summary struct {
	ID        string     `json:"id"`
	Kind      types.Kind `json:"kind"`
	Title     string     `json:"title"`
	Template  string     `json:"template"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Adapter loads and saves documents for one authenticated user at a time.
type Adapter struct {
	rows RowStore
	now  func() time.Time
}

// NewAdapter returns an adapter over rows.
func NewAdapter(rows RowStore) *Adapter {
	return &Adapter{rows: rows, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock replaces the clock used to refresh updatedAt.
func (a *Adapter) WithClock(now func() time.Time) *Adapter {
	a.now = now
	return a
}

// Load fetches the document with the given id, or the most recently updated
// document of kind when id is empty. It returns ErrDocumentNotFound when
// nothing matches.
func (a *Adapter) Load(ctx context.Context, userID uuid.UUID, kind types.Kind, id string) (*types.Document, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}

	var (
		row *Row
		err error
	)
	if id == "" {
		row, err = a.rows.LatestDocument(ctx, userID, kind)
	} else {
		docID, perr := uuid.Parse(id)
		if perr != nil {
			return nil, ErrDocumentNotFound
		}
		row, err = a.rows.GetDocument(ctx, userID, docID)
	}
	if err != nil {
		return nil, &StoreError{Op: "load", Err: err}
	}
	if row == nil {
		return nil, ErrDocumentNotFound
	}
	return Decode(row)
}

// Decode turns a row into a normalised document. The row's identity columns
// win over whatever the content blob says.
func Decode(row *Row) (*types.Document, error) {
	var doc types.Document
	if err := json.Unmarshal(row.Content, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: %w", row.ID, err)
	}
	types.Normalize(&doc)
	doc.ID = row.ID.String()
	if row.Kind != "" {
		doc.Kind = row.Kind
	}
	if doc.Name == "" {
		doc.Name = row.Title
	}
	doc.Version = row.Version
	doc.CreatedAt = row.CreatedAt
	doc.UpdatedAt = row.UpdatedAt
	return &doc, nil
}

// Save writes doc and returns a copy carrying the identity the store assigned:
// a document without an id is inserted, otherwise the row keyed by (id, user)
// is updated if its version still equals doc.Version. doc is never modified.
func (a *Adapter) Save(ctx context.Context, userID uuid.UUID, doc *types.Document) (*types.Document, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	if doc == nil {
		return nil, errors.New("nil document")
	}

	out := doc.Clone()
	if now := a.now(); now.After(out.UpdatedAt) {
		out.UpdatedAt = now
	}

	content, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	row := &Row{
		UserID:    userID,
		Kind:      out.Kind,
		Title:     out.Name,
		Template:  out.Template,
		Content:   content,
		CreatedAt: out.CreatedAt,
		UpdatedAt: out.UpdatedAt,
	}

	var saved *Row
	if !out.HasIdentity() {
		saved, err = a.rows.InsertDocument(ctx, row)
		if err != nil {
			return nil, &StoreError{Op: "create", Err: err}
		}
	} else {
		row.ID, err = uuid.Parse(out.ID)
		if err != nil {
			return nil, ErrDocumentNotFound
		}
		saved, err = a.rows.UpdateDocument(ctx, row, out.Version)
		if err != nil {
			if errors.Is(err, ErrConflict) || errors.Is(err, ErrDocumentNotFound) {
				return nil, err
			}
			return nil, &StoreError{Op: "update", Err: err}
		}
	}

	out.ID = saved.ID.String()
	out.Version = saved.Version
	out.CreatedAt = saved.CreatedAt
	out.UpdatedAt = saved.UpdatedAt
	return out, nil
}

// List returns the user's documents of kind, most recently updated first. An
// empty kind lists both builders.
func (a *Adapter) List(ctx context.Context, userID uuid.UUID, kind types.Kind) ([]Summary, error) {
	if userID == uuid.Nil {
		return nil, ErrAuthRequired
	}
	rows, err := a.rows.ListDocuments(ctx, userID, kind)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, Summary{
			ID:        r.ID.String(),
			Kind:      r.Kind,
			Title:     r.Title,
			Template:  r.Template,
			Version:   r.Version,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

// Delete removes the user's document.
func (a *Adapter) Delete(ctx context.Context, userID uuid.UUID, id string) error {
	if userID == uuid.Nil {
		return ErrAuthRequired
	}
	docID, err := uuid.Parse(id)
	if err != nil {
		return ErrDocumentNotFound
	}
	ok, err := a.rows.DeleteDocument(ctx, userID, docID)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if !ok {
		return ErrDocumentNotFound
	}
	return nil
}
