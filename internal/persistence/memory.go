package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/types"
)

// MemoryStore is an in-process RowStore. It backs the "memory" store driver
// and tests.
type MemoryStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]Row
	now  func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rows: make(map[uuid.UUID]Row),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryStore) InsertDocument(_ context.Context, row *Row) (*Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := *row
	r.ID = uuid.New()
	r.Version = 1
	now := m.now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	r.Content = append([]byte(nil), row.Content...)
	m.rows[r.ID] = r
	return &r, nil
}

func (m *MemoryStore) UpdateDocument(_ context.Context, row *Row, baseline int64) (*Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.rows[row.ID]
	if !ok || cur.UserID != row.UserID {
		return nil, ErrDocumentNotFound
	}
	if cur.Version != baseline {
		return nil, ErrConflict
	}
	cur.Title = row.Title
	cur.Template = row.Template
	cur.Content = append([]byte(nil), row.Content...)
	cur.Version++
	cur.UpdatedAt = row.UpdatedAt
	m.rows[cur.ID] = cur
	return &cur, nil
}

func (m *MemoryStore) GetDocument(_ context.Context, userID, id uuid.UUID) (*Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return nil, nil
	}
	return &r, nil
}

func (m *MemoryStore) LatestDocument(ctx context.Context, userID uuid.UUID, kind types.Kind) (*Row, error) {
	rows := m.sorted(userID, kind)
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (m *MemoryStore) ListDocuments(_ context.Context, userID uuid.UUID, kind types.Kind) ([]Row, error) {
	rows := m.sorted(userID, kind)
	for i := range rows {
		rows[i].Content = nil
	}
	return rows, nil
}

func (m *MemoryStore) DeleteDocument(_ context.Context, userID, id uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok || r.UserID != userID {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *MemoryStore) sorted(userID uuid.UUID, kind types.Kind) []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Row, 0)
	for _, r := range m.rows {
		if r.UserID != userID || (kind != "" && r.Kind != kind) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out
}
