package localstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/folio-builder/internal/persistence"
	"github.com/jonathan/folio-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s *Store) uuid.UUID {
	t.Helper()
	id, err := s.CreateUser(context.Background(), "Alex", "alex-"+uuid.NewString()+"@example.com")
	require.NoError(t, err)
	return id
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.CreateUser(ctx, "Alex", "alex@example.com")
	require.NoError(t, err)

	exists, err := s.CheckEmailExists(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = s.CreateUser(ctx, "Other", "alex@example.com")
	assert.Error(t, err, "email is unique")

	u, err := s.GetUser(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Alex", u.Name)
	assert.False(t, u.PasswordSet)

	require.NoError(t, s.UpdatePassword(ctx, id, "hash"))
	u, err = s.GetUserByEmail(ctx, "alex@example.com")
	require.NoError(t, err)
	assert.True(t, u.PasswordSet)
	assert.Equal(t, "hash", u.PasswordHash)

	missing, err := s.GetUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, s.UpdatePassword(ctx, uuid.New(), "hash"))
}

func TestDocuments_ThroughAdapter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user := createUser(t, s)
	adapter := persistence.NewAdapter(s)

	saved, err := adapter.Save(ctx, user, types.SampleDocument(types.KindPortfolio, time.Now().UTC()))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version)

	loaded, err := adapter.Load(ctx, user, types.KindPortfolio, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.PersonalInfo, loaded.PersonalInfo)
	assert.Equal(t, saved.ThemeSettings, loaded.ThemeSettings)
	assert.True(t, saved.UpdatedAt.Equal(loaded.UpdatedAt))

	edited := loaded.Clone()
	edited.Name = "Site v2"
	v2, err := adapter.Save(ctx, user, edited)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2.Version)

	_, err = adapter.Save(ctx, user, loaded)
	assert.ErrorIs(t, err, persistence.ErrConflict)

	_, err = adapter.Save(ctx, createUser(t, s), v2)
	assert.ErrorIs(t, err, persistence.ErrDocumentNotFound)
}

func TestDocuments_LatestAndListOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	user := createUser(t, s)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		r, err := s.InsertDocument(ctx, &persistence.Row{
			UserID:    user,
			Kind:      types.KindResume,
			Title:     "doc",
			Content:   []byte(`{}`),
			CreatedAt: base,
			UpdatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	latest, err := s.LatestDocument(ctx, user, types.KindResume)
	require.NoError(t, err)
	assert.Equal(t, ids[2], latest.ID)

	none, err := s.LatestDocument(ctx, user, types.KindPortfolio)
	require.NoError(t, err)
	assert.Nil(t, none)

	list, err := s.ListDocuments(ctx, user, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	assert.Nil(t, list[0].Content)

	ok, err := s.DeleteDocument(ctx, user, ids[0])
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteDocument(ctx, user, ids[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTimeRoundTrip(t *testing.T) {
	in := time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.FixedZone("X", 3600))
	out, err := parseTime(formatTime(in))
	require.NoError(t, err)
	assert.True(t, in.Equal(out))

	_, err = parseTime("yesterday")
	assert.Error(t, err)
}
