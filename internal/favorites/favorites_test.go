package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starstream/internal/kv"
	"starstream/internal/media"
	"starstream/internal/notify"
)

var (
	u1 = &media.Identity{ID: "u1"}
	u2 = &media.Identity{ID: "u2"}

	novocaine = media.FavoriteRecord{ID: "m1", Title: "Novocaine", PosterURL: "/p/m1.jpg", Year: "2023"}
	furious   = media.FavoriteRecord{ID: "m2", Title: "Fast & Furious", PosterURL: "/p/m2.jpg", Year: "2021"}
)

func TestToggleAddsThenRemoves(t *testing.T) {
	ctx := context.Background()
	rec := &notify.Recorder{}
	s := New(kv.NewRepository(kv.NewMemory()), ScopeIdentity, rec)

	added, err := s.Toggle(ctx, u1, novocaine)
	require.NoError(t, err)
	assert.True(t, added)

	fav, err := s.IsFavorite(ctx, u1, "m1")
	require.NoError(t, err)
	assert.True(t, fav)

	list, _ := s.List(ctx, u1)
	assert.Equal(t, []media.FavoriteRecord{novocaine}, list)

	added, err = s.Toggle(ctx, u1, novocaine)
	require.NoError(t, err)
	assert.False(t, added)

	fav, _ = s.IsFavorite(ctx, u1, "m1")
	assert.False(t, fav)

	got := rec.All()
	require.Len(t, got, 2)
	assert.Equal(t, notify.Success, got[0].Severity)
	assert.Equal(t, notify.Info, got[1].Severity)
}

func TestToggleKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewRepository(kv.NewMemory()), ScopeIdentity, nil)

	_, _ = s.Toggle(ctx, u1, novocaine)
	_, _ = s.Toggle(ctx, u1, furious)

	list, _ := s.List(ctx, u1)
	require.Len(t, list, 2)
	assert.Equal(t, "m1", list[0].ID)
	assert.Equal(t, "m2", list[1].ID)
}

func TestIdentityScopeIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewRepository(kv.NewMemory()), ScopeIdentity, nil)

	_, err := s.Toggle(ctx, u1, novocaine)
	require.NoError(t, err)

	fav, _ := s.IsFavorite(ctx, u2, "m1")
	assert.False(t, fav)
	assert.Equal(t, "favorites_u1", s.Key(u1))
}

func TestProfileScopeSharesList(t *testing.T) {
	ctx := context.Background()
	s := New(kv.NewRepository(kv.NewMemory()), ScopeProfile, nil)

	_, err := s.Toggle(ctx, u1, novocaine)
	require.NoError(t, err)

	fav, _ := s.IsFavorite(ctx, u2, "m1")
	assert.True(t, fav)
	assert.Equal(t, ProfileKey, s.Key(u2))
}

func TestAnonymousToggleIsNoOp(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	rec := &notify.Recorder{}
	s := New(kv.NewRepository(mem), ScopeProfile, rec)

	added, err := s.Toggle(ctx, nil, novocaine)
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 0, mem.Len())

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, notify.Warning, last.Severity)

	fav, err := s.IsFavorite(ctx, nil, "m1")
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestTitles(t *testing.T) {
	lookup := func(id string) (media.Title, bool) {
		if id == "m1" {
			return media.Title{ID: "m1"}, true
		}
		return media.Title{}, false
	}
	got := Titles([]media.FavoriteRecord{novocaine, furious}, lookup)
	require.Len(t, got, 1)
	assert.Equal(t, "m1", got[0].ID)
}
