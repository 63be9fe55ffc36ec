package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

func TestUserStoreUniqueEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserRepository()

	u := &entity.User{Email: "a@b.test", FullName: "A"}
	require.NoError(t, s.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.ErrorIs(t, s.Create(ctx, &entity.User{Email: "a@b.test"}), repo.ErrAlreadyExists)

	require.NoError(t, s.SetRefreshToken(ctx, u.ID, "t1"))
	got, err := s.GetByEmail(ctx, "a@b.test")
	require.NoError(t, err)
	assert.Equal(t, "t1", got.RefreshToken)

	require.NoError(t, s.IncrementStats(ctx, u.ID, entity.UserStats{GamesPlayed: 1}))
	require.NoError(t, s.IncrementStats(ctx, u.ID, entity.UserStats{GamesPlayed: 2}))
	got, _ = s.GetByID(ctx, u.ID)
	assert.Equal(t, 3, got.Stats.GamesPlayed)

	assert.ErrorIs(t, s.SetRefreshToken(ctx, "nope", ""), repo.ErrNotFound)
}

func TestOwnedStoreCopiesAndOrders(t *testing.T) {
	ctx := context.Background()
	s := NewStoryRepository()

	first := &entity.Story{UserID: "u1", Title: "first"}
	second := &entity.Story{UserID: "u1", Title: "second"}
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, second))
	require.NoError(t, s.Create(ctx, &entity.Story{UserID: "u2", Title: "other"}))

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)

	got, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	got.Title = "mutated"
	again, _ := s.FindByID(ctx, first.ID)
	assert.Equal(t, "first", again.Title)

	require.NoError(t, s.Delete(ctx, first.ID))
	assert.ErrorIs(t, s.Delete(ctx, first.ID), repo.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, first), repo.ErrNotFound)
}

func TestSleepSessionLatestAndDateOrder(t *testing.T) {
	ctx := context.Background()
	s := NewSleepSessionRepository()
	now := time.Now().UTC()

	_, err := s.Latest(ctx, "u1")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	older := &entity.SleepSession{UserID: "u1", Date: now}
	newer := &entity.SleepSession{UserID: "u1", Date: now.Add(-48 * time.Hour)}
	require.NoError(t, s.Create(ctx, older))
	require.NoError(t, s.Create(ctx, newer))

	latest, err := s.Latest(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID, "latest is by creation, not by date")

	list, _ := s.ListByUser(ctx, "u1")
	assert.Equal(t, older.ID, list[0].ID, "lists are ordered by date desc")
}

func TestGameResultsByGame(t *testing.T) {
	ctx := context.Background()
	s := NewGameResultRepository()
	for _, score := range []float64{5, 20, 10} {
		require.NoError(t, s.Create(ctx, &entity.GameResult{UserID: "u1", GameID: "g1", Score: score}))
	}
	require.NoError(t, s.Create(ctx, &entity.GameResult{UserID: "u2", GameID: "g1", Score: 99}))

	out, err := s.ListByGame(ctx, "u1", "g1")
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, []float64{20, 10, 5}, []float64{out[0].Score, out[1].Score, out[2].Score})
}
