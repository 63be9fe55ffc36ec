package memory

import (
	"context"
	"sort"
	"time"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

func NewStoryRepository() *OwnedStore[entity.Story] {
	return NewOwnedStore(
		func(s *entity.Story, id string, now time.Time) { s.ID, s.CreatedAt, s.UpdatedAt = id, now, now },
		func(s *entity.Story, now time.Time) { s.UpdatedAt = now },
		nil,
	)
}

func NewGameRepository() *OwnedStore[entity.Game] {
	return NewOwnedStore(
		func(g *entity.Game, id string, now time.Time) { g.ID, g.CreatedAt, g.UpdatedAt = id, now, now },
		func(g *entity.Game, now time.Time) { g.UpdatedAt = now },
		nil,
	)
}

func NewJournalEntryRepository() *OwnedStore[entity.JournalEntry] {
	return NewOwnedStore(
		func(j *entity.JournalEntry, id string, now time.Time) { j.ID, j.CreatedAt, j.UpdatedAt = id, now, now },
		func(j *entity.JournalEntry, now time.Time) { j.UpdatedAt = now },
		func(a, b entity.JournalEntry) bool { return a.Date.After(b.Date) },
	)
}

// SleepSessionStore adds Latest on top of the generic store.
type SleepSessionStore struct {
	*OwnedStore[entity.SleepSession]
}

func NewSleepSessionRepository() *SleepSessionStore {
	return &SleepSessionStore{NewOwnedStore(
		func(s *entity.SleepSession, id string, now time.Time) { s.ID, s.CreatedAt, s.UpdatedAt = id, now, now },
		func(s *entity.SleepSession, now time.Time) { s.UpdatedAt = now },
		func(a, b entity.SleepSession) bool { return a.Date.After(b.Date) },
	)}
}

// Latest returns the most recently created session of userID.
func (s *SleepSessionStore) Latest(_ context.Context, userID string) (*entity.SleepSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var (
		latest *entity.SleepSession
		best   int64
	)
	for id, v := range s.items {
		if v.UserID == userID && s.seq[id] > best {
			v := v
			latest, best = &v, s.seq[id]
		}
	}
	if latest == nil {
		return nil, repo.ErrNotFound
	}
	return latest, nil
}

// GameResultStore adds ListByGame on top of the generic store.
type GameResultStore struct {
	*OwnedStore[entity.GameResult]
}

func NewGameResultRepository() *GameResultStore {
	return &GameResultStore{NewOwnedStore(
		func(r *entity.GameResult, id string, now time.Time) { r.ID, r.CreatedAt, r.UpdatedAt = id, now, now },
		func(r *entity.GameResult, now time.Time) { r.UpdatedAt = now },
		nil,
	)}
}

// ListByGame returns userID's results for gameID, best score first.
func (s *GameResultStore) ListByGame(_ context.Context, userID, gameID string) ([]entity.GameResult, error) {
	out := s.filter(func(r entity.GameResult) bool { return r.UserID == userID && r.GameID == gameID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}

var (
	_ repo.StoryRepository        = (*OwnedStore[entity.Story])(nil)
	_ repo.GameRepository         = (*OwnedStore[entity.Game])(nil)
	_ repo.JournalEntryRepository = (*OwnedStore[entity.JournalEntry])(nil)
	_ repo.SleepSessionRepository = (*SleepSessionStore)(nil)
	_ repo.GameResultRepository   = (*GameResultStore)(nil)
)
