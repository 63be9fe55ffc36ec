package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// UserStore is a process-local UserRepository with a unique email index.
type UserStore struct {
	mu      sync.RWMutex
	byID    map[string]entity.User
	byEmail map[string]string
}

func NewUserRepository() *UserStore {
	return &UserStore{byID: make(map[string]entity.User), byEmail: make(map[string]string)}
}

func (s *UserStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[u.Email]; taken {
		return repo.ErrAlreadyExists
	}
	now := time.Now().UTC()
	u.ID, u.CreatedAt, u.UpdatedAt = uuid.NewString(), now, now
	s.byID[u.ID] = *u
	s.byEmail[u.Email] = u.ID
	return nil
}

func (s *UserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[email]
	s.mu.RUnlock()
	if !ok {
		return nil, repo.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

func (s *UserStore) SetRefreshToken(_ context.Context, id, token string) error {
	return s.mutate(id, func(u *entity.User) { u.RefreshToken = token })
}

func (s *UserStore) IncrementStats(_ context.Context, id string, d entity.UserStats) error {
	return s.mutate(id, func(u *entity.User) {
		u.Stats.TotalDreams += d.TotalDreams
		u.Stats.StoriesGenerated += d.StoriesGenerated
		u.Stats.GamesPlayed += d.GamesPlayed
		u.Stats.TotalSleepHours += d.TotalSleepHours
	})
}

func (s *UserStore) mutate(id string, fn func(*entity.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return repo.ErrNotFound
	}
	fn(&u)
	u.UpdatedAt = time.Now().UTC()
	s.byID[id] = u
	return nil
}

var _ repo.UserRepository = (*UserStore)(nil)
