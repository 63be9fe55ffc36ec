package repository

import (
	"context"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
)

// OwnedRepository is the storage contract shared by every user-owned resource.
// FindByID does not filter by owner; ownership is enforced one layer up.
type OwnedRepository[T entity.Owned] interface {
	Create(ctx context.Context, v *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	ListByUser(ctx context.Context, userID string) ([]T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id string) error
}

type StoryRepository = OwnedRepository[entity.Story]
type GameRepository = OwnedRepository[entity.Game]
type SleepSessionRepository interface {
	OwnedRepository[entity.SleepSession]
	Latest(ctx context.Context, userID string) (*entity.SleepSession, error)
}
type JournalEntryRepository = OwnedRepository[entity.JournalEntry]
type GameResultRepository interface {
	OwnedRepository[entity.GameResult]
	ListByGame(ctx context.Context, userID, gameID string) ([]entity.GameResult, error)
}
