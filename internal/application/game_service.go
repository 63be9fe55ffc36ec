package application

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type GameService struct {
	*OwnedService[entity.Game]
	Entries *OwnedService[entity.JournalEntry]
}

func NewGameService(r repo.GameRepository, entries *OwnedService[entity.JournalEntry], logger *logrus.Logger) *GameService {
	return &GameService{
		OwnedService: NewOwnedService[entity.Game](r, "Game", logger),
		Entries:      entries,
	}
}

type CreateGameInput struct {
	Title          string  `json:"title" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Difficulty     string  `json:"difficulty" binding:"omitempty,difficulty"`
	Duration       string  `json:"duration"`
	Emotion        string  `json:"emotion"`
	JournalEntryID *string `json:"journalEntryId" binding:"omitempty,uuid"`
}

type UpdateGameInput struct {
	Rating      *float64 `json:"rating" binding:"omitempty,rating5"`
	IsCompleted *bool    `json:"isCompleted"`
}

func (s *GameService) CreateGame(ctx context.Context, userID string, in CreateGameInput) (*entity.Game, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, BadRequest("Title, type, and description are required")
	}
	switch in.Difficulty {
	case "", entity.DifficultyEasy, entity.DifficultyMedium, entity.DifficultyHard:
	default:
		return nil, BadRequest("Difficulty must be one of easy, medium, hard")
	}
	entryID, err := linkJournalEntry(ctx, s.Entries, in.JournalEntryID, userID)
	if err != nil {
		return nil, err
	}
	g := &entity.Game{
		UserID:         userID,
		JournalEntryID: entryID,
		Title:          in.Title,
		Type:           in.Type,
		Description:    in.Description,
		Difficulty:     in.Difficulty,
		Duration:       in.Duration,
		Emotion:        in.Emotion,
	}
	if _, err := s.Create(ctx, g); err != nil {
		return nil, entryLinkError(err, entryID)
	}
	return g, nil
}

func (s *GameService) UpdateGame(ctx context.Context, id, userID string, in UpdateGameInput) (*entity.Game, error) {
	return s.Update(ctx, id, userID, func(g *entity.Game) error {
		if in.Rating != nil {
			g.Rating = *in.Rating
		}
		if in.IsCompleted != nil {
			g.IsCompleted = *in.IsCompleted
		}
		return nil
	})
}
