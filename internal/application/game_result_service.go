package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type GameResultService struct {
	*OwnedService[entity.GameResult]
	Results  repo.GameResultRepository
	Games    *OwnedService[entity.Game]
	Activity *ActivityRecorder
}

func NewGameResultService(r repo.GameResultRepository, games *OwnedService[entity.Game], activity *ActivityRecorder, logger *logrus.Logger) *GameResultService {
	return &GameResultService{
		OwnedService: NewOwnedService[entity.GameResult](r, "Game result", logger),
		Results:      r,
		Games:        games,
		Activity:     activity,
	}
}

type CreateGameResultInput struct {
	GameID        string   `json:"gameId" binding:"required"`
	Score         *float64 `json:"score" binding:"required"`
	TimeCompleted *float64 `json:"timeCompleted" binding:"required,gte=0"`
	WasSuccessful *bool    `json:"wasSuccessful" binding:"required"`
}

type UpdateGameResultInput struct {
	Score         *float64 `json:"score"`
	TimeCompleted *float64 `json:"timeCompleted" binding:"omitempty,gte=0"`
	WasSuccessful *bool    `json:"wasSuccessful"`
}

// RecordResult stores a result for one of the requester's games.
func (s *GameResultService) RecordResult(ctx context.Context, userID string, in CreateGameResultInput) (*entity.GameResult, error) {
	if in.GameID == "" || in.Score == nil || in.TimeCompleted == nil || in.WasSuccessful == nil {
		return nil, BadRequest("Game ID, score, time completed, and success status are required")
	}
	game, err := s.Games.LoadOwned(ctx, in.GameID, userID)
	if err != nil {
		return nil, gameRefError(err)
	}
	gr := &entity.GameResult{
		UserID:        userID,
		GameID:        game.ID,
		Score:         *in.Score,
		TimeCompleted: *in.TimeCompleted,
		WasSuccessful: *in.WasSuccessful,
	}
	if _, err := s.Create(ctx, gr); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, ActivityEvent{UserID: userID, Kind: ActivityGameResultRecorded})
	return gr, nil
}

func (s *GameResultService) UpdateResult(ctx context.Context, id, userID string, in UpdateGameResultInput) (*entity.GameResult, error) {
	return s.Update(ctx, id, userID, func(gr *entity.GameResult) error {
		if in.Score != nil {
			gr.Score = *in.Score
		}
		if in.TimeCompleted != nil {
			gr.TimeCompleted = *in.TimeCompleted
		}
		if in.WasSuccessful != nil {
			gr.WasSuccessful = *in.WasSuccessful
		}
		return nil
	})
}

// ListByGame returns the requester's results for a game, best score first.
func (s *GameResultService) ListByGame(ctx context.Context, userID, gameID string) ([]entity.GameResult, error) {
	gid, err := s.Games.ParseID(gameID)
	if err != nil {
		return nil, gameRefError(err)
	}
	items, err := s.Results.ListByGame(ctx, userID, gid)
	if err != nil {
		return nil, s.internal("list by game", err)
	}
	if items == nil {
		items = []entity.GameResult{}
	}
	return items, nil
}

// gameRefError words a malformed game reference the way the results API always has.
func gameRefError(err error) error {
	if KindOf(err) == KindBadRequest {
		return BadRequest("Invalid Game ID")
	}
	return err
}
