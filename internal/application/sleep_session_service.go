package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type SleepSessionService struct {
	*OwnedService[entity.SleepSession]
	Sessions repo.SleepSessionRepository
}

func NewSleepSessionService(r repo.SleepSessionRepository, logger *logrus.Logger) *SleepSessionService {
	return &SleepSessionService{
		OwnedService: NewOwnedService[entity.SleepSession](r, "Sleep session", logger),
		Sessions:     r,
	}
}

type CreateSleepSessionInput struct {
	Date          *time.Time           `json:"date" binding:"required"`
	CurrentStatus *entity.SleepStatus  `json:"currentStatus" binding:"required"`
	LiveMetrics   *entity.SleepMetrics `json:"liveMetrics"`
	SleepQuality  *entity.SleepQuality `json:"sleepQuality"`
	DreamData     *entity.DreamData    `json:"dreamData"`
}

// UpdateSleepSessionInput replaces each sub-document that is present.
type UpdateSleepSessionInput struct {
	Date          *time.Time           `json:"date"`
	CurrentStatus *entity.SleepStatus  `json:"currentStatus"`
	LiveMetrics   *entity.SleepMetrics `json:"liveMetrics"`
	SleepQuality  *entity.SleepQuality `json:"sleepQuality"`
	DreamData     *entity.DreamData    `json:"dreamData"`
}

func (s *SleepSessionService) CreateSession(ctx context.Context, userID string, in CreateSleepSessionInput) (*entity.SleepSession, error) {
	if in.Date == nil || in.Date.IsZero() || in.CurrentStatus == nil {
		return nil, BadRequest("Date and currentStatus are required")
	}
	ss := &entity.SleepSession{
		UserID:        userID,
		Date:          in.Date.UTC(),
		CurrentStatus: *in.CurrentStatus,
		LiveMetrics:   in.LiveMetrics,
		SleepQuality:  in.SleepQuality,
		DreamData:     in.DreamData,
	}
	return s.Create(ctx, ss)
}

func (s *SleepSessionService) UpdateSession(ctx context.Context, id, userID string, in UpdateSleepSessionInput) (*entity.SleepSession, error) {
	return s.Update(ctx, id, userID, func(ss *entity.SleepSession) error {
		if in.Date != nil && !in.Date.IsZero() {
			ss.Date = in.Date.UTC()
		}
		if in.CurrentStatus != nil {
			ss.CurrentStatus = *in.CurrentStatus
		}
		if in.LiveMetrics != nil {
			ss.LiveMetrics = in.LiveMetrics
		}
		if in.SleepQuality != nil {
			ss.SleepQuality = in.SleepQuality
		}
		if in.DreamData != nil {
			ss.DreamData = in.DreamData
		}
		return nil
	})
}

// LatestSession returns the most recently created session of the requester.
func (s *SleepSessionService) LatestSession(ctx context.Context, userID string) (*entity.SleepSession, error) {
	ss, err := s.Sessions.Latest(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NotFound("No sleep session found for this user")
		}
		return nil, s.internal("latest", err)
	}
	return ss, nil
}
