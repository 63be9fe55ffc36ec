package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

const (
	defaultEmotion          = "neutral"
	msgJournalEntryNotFound = "Journal entry not found"
)

type JournalEntryService struct {
	*OwnedService[entity.JournalEntry]
	Sessions *OwnedService[entity.SleepSession]
	Activity *ActivityRecorder
}

func NewJournalEntryService(r repo.JournalEntryRepository, sessions *OwnedService[entity.SleepSession], activity *ActivityRecorder, logger *logrus.Logger) *JournalEntryService {
	return &JournalEntryService{
		OwnedService: NewOwnedService[entity.JournalEntry](r, "Journal entry", logger),
		Sessions:     sessions,
		Activity:     activity,
	}
}

type CreateJournalEntryInput struct {
	SleepSessionID string     `json:"sleepSessionId" binding:"required"`
	Date           *time.Time `json:"date" binding:"required"`
	UserRating     *int       `json:"userRating" binding:"omitempty,rating5"`
	Themes         []string   `json:"themes"`
}

type UpdateJournalEntryInput struct {
	UserRating *int     `json:"userRating" binding:"omitempty,rating5"`
	Themes     []string `json:"themes"`
}

// CreateEntry creates a journal entry for one of the requester's sleep
// sessions, deriving the dream summary from the session.
func (s *JournalEntryService) CreateEntry(ctx context.Context, userID string, in CreateJournalEntryInput) (*entity.JournalEntry, error) {
	if in.SleepSessionID == "" || in.Date == nil || in.Date.IsZero() {
		return nil, BadRequest("Sleep session ID and date are required")
	}
	session, err := s.Sessions.LoadOwned(ctx, in.SleepSessionID, userID)
	if err != nil {
		if KindOf(err) == KindNotFound {
			return nil, NotFound("Associated sleep session not found")
		}
		return nil, err
	}

	je := &entity.JournalEntry{
		UserID:          userID,
		SleepSessionID:  session.ID,
		Date:            in.Date.UTC(),
		UserRating:      in.UserRating,
		Themes:          nonNilThemes(in.Themes),
		DominantEmotion: defaultEmotion,
	}
	summarizeSession(je, session)

	if _, err := s.Create(ctx, je); err != nil {
		return nil, err
	}
	s.Activity.Record(ctx, ActivityEvent{UserID: userID, Kind: ActivityJournalEntryCreated, Dreams: je.DreamsCount})
	return je, nil
}

func summarizeSession(je *entity.JournalEntry, ss *entity.SleepSession) {
	if ss.DreamData != nil {
		if ss.DreamData.IsDreaming {
			je.DreamsCount = 1
		}
		if ss.DreamData.Emotion != "" {
			je.DominantEmotion = ss.DreamData.Emotion
		}
	}
	if ss.CurrentStatus.Stage == entity.StageREM {
		je.TotalREM = ss.CurrentStatus.StageDuration
	}
}

func (s *JournalEntryService) UpdateEntry(ctx context.Context, id, userID string, in UpdateJournalEntryInput) (*entity.JournalEntry, error) {
	return s.Update(ctx, id, userID, func(je *entity.JournalEntry) error {
		if in.UserRating != nil {
			je.UserRating = in.UserRating
		}
		if in.Themes != nil {
			je.Themes = in.Themes
		}
		return nil
	})
}

func nonNilThemes(t []string) []string {
	if t == nil {
		return []string{}
	}
	return t
}

// linkJournalEntry resolves an optional journal entry reference. The entry
// must belong to userID; a foreign entry is reported like a missing one.
func linkJournalEntry(ctx context.Context, entries *OwnedService[entity.JournalEntry], id *string, userID string) (*string, error) {
	id = emptyToNil(id)
	if id == nil {
		return nil, nil
	}
	if entries == nil {
		return nil, NotFound(msgJournalEntryNotFound)
	}
	je, err := entries.LoadOwned(ctx, *id, userID)
	if err != nil {
		return nil, err
	}
	return &je.ID, nil
}

// entryLinkError reports a reference that vanished between the ownership
// check and the insert as the missing entry.
func entryLinkError(err error, entryID *string) error {
	if entryID != nil && KindOf(err) == KindNotFound {
		return NotFound(msgJournalEntryNotFound)
	}
	return err
}
