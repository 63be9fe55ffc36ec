package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/pkg/helpers"
)

type ActivityKind string

const (
	ActivityStoryCreated        ActivityKind = "story_created"
	ActivityGameResultRecorded  ActivityKind = "game_result_recorded"
	ActivityJournalEntryCreated ActivityKind = "journal_entry_created"
)

// ActivityEvent is published on the activity queue and folded into user stats by the stats worker.
type ActivityEvent struct {
	UserID     string       `json:"user_id"`
	Kind       ActivityKind `json:"kind"`
	Dreams     int          `json:"dreams,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// StatsDelta returns the counter increments implied by the event.
func (e ActivityEvent) StatsDelta() entity.UserStats {
	switch e.Kind {
	case ActivityStoryCreated:
		return entity.UserStats{StoriesGenerated: 1}
	case ActivityGameResultRecorded:
		return entity.UserStats{GamesPlayed: 1}
	case ActivityJournalEntryCreated:
		return entity.UserStats{TotalDreams: e.Dreams}
	default:
		return entity.UserStats{}
	}
}

// ActivityRecorder publishes activity events. A nil recorder or publisher is a no-op.
type ActivityRecorder struct {
	Pub    helpers.Publisher
	Logger *logrus.Logger
}

func NewActivityRecorder(pub helpers.Publisher, logger *logrus.Logger) *ActivityRecorder {
	return &ActivityRecorder{Pub: pub, Logger: logger}
}

func (r *ActivityRecorder) Record(ctx context.Context, ev ActivityEvent) {
	if r == nil || r.Pub == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	if err := r.Pub.PublishJSON(ctx, ev); err != nil {
		loggerOrDiscard(r.Logger).WithError(err).WithFields(logrus.Fields{
			"user_id": ev.UserID,
			"kind":    ev.Kind,
		}).Warn("failed to publish activity event")
	}
}
