package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/oksasatya/dream-journal-api/internal/application"
	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	repo "github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// StatsHandler folds activity events into the user's stats counters.
func StatsHandler(users repo.UserRepository) Handler {
	return func(ctx context.Context, body []byte) error {
		var ev application.ActivityEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			return fmt.Errorf("%w: bad message: %v", ErrPermanent, err)
		}
		if _, err := uuid.Parse(ev.UserID); err != nil {
			return fmt.Errorf("%w: invalid user id %q", ErrPermanent, ev.UserID)
		}
		delta := ev.StatsDelta()
		if delta == (entity.UserStats{}) {
			return nil
		}
		err := users.IncrementStats(ctx, ev.UserID, delta)
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("%w: user %s no longer exists", ErrPermanent, ev.UserID)
		}
		return err
	}
}
