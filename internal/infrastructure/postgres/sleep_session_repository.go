package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

// SleepSessionRepository stores the nested session documents as JSONB.
type SleepSessionRepository struct {
	db DB
}

func NewSleepSessionRepository(pool *pgxpool.Pool) *SleepSessionRepository {
	return &SleepSessionRepository{db: pool}
}

const sleepSessionColumns = `id::text, user_id::text, date, current_status, live_metrics, sleep_quality,
	dream_data, created_at, updated_at`

func scanSleepSession(row pgx.Row) (entity.SleepSession, error) {
	var s entity.SleepSession
	err := row.Scan(&s.ID, &s.UserID, &s.Date, &s.CurrentStatus, &s.LiveMetrics, &s.SleepQuality,
		&s.DreamData, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *SleepSessionRepository) Create(ctx context.Context, s *entity.SleepSession) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO sleep_sessions (user_id, date, current_status, live_metrics, sleep_quality, dream_data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at, updated_at
	`, s.UserID, s.Date, s.CurrentStatus, s.LiveMetrics, s.SleepQuality, s.DreamData)
	return mapErr(row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt))
}

func (r *SleepSessionRepository) FindByID(ctx context.Context, id string) (*entity.SleepSession, error) {
	return queryOne(ctx, r.db, scanSleepSession, `SELECT `+sleepSessionColumns+` FROM sleep_sessions WHERE id = $1`, id)
}

func (r *SleepSessionRepository) ListByUser(ctx context.Context, userID string) ([]entity.SleepSession, error) {
	return queryAll(ctx, r.db, scanSleepSession, `SELECT `+sleepSessionColumns+` FROM sleep_sessions WHERE user_id = $1 ORDER BY date DESC`, userID)
}

func (r *SleepSessionRepository) Latest(ctx context.Context, userID string) (*entity.SleepSession, error) {
	return queryOne(ctx, r.db, scanSleepSession, `SELECT `+sleepSessionColumns+` FROM sleep_sessions WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, userID)
}

func (r *SleepSessionRepository) Update(ctx context.Context, s *entity.SleepSession) error {
	row := r.db.QueryRow(ctx, `
		UPDATE sleep_sessions SET date = $1, current_status = $2, live_metrics = $3, sleep_quality = $4,
			dream_data = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`, s.Date, s.CurrentStatus, s.LiveMetrics, s.SleepQuality, s.DreamData, s.ID)
	return mapErr(row.Scan(&s.UpdatedAt))
}

func (r *SleepSessionRepository) Delete(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM sleep_sessions WHERE id = $1`, id))
}

var _ repository.SleepSessionRepository = (*SleepSessionRepository)(nil)
