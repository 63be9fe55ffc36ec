package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: pool}
}

const userColumns = `id::text, email, full_name, password_hash, age,
	pref_notifications, pref_dream_analysis, pref_data_sharing,
	stats_total_dreams, stats_stories_generated, stats_games_played, stats_total_sleep_hours,
	COALESCE(refresh_token, ''), created_at, updated_at`

func scanUser(row pgx.Row) (entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.Password, &u.Age,
		&u.Preferences.Notifications, &u.Preferences.DreamAnalysis, &u.Preferences.DataSharing,
		&u.Stats.TotalDreams, &u.Stats.StoriesGenerated, &u.Stats.GamesPlayed, &u.Stats.TotalSleepHours,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash, age, pref_notifications, pref_dream_analysis, pref_data_sharing)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at, updated_at
	`, u.Email, u.FullName, u.Password, u.Age,
		u.Preferences.Notifications, u.Preferences.DreamAnalysis, u.Preferences.DataSharing)

	return mapErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return queryOne(ctx, r.db, scanUser, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return queryOne(ctx, r.db, scanUser, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users SET refresh_token = NULLIF($1, ''), updated_at = now()
		WHERE id = $2
	`, token, id))
}

func (r *UserRepository) IncrementStats(ctx context.Context, id string, delta entity.UserStats) error {
	return requireAffected(r.db.Exec(ctx, `
		UPDATE users SET
			stats_total_dreams = stats_total_dreams + $1,
			stats_stories_generated = stats_stories_generated + $2,
			stats_games_played = stats_games_played + $3,
			stats_total_sleep_hours = stats_total_sleep_hours + $4,
			updated_at = now()
		WHERE id = $5
	`, delta.TotalDreams, delta.StoriesGenerated, delta.GamesPlayed, delta.TotalSleepHours, id))
}

var _ repository.UserRepository = (*UserRepository)(nil)
