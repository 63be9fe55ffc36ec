package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type GameRepository struct {
	db DB
}

func NewGameRepository(pool *pgxpool.Pool) *GameRepository {
	return &GameRepository{db: pool}
}

const gameColumns = `id::text, user_id::text, journal_entry_id::text, title, type, description, difficulty,
	duration, rating, is_completed, emotion, created_at, updated_at`

func scanGame(row pgx.Row) (entity.Game, error) {
	var g entity.Game
	err := row.Scan(&g.ID, &g.UserID, &g.JournalEntryID, &g.Title, &g.Type, &g.Description, &g.Difficulty,
		&g.Duration, &g.Rating, &g.IsCompleted, &g.Emotion, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *GameRepository) Create(ctx context.Context, g *entity.Game) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO games (user_id, journal_entry_id, title, type, description, difficulty, duration, emotion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, rating, is_completed, created_at, updated_at
	`, g.UserID, g.JournalEntryID, g.Title, g.Type, g.Description, g.Difficulty, g.Duration, g.Emotion)
	return mapErr(row.Scan(&g.ID, &g.Rating, &g.IsCompleted, &g.CreatedAt, &g.UpdatedAt))
}

func (r *GameRepository) FindByID(ctx context.Context, id string) (*entity.Game, error) {
	return queryOne(ctx, r.db, scanGame, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)
}

func (r *GameRepository) ListByUser(ctx context.Context, userID string) ([]entity.Game, error) {
	return queryAll(ctx, r.db, scanGame, `SELECT `+gameColumns+` FROM games WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *GameRepository) Update(ctx context.Context, g *entity.Game) error {
	row := r.db.QueryRow(ctx, `
		UPDATE games SET rating = $1, is_completed = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, g.Rating, g.IsCompleted, g.ID)
	return mapErr(row.Scan(&g.UpdatedAt))
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM games WHERE id = $1`, id))
}

var _ repository.GameRepository = (*GameRepository)(nil)
