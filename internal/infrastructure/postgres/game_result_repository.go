package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type GameResultRepository struct {
	db DB
}

func NewGameResultRepository(pool *pgxpool.Pool) *GameResultRepository {
	return &GameResultRepository{db: pool}
}

const gameResultColumns = `id::text, user_id::text, game_id::text, score, time_completed, was_successful,
	created_at, updated_at`

func scanGameResult(row pgx.Row) (entity.GameResult, error) {
	var g entity.GameResult
	err := row.Scan(&g.ID, &g.UserID, &g.GameID, &g.Score, &g.TimeCompleted, &g.WasSuccessful,
		&g.CreatedAt, &g.UpdatedAt)
	return g, err
}

func (r *GameResultRepository) Create(ctx context.Context, g *entity.GameResult) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO game_results (user_id, game_id, score, time_completed, was_successful)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text, created_at, updated_at
	`, g.UserID, g.GameID, g.Score, g.TimeCompleted, g.WasSuccessful)
	return mapErr(row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt))
}

func (r *GameResultRepository) FindByID(ctx context.Context, id string) (*entity.GameResult, error) {
	return queryOne(ctx, r.db, scanGameResult, `SELECT `+gameResultColumns+` FROM game_results WHERE id = $1`, id)
}

func (r *GameResultRepository) ListByUser(ctx context.Context, userID string) ([]entity.GameResult, error) {
	return queryAll(ctx, r.db, scanGameResult, `SELECT `+gameResultColumns+` FROM game_results WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *GameResultRepository) ListByGame(ctx context.Context, userID, gameID string) ([]entity.GameResult, error) {
	return queryAll(ctx, r.db, scanGameResult, `SELECT `+gameResultColumns+` FROM game_results WHERE user_id = $1 AND game_id = $2 ORDER BY score DESC`, userID, gameID)
}

func (r *GameResultRepository) Update(ctx context.Context, g *entity.GameResult) error {
	row := r.db.QueryRow(ctx, `
		UPDATE game_results SET score = $1, time_completed = $2, was_successful = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, g.Score, g.TimeCompleted, g.WasSuccessful, g.ID)
	return mapErr(row.Scan(&g.UpdatedAt))
}

func (r *GameResultRepository) Delete(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM game_results WHERE id = $1`, id))
}

var _ repository.GameResultRepository = (*GameResultRepository)(nil)
