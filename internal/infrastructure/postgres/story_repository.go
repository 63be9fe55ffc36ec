package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type StoryRepository struct {
	db DB
}

func NewStoryRepository(pool *pgxpool.Pool) *StoryRepository {
	return &StoryRepository{db: pool}
}

const storyColumns = `id::text, user_id::text, journal_entry_id::text, title, content, emotion, genre,
	duration, rating, is_completed, theme, created_at, updated_at`

func scanStory(row pgx.Row) (entity.Story, error) {
	var s entity.Story
	err := row.Scan(&s.ID, &s.UserID, &s.JournalEntryID, &s.Title, &s.Content, &s.Emotion, &s.Genre,
		&s.Duration, &s.Rating, &s.IsCompleted, &s.Theme, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (r *StoryRepository) Create(ctx context.Context, s *entity.Story) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO stories (user_id, journal_entry_id, title, content, emotion, genre, duration, theme)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text, rating, is_completed, created_at, updated_at
	`, s.UserID, s.JournalEntryID, s.Title, s.Content, s.Emotion, s.Genre, s.Duration, s.Theme)
	return mapErr(row.Scan(&s.ID, &s.Rating, &s.IsCompleted, &s.CreatedAt, &s.UpdatedAt))
}

func (r *StoryRepository) FindByID(ctx context.Context, id string) (*entity.Story, error) {
	return queryOne(ctx, r.db, scanStory, `SELECT `+storyColumns+` FROM stories WHERE id = $1`, id)
}

func (r *StoryRepository) ListByUser(ctx context.Context, userID string) ([]entity.Story, error) {
	return queryAll(ctx, r.db, scanStory, `SELECT `+storyColumns+` FROM stories WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *StoryRepository) Update(ctx context.Context, s *entity.Story) error {
	row := r.db.QueryRow(ctx, `
		UPDATE stories SET title = $1, content = $2, rating = $3, is_completed = $4, updated_at = now()
		WHERE id = $5
		RETURNING updated_at
	`, s.Title, s.Content, s.Rating, s.IsCompleted, s.ID)
	return mapErr(row.Scan(&s.UpdatedAt))
}

func (r *StoryRepository) Delete(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM stories WHERE id = $1`, id))
}

var _ repository.StoryRepository = (*StoryRepository)(nil)
