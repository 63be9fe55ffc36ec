package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
	"github.com/oksasatya/dream-journal-api/internal/domain/repository"
)

type JournalEntryRepository struct {
	db DB
}

func NewJournalEntryRepository(pool *pgxpool.Pool) *JournalEntryRepository {
	return &JournalEntryRepository{db: pool}
}

const journalEntryColumns = `id::text, user_id::text, sleep_session_id::text, date, user_rating, dreams_count,
	total_rem, dominant_emotion, themes, content_generated, created_at, updated_at`

func scanJournalEntry(row pgx.Row) (entity.JournalEntry, error) {
	var j entity.JournalEntry
	err := row.Scan(&j.ID, &j.UserID, &j.SleepSessionID, &j.Date, &j.UserRating, &j.DreamsCount,
		&j.TotalREM, &j.DominantEmotion, &j.Themes, &j.ContentGenerated, &j.CreatedAt, &j.UpdatedAt)
	return j, err
}

func (r *JournalEntryRepository) Create(ctx context.Context, j *entity.JournalEntry) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO journal_entries (user_id, sleep_session_id, date, user_rating, dreams_count, total_rem,
			dominant_emotion, themes, content_generated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id::text, created_at, updated_at
	`, j.UserID, j.SleepSessionID, j.Date, j.UserRating, j.DreamsCount, j.TotalREM,
		j.DominantEmotion, j.Themes, j.ContentGenerated)
	return mapErr(row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt))
}

func (r *JournalEntryRepository) FindByID(ctx context.Context, id string) (*entity.JournalEntry, error) {
	return queryOne(ctx, r.db, scanJournalEntry, `SELECT `+journalEntryColumns+` FROM journal_entries WHERE id = $1`, id)
}

func (r *JournalEntryRepository) ListByUser(ctx context.Context, userID string) ([]entity.JournalEntry, error) {
	return queryAll(ctx, r.db, scanJournalEntry, `SELECT `+journalEntryColumns+` FROM journal_entries WHERE user_id = $1 ORDER BY date DESC`, userID)
}

func (r *JournalEntryRepository) Update(ctx context.Context, j *entity.JournalEntry) error {
	row := r.db.QueryRow(ctx, `
		UPDATE journal_entries SET user_rating = $1, themes = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, j.UserRating, j.Themes, j.ID)
	return mapErr(row.Scan(&j.UpdatedAt))
}

func (r *JournalEntryRepository) Delete(ctx context.Context, id string) error {
	return requireAffected(r.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, id))
}

var _ repository.JournalEntryRepository = (*JournalEntryRepository)(nil)
