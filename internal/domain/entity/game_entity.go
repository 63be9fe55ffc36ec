package entity

import "time"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Game struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	JournalEntryID *string   `json:"journalEntryId"`
	Title          string    `json:"title"`
	Type           string    `json:"type"` // e.g. "puzzle_game"
	Description    string    `json:"description"`
	Difficulty     string    `json:"difficulty,omitempty"`
	Duration       string    `json:"duration"` // e.g. "5-10 min"
	Rating         float64   `json:"rating"`
	IsCompleted    bool      `json:"isCompleted"`
	Emotion        string    `json:"emotion"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (g Game) ResourceID() string { return g.ID }
func (g Game) OwnerID() string    { return g.UserID }
