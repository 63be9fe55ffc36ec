package entity

import "time"

type GameResult struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	GameID        string    `json:"gameId"`
	Score         float64   `json:"score"`
	TimeCompleted float64   `json:"timeCompleted"` // seconds
	WasSuccessful bool      `json:"wasSuccessful"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (r GameResult) ResourceID() string { return r.ID }
func (r GameResult) OwnerID() string    { return r.UserID }
