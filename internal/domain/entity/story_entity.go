package entity

import "time"

type Story struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	JournalEntryID *string   `json:"journalEntryId"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Emotion        string    `json:"emotion"`
	Genre          string    `json:"genre"`
	Duration       string    `json:"duration"`
	Rating         float64   `json:"rating"`
	IsCompleted    bool      `json:"isCompleted"`
	Theme          string    `json:"theme"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (s Story) ResourceID() string { return s.ID }
func (s Story) OwnerID() string    { return s.UserID }
