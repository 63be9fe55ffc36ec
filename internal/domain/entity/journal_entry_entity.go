package entity

import "time"

type JournalEntry struct {
	ID               string           `json:"id"`
	UserID           string           `json:"userId"`
	SleepSessionID   string           `json:"sleepSessionId"`
	Date             time.Time        `json:"date"`
	UserRating       *int             `json:"userRating,omitempty"`
	DreamsCount      int              `json:"dreamsCount"`
	TotalREM         float64          `json:"totalRem"` // minutes
	DominantEmotion  string           `json:"dominantEmotion"`
	Themes           []string         `json:"themes"`
	ContentGenerated ContentGenerated `json:"contentGenerated"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func (j JournalEntry) ResourceID() string { return j.ID }
func (j JournalEntry) OwnerID() string    { return j.UserID }

type ContentGenerated struct {
	Stories int `json:"stories"`
	Games   int `json:"games"`
	Images  int `json:"images"`
}
