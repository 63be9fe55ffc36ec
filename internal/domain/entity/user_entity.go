package entity

import (
	"time"
)

// User is the aggregate root for user domain
// Passwords are stored as bcrypt hashes in Password field; RefreshToken holds
// the single refresh token currently considered valid for the user.
type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	FullName     string          `json:"fullName"`
	Password     string          `json:"-"`
	Age          *int            `json:"age,omitempty"`
	Preferences  UserPreferences `json:"preferences"`
	Stats        UserStats       `json:"stats"`
	RefreshToken string          `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type UserPreferences struct {
	Notifications bool `json:"notifications"`
	DreamAnalysis bool `json:"dreamAnalysis"`
	DataSharing   bool `json:"dataSharing"`
}

// DefaultPreferences mirrors the column defaults of the users table.
func DefaultPreferences() UserPreferences {
	return UserPreferences{Notifications: true, DreamAnalysis: true, DataSharing: false}
}

type UserStats struct {
	TotalDreams      int     `json:"totalDreams"`
	StoriesGenerated int     `json:"storiesGenerated"`
	GamesPlayed      int     `json:"gamesPlayed"`
	TotalSleepHours  float64 `json:"totalSleepHours"`
}
