package entity

import "time"

const StageREM = "REM"

// SleepSession is one night of tracked sleep. The nested documents are
// persisted as JSONB.
type SleepSession struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Date          time.Time     `json:"date"`
	CurrentStatus SleepStatus   `json:"currentStatus"`
	LiveMetrics   *SleepMetrics `json:"liveMetrics,omitempty"`
	SleepQuality  *SleepQuality `json:"sleepQuality,omitempty"`
	DreamData     *DreamData    `json:"dreamData,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (s SleepSession) ResourceID() string { return s.ID }
func (s SleepSession) OwnerID() string    { return s.UserID }

type SleepStatus struct {
	Stage         string  `json:"stage"`         // Deep, Light, REM, Awake
	StageDuration float64 `json:"stageDuration"` // minutes
}

type SleepMetrics struct {
	HeartRate       float64 `json:"heartRate"`
	Respiration     float64 `json:"respiration"`
	BodyTemperature float64 `json:"bodyTemperature"`
}

type SleepQuality struct {
	Score       float64 `json:"score"` // out of 10
	Disruptions int     `json:"disruptions"`
}

type DreamData struct {
	IsDreaming bool    `json:"isDreaming"`
	Confidence float64 `json:"confidence"` // 0..1
	DreamScore float64 `json:"dreamScore"`
	Emotion    string  `json:"emotion,omitempty"`
}
