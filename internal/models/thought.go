package models

import (
	"time"

	"github.com/google/uuid"
)

type Mood string

const (
	MoodPositive Mood = "positive"
	MoodNeutral  Mood = "neutral"
	MoodNegative Mood = "negative"
)

// Moods lists every valid mood, in the order insight distributions report them.
var Moods = []Mood{MoodPositive, MoodNeutral, MoodNegative}

func (m Mood) IsValid() bool {
	switch m {
	case MoodPositive, MoodNeutral, MoodNegative:
		return true
	}
	return false
}

// MaxGrowthStage is the flowering stage; watering never pushes a thought past it.
const MaxGrowthStage = 3

type Thought struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Mood          Mood      `gorm:"type:varchar(20);not null" json:"mood"`
	GrowthStage   int       `gorm:"not null;default:0" json:"growth_stage"` // 0: Seed .. 3: Flowering
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	LastWateredAt time.Time `gorm:"not null" json:"last_watered_at"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
