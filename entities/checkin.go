package entities

import "time"

type CheckIn struct {
	CheckInID uint      `gorm:"primaryKey" json:"check_in_id"`
	UserID    string    `gorm:"index" json:"user_id"`
	Energy    *int      `json:"energy"` // 1..5
	Mood      *int      `json:"mood"`   // 1..5
	Symptoms  []string  `gorm:"serializer:json" json:"symptoms"`
	Date      time.Time `gorm:"index" json:"date"`
	CreatedAt time.Time
}
