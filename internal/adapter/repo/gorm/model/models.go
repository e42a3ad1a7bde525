package model

import "time"

type RunRecord struct {
	ID          uint      `gorm:"primaryKey"`
	RunID       string    `gorm:"uniqueIndex;size:64;not null"`
	Levels      int       `gorm:"not null"`
	Cleared     int       `gorm:"not null"`
	Aborted     bool      `gorm:"not null"`
	RewardCoins int       `gorm:"not null"`
	FinishedAt  time.Time `gorm:"not null"`
	CreatedAt   time.Time
}

type JournalEntry struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Type       string    `gorm:"index;size:64;not null"`
	OccurredAt time.Time `gorm:"index;not null"`
	Payload    []byte
}

type RewardEntry struct {
	ID        uint      `gorm:"primaryKey"`
	RunID     string    `gorm:"uniqueIndex;size:64;not null"`
	Coins     int       `gorm:"not null"`
	GrantedAt time.Time `gorm:"not null"`
}
