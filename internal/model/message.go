package model

import "time"

// Message is a single note on the board. Records are append-only.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Text      string    `gorm:"column:message;type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
