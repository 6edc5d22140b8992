package domain

import "time"

// Business is a seller entity, exactly one per user.
type Business struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex" json:"user_id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
