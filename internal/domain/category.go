package domain

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
