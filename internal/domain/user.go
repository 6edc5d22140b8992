package domain

import "time"

// User is an account that may own a Business and holds cart/wish/request rows.
type User struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"uniqueIndex;size:255" json:"email"`
	Password  string     `gorm:"size:255" json:"-"`
	Name      string     `gorm:"size:255" json:"name"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
