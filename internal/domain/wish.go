package domain

import "time"

// Wish is a user's saved-for-later container, exactly one per user.
// It is created lazily on the first toggle.
type Wish struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Items []WishItem `gorm:"foreignKey:WishID" json:"items,omitempty"`
}

// WishItem is a product reference inside a Wish, unique per (wish, product).
type WishItem struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	WishID    int64     `gorm:"index;uniqueIndex:uidx_wish_product" json:"wish_id"`
	ProductID int64     `gorm:"uniqueIndex:uidx_wish_product" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
