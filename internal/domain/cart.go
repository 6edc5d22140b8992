package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is one pending purchase line, unique per (user, product).
type Cart struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"index;uniqueIndex:uidx_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"uniqueIndex:uidx_cart_user_product" json:"product_id"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `json:"product,omitempty"`
}

// RequestCart is an immutable checkout line. Price captures quantity times
// the product price at the moment of purchase; rows are never updated.
type RequestCart struct {
	ID         int64           `gorm:"primaryKey" json:"id"`
	UserID     int64           `gorm:"index" json:"user_id"`
	BusinessID int64           `gorm:"index" json:"business_id"`
	ProductID  int64           `gorm:"index" json:"product_id"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
}
