package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product belongs to exactly one Business and one Category. The name is
// unique within a (business, category) pair, enforced by uidx_product_name.
// The index is partial: soft-deleted products release their name.
type Product struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	BusinessID     int64           `gorm:"index;uniqueIndex:uidx_product_name" json:"business_id"`
	CategoryID     int64           `gorm:"index;uniqueIndex:uidx_product_name" json:"category_id"`
	Name           string          `gorm:"size:255;uniqueIndex:uidx_product_name,where:deleted_at IS NULL" json:"name"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	TotalAvailable uint            `json:"total_available"`
	TotalCount     uint            `json:"total_count"`
	Description    string          `gorm:"type:text" json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Business  Business         `json:"business,omitempty"`
	Category  Category         `json:"category,omitempty"`
	Images    []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Comments  []ProductComment `gorm:"foreignKey:ProductID" json:"comments,omitempty"`
	WishRefs  []WishItem       `gorm:"foreignKey:ProductID" json:"wish_refs,omitempty"`
	CartRefs  []Cart           `gorm:"foreignKey:ProductID" json:"cart_refs,omitempty"`
	OrderRefs []RequestCart    `gorm:"foreignKey:ProductID" json:"order_refs,omitempty"`
}

// ProductImage stores a media reference for a product. At most one image per
// product carries IsCover, kept exclusive by the product service.
type ProductImage struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProductID int64     `gorm:"index" json:"product_id"`
	Ref       string    `gorm:"size:1024" json:"ref"`
	IsCover   bool      `json:"is_cover"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductComment holds one comment per (user, product) pair.
type ProductComment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ProductID int64     `gorm:"uniqueIndex:uidx_comment_user_product" json:"product_id"`
	UserID    int64     `gorm:"uniqueIndex:uidx_comment_user_product" json:"user_id"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Rate      int       `gorm:"default:3" json:"rate"`
	CreatedAt time.Time `json:"created_at"`
}
