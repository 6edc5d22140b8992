package shopping

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// CartService manages the caller's pending purchase lines. One row per
// (user, product); the unique index keeps concurrent duplicate creates
// from both succeeding.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

func (s *CartService) List(ctx context.Context) ([]domain.Cart, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	var carts []domain.Cart
	err = s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", uid).
		Order("created_at DESC").
		Find(&carts).Error
	if err != nil {
		return nil, err
	}
	return carts, nil
}

// Create adds a cart line. An existing (user, product) row fails with
// Conflict; quantities are never merged silently.
func (s *CartService) Create(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		quantity = 1
	}

	var product domain.Product
	err = s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("product with product_id: %d does not exist", productID)
	} else if err != nil {
		return nil, err
	}

	cart := domain.Cart{
		ID:        common.UUIDint64(),
		UserID:    uid,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.db.WithContext(ctx).Create(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("product with product_id: %d is already in the cart", productID)
		}
		return nil, err
	}
	cart.Product = product
	return &cart, nil
}

// Update changes the quantity of a cart line owned by the caller.
func (s *CartService) Update(ctx context.Context, cartID int64, quantity int) (*domain.Cart, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, domain.Validation("quantity must be positive")
	}

	var cart domain.Cart
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, uid).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("invalid cart_id - %d", cartID)
	} else if err != nil {
		return nil, err
	}

	cart.Quantity = quantity
	if err := s.db.WithContext(ctx).Save(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// Delete removes a cart line; deleting an absent row is a no-op, so the
// operation may be retried freely.
func (s *CartService) Delete(ctx context.Context, cartID int64) error {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", cartID, uid).
		Delete(&domain.Cart{}).Error
}
