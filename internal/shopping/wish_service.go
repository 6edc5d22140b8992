package shopping

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// WishService maintains the per-user saved-for-later product set. The
// Wish container is created lazily on first use.
type WishService struct {
	db *gorm.DB
}

func NewWishService(db *gorm.DB) *WishService {
	return &WishService{db: db}
}

// Toggle flips the product's membership in the caller's wish list and
// returns the resulting membership. With checkOnly the current state is
// returned without mutating, so the call is freely retryable.
func (s *WishService) Toggle(ctx context.Context, productID int64, checkOnly bool) (bool, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return false, err
	}

	var product domain.Product
	err = s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, domain.NotFound("product with product_id: %d does not exist", productID)
	} else if err != nil {
		return false, err
	}

	wish, err := s.containerOf(ctx, uid, !checkOnly)
	if err != nil {
		return false, err
	}
	if wish == nil {
		// check on a user without a container: nothing saved yet
		return false, nil
	}

	var item domain.WishItem
	err = s.db.WithContext(ctx).
		Where("wish_id = ? AND product_id = ?", wish.ID, productID).
		First(&item).Error
	has := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if checkOnly {
		return has, nil
	}

	if has {
		if err := s.db.WithContext(ctx).Delete(&item).Error; err != nil {
			return false, err
		}
		return false, nil
	}

	item = domain.WishItem{
		ID:        common.UUIDint64(),
		WishID:    wish.ID,
		ProductID: productID,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		// a concurrent toggle already added it; membership holds either way
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the products in the caller's wish list.
func (s *WishService) List(ctx context.Context) ([]domain.Product, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	var products []domain.Product
	err = s.db.WithContext(ctx).
		Joins("JOIN wish_items ON wish_items.product_id = products.id").
		Joins("JOIN wishes ON wishes.id = wish_items.wish_id").
		Where("wishes.user_id = ?", uid).
		Order("wish_items.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *WishService) containerOf(ctx context.Context, userID int64, create bool) (*domain.Wish, error) {
	var wish domain.Wish
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wish).Error
	if err == nil {
		return &wish, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !create {
		return nil, nil
	}
	wish = domain.Wish{ID: common.UUIDint64(), UserID: userID}
	if err := s.db.WithContext(ctx).Create(&wish).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race, load the winner
			if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&wish).Error; err != nil {
				return nil, err
			}
			return &wish, nil
		}
		return nil, err
	}
	return &wish, nil
}
