package shopping

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// CheckoutService converts a user's cart into immutable order records.
type CheckoutService struct {
	db *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{db: db}
}

// CompletePayment reads the caller's cart rows, writes one RequestCart per
// line capturing quantity * product price at this moment, then clears the
// cart. The whole sequence runs in one transaction: any failure rolls back
// and leaves the cart exactly as before the attempt.
func (s *CheckoutService) CompletePayment(ctx context.Context) error {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	var lines int
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var carts []domain.Cart
		if err := tx.Preload("Product").Where("user_id = ?", uid).Find(&carts).Error; err != nil {
			return err
		}
		if len(carts) == 0 {
			return nil
		}

		for _, cart := range carts {
			record := domain.RequestCart{
				ID:         common.UUIDint64(),
				UserID:     uid,
				BusinessID: cart.Product.BusinessID,
				ProductID:  cart.ProductID,
				Quantity:   cart.Quantity,
				Price:      cart.Product.Price.Mul(decimal.NewFromInt(int64(cart.Quantity))),
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		lines = len(carts)
		return tx.Where("user_id = ?", uid).Delete(&domain.Cart{}).Error
	})
	if err != nil {
		zap.L().Error("checkout failed", zap.Int64("user_id", uid), zap.Error(err))
		return err
	}

	if lines > 0 {
		zap.L().Info("checkout completed", zap.Int64("user_id", uid), zap.Int("lines", lines))
	}
	return nil
}
