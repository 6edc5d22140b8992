package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// BusinessService manages the one-business-per-user seller entity.
type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

func (s *BusinessService) Get(ctx context.Context) (*domain.Business, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	var business domain.Business
	err = s.db.WithContext(ctx).Where("user_id = ?", uid).First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("user has no business")
	} else if err != nil {
		return nil, err
	}
	return &business, nil
}

func (s *BusinessService) Create(ctx context.Context, name string) (*domain.Business, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("business name is required")
	}

	business := domain.Business{
		ID:     common.UUIDint64(),
		UserID: uid,
		Name:   name,
	}
	if err := s.db.WithContext(ctx).Create(&business).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("user already has a business or the name is taken")
		}
		return nil, err
	}
	zap.L().Info("business created", zap.Int64("business_id", business.ID), zap.Int64("user_id", uid))
	return &business, nil
}

func (s *BusinessService) Update(ctx context.Context, name string) (*domain.Business, error) {
	business, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("business name is required")
	}
	business.Name = name
	business.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(business).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("business name - %s is taken", name)
		}
		return nil, err
	}
	return business, nil
}

// Delete removes the caller's business together with its products and
// their dependent rows. A user without a business is a no-op.
func (s *BusinessService) Delete(ctx context.Context) error {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var business domain.Business
		err := tx.Where("user_id = ?", uid).First(&business).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		var productIDs []int64
		if err := tx.Model(&domain.Product{}).
			Where("business_id = ?", business.ID).
			Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.ProductComment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.WishItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.Cart{}).Error; err != nil {
				return err
			}
			if err := tx.Where("business_id = ?", business.ID).Delete(&domain.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&business).Error
	})
}
