package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/domain"
)

// ProductRepository handles product reads shared by the catalog services.
// Ownership resolution is an explicit lookup returning the owning user id,
// compared against the caller by the access guard.
type ProductRepository interface {
	// GetByID retrieves one product with relations and collections loaded
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// BusinessOwner resolves the user owning the product's business
	BusinessOwner(ctx context.Context, productID int64) (int64, error)

	// ImageOwner resolves the user owning the image's product's business
	ImageOwner(ctx context.Context, imageID int64) (int64, error)

	// NameTaken reports whether another product already uses the name
	// within the same (business, category) pair
	NameTaken(ctx context.Context, businessID, categoryID int64, name string, excludeID int64) (bool, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Joins("Business").
		Joins("Category").
		Preload("Images").
		Preload("Comments").
		Preload("WishRefs").
		Preload("CartRefs").
		Preload("OrderRefs").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("product with product_id: %d does not exist", id)
	} else if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) BusinessOwner(ctx context.Context, productID int64) (int64, error) {
	var owner int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Select("businesses.user_id").
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("products.id = ?", productID).
		Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.NotFound("product with product_id: %d does not exist", productID)
	} else if err != nil {
		return 0, err
	}
	return owner, nil
}

func (r *GormProductRepository) ImageOwner(ctx context.Context, imageID int64) (int64, error) {
	var owner int64
	err := r.db.WithContext(ctx).
		Model(&domain.ProductImage{}).
		Select("businesses.user_id").
		Joins("JOIN products ON products.id = product_images.product_id AND products.deleted_at IS NULL").
		Joins("JOIN businesses ON businesses.id = products.business_id").
		Where("product_images.id = ?", imageID).
		Take(&owner).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, domain.NotFound("image with id: %d does not exist", imageID)
	} else if err != nil {
		return 0, err
	}
	return owner, nil
}

func (r *GormProductRepository) NameTaken(ctx context.Context, businessID, categoryID int64, name string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("business_id = ? AND category_id = ? AND name = ?", businessID, categoryID, name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
