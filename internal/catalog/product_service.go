package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

// ProductService enforces the catalog invariants the store does not:
// product-name uniqueness per (business, category), single cover image,
// and the self-comment ban.
type ProductService struct {
	db   *gorm.DB
	repo ProductRepository
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db, repo: NewGormProductRepository(db)}
}

// Query composes the filter into a lazy query, ready for the paginator.
func (s *ProductService) Query(ctx context.Context, filter ProductFilter) *gorm.DB {
	return filter.Apply(s.db.WithContext(ctx))
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

type ProductImageInput struct {
	Ref     string `json:"ref"`
	IsCover bool   `json:"is_cover"`
}

type CreateProductInput struct {
	CategoryID  int64               `json:"category_id"`
	Name        string              `json:"name"`
	Price       decimal.Decimal     `json:"price"`
	TotalCount  uint                `json:"total_count"`
	Description string              `json:"description"`
	Images      []ProductImageInput `json:"images"`
}

// Create inserts a product with its images for the caller's business.
// A duplicate (business, category, name) fails with Conflict; the unique
// index backs the check so concurrent duplicates cannot both succeed.
func (s *ProductService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.Validation("product name is required")
	}
	if in.Price.IsNegative() {
		return nil, domain.Validation("product price must not be negative")
	}

	business, err := s.businessOf(ctx, uid)
	if err != nil {
		return nil, err
	}

	var category domain.Category
	err = s.db.WithContext(ctx).First(&category, in.CategoryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("category with id: %d does not exist", in.CategoryID)
	} else if err != nil {
		return nil, err
	}

	taken, err := s.repo.NameTaken(ctx, business.ID, in.CategoryID, in.Name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict("product with name - %s exists for this business and category", in.Name)
	}

	product := domain.Product{
		ID:             common.UUIDint64(),
		BusinessID:     business.ID,
		CategoryID:     in.CategoryID,
		Name:           in.Name,
		Price:          in.Price,
		TotalAvailable: in.TotalCount,
		TotalCount:     in.TotalCount,
		Description:    in.Description,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		for _, img := range in.Images {
			image := domain.ProductImage{
				ID:        common.UUIDint64(),
				ProductID: product.ID,
				Ref:       img.Ref,
				IsCover:   img.IsCover,
			}
			if err := tx.Create(&image).Error; err != nil {
				return err
			}
			product.Images = append(product.Images, image)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, domain.Conflict("product with name - %s exists for this business and category", in.Name)
	} else if err != nil {
		return nil, err
	}

	zap.L().Info("product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("business_id", business.ID),
		zap.String("name", product.Name),
	)
	return &product, nil
}

// UpdateProductInput applies a sparse field set; nil means "leave as is",
// distinguishing unset fields from ones explicitly set to a zero value.
type UpdateProductInput struct {
	CategoryID     *int64           `json:"category_id"`
	Name           *string          `json:"name"`
	Price          *decimal.Decimal `json:"price"`
	TotalAvailable *uint            `json:"total_available"`
	Description    *string          `json:"description"`
}

func (s *ProductService) Update(ctx context.Context, productID int64, in UpdateProductInput) (*domain.Product, error) {
	_, err := auth.RequireOwner(ctx, func(ctx context.Context) (int64, error) {
		return s.repo.BusinessOwner(ctx, productID)
	})
	if err != nil {
		return nil, err
	}

	var product domain.Product
	err = s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.NotFound("product with product_id: %d does not exist", productID)
	} else if err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		var category domain.Category
		err = s.db.WithContext(ctx).First(&category, *in.CategoryID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("category with id: %d does not exist", *in.CategoryID)
		} else if err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Validation("product name is required")
		}
		taken, err := s.repo.NameTaken(ctx, product.BusinessID, product.CategoryID, name, product.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Conflict("product with name - %s exists for this business and category", name)
		}
		product.Name = name
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.Validation("product price must not be negative")
		}
		product.Price = *in.Price
	}
	if in.TotalAvailable != nil {
		if *in.TotalAvailable > product.TotalCount {
			return nil, domain.Validation("total_available must not exceed total_count")
		}
		product.TotalAvailable = *in.TotalAvailable
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("product with name - %s exists for this business and category", product.Name)
		}
		return nil, err
	}
	return &product, nil
}

// Delete soft-deletes the product and removes its dependent rows (images,
// comments, cart lines, wish entries) in one transaction.
func (s *ProductService) Delete(ctx context.Context, productID int64) error {
	_, err := auth.RequireOwner(ctx, func(ctx context.Context) (int64, error) {
		return s.repo.BusinessOwner(ctx, productID)
	})
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&domain.ProductComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&domain.WishItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&domain.Cart{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, productID).Error
	})
}

// UpdateImageInput is a sparse update for a product image.
type UpdateImageInput struct {
	Ref     *string `json:"ref"`
	IsCover *bool   `json:"is_cover"`
}

// UpdateImage applies the update and, when the image becomes the cover,
// clears is_cover on every other image of the same product inside the
// same transaction so readers never observe zero or two covers.
func (s *ProductService) UpdateImage(ctx context.Context, imageID int64, in UpdateImageInput) (*domain.ProductImage, error) {
	_, err := auth.RequireOwner(ctx, func(ctx context.Context) (int64, error) {
		return s.repo.ImageOwner(ctx, imageID)
	})
	if err != nil {
		return nil, err
	}

	var image domain.ProductImage
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&image, imageID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("image with id: %d does not exist", imageID)
		} else if err != nil {
			return err
		}
		if in.Ref != nil {
			image.Ref = *in.Ref
		}
		if in.IsCover != nil {
			image.IsCover = *in.IsCover
		}
		image.UpdatedAt = time.Now()
		if err := tx.Save(&image).Error; err != nil {
			return err
		}
		if in.IsCover != nil && *in.IsCover {
			return tx.Model(&domain.ProductImage{}).
				Where("product_id = ? AND id <> ?", image.ProductID, image.ID).
				Update("is_cover", false).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// CreateComment records one comment per (user, product). Business owners
// cannot comment on their own products.
func (s *ProductService) CreateComment(ctx context.Context, productID int64, comment string, rate int) (*domain.ProductComment, error) {
	uid, err := auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	owner, err := s.repo.BusinessOwner(ctx, productID)
	if err != nil {
		return nil, err
	}
	if owner == uid {
		return nil, domain.Forbidden("you cannot comment on your own product")
	}

	if rate <= 0 {
		rate = 3
	}
	row := domain.ProductComment{
		ID:        common.UUIDint64(),
		ProductID: productID,
		UserID:    uid,
		Comment:   comment,
		Rate:      rate,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("you already commented on this product")
		}
		return nil, err
	}
	return &row, nil
}

func (s *ProductService) businessOf(ctx context.Context, userID int64) (*domain.Business, error) {
	var business domain.Business
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&business).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Forbidden("user has no business")
	} else if err != nil {
		return nil, err
	}
	return &business, nil
}
