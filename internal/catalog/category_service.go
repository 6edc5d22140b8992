package catalog

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns categories, optionally narrowed by a case-insensitive
// substring match on the name.
func (s *CategoryService) List(ctx context.Context, name string) ([]domain.Category, error) {
	q := s.db.WithContext(ctx).Model(&domain.Category{})
	if name = strings.TrimSpace(name); name != "" {
		if strings.EqualFold(s.db.Name(), "postgres") {
			q = q.Where("name ILIKE ?", "%"+name+"%")
		} else {
			q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%")
		}
	}
	var categories []domain.Category
	if err := q.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	if _, err := auth.CurrentUser(ctx); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validation("category name is required")
	}
	category := domain.Category{ID: common.UUIDint64(), Name: name}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.Conflict("category with name - %s already exists", name)
		}
		return nil, err
	}
	return &category, nil
}
