package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/domain"
)

// ProductFilter is the optional filter/sort set of the product search.
// Zero-value fields impose no constraint; all present filters combine
// with AND.
type ProductFilter struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Category string
	Business string
	SortBy   string
	IsAsc    bool
}

// whitelist allowed sort columns to avoid SQL injection
var sortColumns = map[string]string{
	"name":       "products.name",
	"price":      "products.price",
	"created_at": "products.created_at",
	"updated_at": "products.updated_at",
}

// Apply composes the filter into a lazy query over products with business
// and category joined eagerly and the per-product collections prefetched.
// The query is not executed here; the paginator or caller finishes it.
func (f ProductFilter) Apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&domain.Product{}).
		Joins("Business").
		Joins("Category").
		Preload("Images").
		Preload("Comments").
		Preload("WishRefs").
		Preload("CartRefs").
		Preload("OrderRefs")

	pg := strings.EqualFold(db.Name(), "postgres")

	if s := strings.TrimSpace(f.Search); s != "" {
		if pg {
			pat := "%" + s + "%"
			q = q.Where(`products.name ILIKE ? OR products.description ILIKE ? OR "Category".name ILIKE ?`,
				pat, pat, pat)
		} else {
			pat := "%" + strings.ToLower(s) + "%"
			q = q.Where(`LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ? OR LOWER("Category".name) LIKE ?`,
				pat, pat, pat)
		}
	}

	if f.MinPrice != nil {
		q = q.Where("products.price >= ?", f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("products.price <= ?", f.MaxPrice)
	}

	if c := strings.TrimSpace(f.Category); c != "" {
		if pg {
			q = q.Where(`"Category".name ILIKE ?`, "%"+c+"%")
		} else {
			q = q.Where(`LOWER("Category".name) LIKE ?`, "%"+strings.ToLower(c)+"%")
		}
	}
	if b := strings.TrimSpace(f.Business); b != "" {
		if pg {
			q = q.Where(`"Business".name ILIKE ?`, "%"+b+"%")
		} else {
			q = q.Where(`LOWER("Business".name) LIKE ?`, "%"+strings.ToLower(b)+"%")
		}
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "products.created_at"
	}
	dir := "DESC"
	if f.IsAsc {
		dir = "ASC"
	}
	return q.Order(col + " " + dir)
}
