package pagination

import (
	"gorm.io/gorm"
)

// Page wraps one slice of an ordered result set with its metadata.
// Size is the total filtered item count, not the slice length.
type Page[T any] struct {
	TotalPages int64 `json:"total"`
	Size       int64 `json:"size"`
	Current    int   `json:"current"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
	Results    []T   `json:"results"`
}

// Paginate executes the still-lazy query and returns the requested page.
// Out-of-range input never errors: page < 1 resolves to the first page,
// page beyond the last resolves to the last (page 1 when the set is
// empty), pageSize <= 0 falls back to defaultSize. The count is taken
// from the filtered query itself.
func Paginate[T any](query *gorm.DB, page, pageSize, defaultSize int) (*Page[T], error) {
	if pageSize <= 0 {
		pageSize = defaultSize
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 1 {
		page = 1
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	if totalPages == 0 {
		page = 1
	} else if int64(page) > totalPages {
		page = int(totalPages)
	}

	results := make([]T, 0, pageSize)
	if total > 0 {
		err := query.Session(&gorm.Session{}).
			Offset((page - 1) * pageSize).
			Limit(pageSize).
			Find(&results).Error
		if err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		TotalPages: totalPages,
		Size:       total,
		Current:    page,
		HasNext:    int64(page) < totalPages,
		HasPrev:    page > 1,
		Results:    results,
	}, nil
}
