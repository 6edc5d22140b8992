// Package testdb opens throwaway in-memory databases for service tests.
// Production runs on postgres; the services and the query builder branch
// on the dialect where the SQL differs.
package testdb

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/pkg/common"
)

var seq int64

// Open returns a migrated, isolated in-memory database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", atomic.AddInt64(&seq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// Ctx returns a request context authenticated as the given user.
func Ctx(userID int64) context.Context {
	return auth.WithIdentity(context.Background(), userID)
}

func SeedUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{ID: common.UUIDint64(), Email: email, Name: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func SeedBusiness(t *testing.T, db *gorm.DB, userID int64, name string) *domain.Business {
	t.Helper()
	business := &domain.Business{ID: common.UUIDint64(), UserID: userID, Name: name}
	require.NoError(t, db.Create(business).Error)
	return business
}

func SeedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	category := &domain.Category{ID: common.UUIDint64(), Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func SeedProduct(t *testing.T, db *gorm.DB, businessID, categoryID int64, name, price string) *domain.Product {
	t.Helper()
	product := &domain.Product{
		ID:             common.UUIDint64(),
		BusinessID:     businessID,
		CategoryID:     categoryID,
		Name:           name,
		Price:          decimal.RequireFromString(price),
		TotalAvailable: 10,
		TotalCount:     10,
		Description:    "seeded product",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
