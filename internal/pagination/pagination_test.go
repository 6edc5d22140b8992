package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/internal/testdb"
)

func TestPaginateEmptySet(t *testing.T) {
	db := testdb.Open(t)

	page, err := Paginate[domain.Product](db.Model(&domain.Product{}), 1, 10, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.TotalPages)
	require.EqualValues(t, 0, page.Size)
	require.Equal(t, 1, page.Current)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
	require.Empty(t, page.Results)
}

func TestPaginateEmptySetOutOfRangePage(t *testing.T) {
	db := testdb.Open(t)

	// no rows at all: any requested page resolves to page 1
	page, err := Paginate[domain.Product](db.Model(&domain.Product{}), 999, 10, 10)
	require.NoError(t, err)
	require.EqualValues(t, 0, page.TotalPages)
	require.Equal(t, 1, page.Current)
	require.False(t, page.HasNext)
	require.False(t, page.HasPrev)
	require.Empty(t, page.Results)
}

func TestPaginateClampsOutOfRangePage(t *testing.T) {
	db := testdb.Open(t)
	user := testdb.SeedUser(t, db, "seller@example.com")
	business := testdb.SeedBusiness(t, db, user.ID, "acme")
	category := testdb.SeedCategory(t, db, "books")
	for i := 0; i < 25; i++ {
		testdb.SeedProduct(t, db, business.ID, category.ID, fmt.Sprintf("product-%02d", i), "9.99")
	}

	page, err := Paginate[domain.Product](db.Model(&domain.Product{}).Order("name ASC"), 999, 10, 10)
	require.NoError(t, err)
	require.EqualValues(t, 3, page.TotalPages)
	require.EqualValues(t, 25, page.Size)
	require.Equal(t, 3, page.Current)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrev)
	require.Len(t, page.Results, 5)
	require.Equal(t, "product-20", page.Results[0].Name)
}

func TestPaginateDefaults(t *testing.T) {
	db := testdb.Open(t)
	user := testdb.SeedUser(t, db, "seller@example.com")
	business := testdb.SeedBusiness(t, db, user.ID, "acme")
	category := testdb.SeedCategory(t, db, "books")
	for i := 0; i < 12; i++ {
		testdb.SeedProduct(t, db, business.ID, category.ID, fmt.Sprintf("product-%02d", i), "9.99")
	}

	// page 0 resolves to page 1, pageSize 0 falls back to the default
	page, err := Paginate[domain.Product](db.Model(&domain.Product{}).Order("name ASC"), 0, 0, 10)
	require.NoError(t, err)
	require.Equal(t, 1, page.Current)
	require.Len(t, page.Results, 10)
	require.True(t, page.HasNext)
	require.False(t, page.HasPrev)
	require.EqualValues(t, 2, page.TotalPages)
}

func TestPaginateMiddlePage(t *testing.T) {
	db := testdb.Open(t)
	user := testdb.SeedUser(t, db, "seller@example.com")
	business := testdb.SeedBusiness(t, db, user.ID, "acme")
	category := testdb.SeedCategory(t, db, "books")
	for i := 0; i < 25; i++ {
		testdb.SeedProduct(t, db, business.ID, category.ID, fmt.Sprintf("product-%02d", i), "9.99")
	}

	page, err := Paginate[domain.Product](db.Model(&domain.Product{}).Order("name ASC"), 2, 10, 10)
	require.NoError(t, err)
	require.Equal(t, 2, page.Current)
	require.True(t, page.HasNext)
	require.True(t, page.HasPrev)
	require.Len(t, page.Results, 10)
	require.Equal(t, "product-10", page.Results[0].Name)
}
