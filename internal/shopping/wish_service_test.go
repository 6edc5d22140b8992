package shopping

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/internal/testdb"
)

func TestWishCheckOnlyNeverMutates(t *testing.T) {
	db := testdb.Open(t)
	svc := NewWishService(db)
	buyer, product := seedShop(t, db)
	ctx := testdb.Ctx(buyer.ID)

	in, err := svc.Toggle(ctx, product.ID, true)
	require.NoError(t, err)
	require.False(t, in)

	// checking must not create the container either
	var count int64
	require.NoError(t, db.Model(&domain.Wish{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)

	in, err = svc.Toggle(ctx, product.ID, true)
	require.NoError(t, err)
	require.False(t, in)
}

func TestWishToggleAddRemove(t *testing.T) {
	db := testdb.Open(t)
	svc := NewWishService(db)
	buyer, product := seedShop(t, db)
	ctx := testdb.Ctx(buyer.ID)

	in, err := svc.Toggle(ctx, product.ID, false)
	require.NoError(t, err)
	require.True(t, in)

	// container is created lazily on the first real toggle
	var count int64
	require.NoError(t, db.Model(&domain.Wish{}).Where("user_id = ?", buyer.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)

	in, err = svc.Toggle(ctx, product.ID, true)
	require.NoError(t, err)
	require.True(t, in)

	in, err = svc.Toggle(ctx, product.ID, false)
	require.NoError(t, err)
	require.False(t, in)

	require.NoError(t, db.Model(&domain.WishItem{}).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestWishToggleUnknownProduct(t *testing.T) {
	db := testdb.Open(t)
	svc := NewWishService(db)
	buyer, _ := seedShop(t, db)

	_, err := svc.Toggle(testdb.Ctx(buyer.ID), 424242, false)
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestWishToggleStoreFailureIsNotNotFound(t *testing.T) {
	db := testdb.Open(t)
	svc := NewWishService(db)
	buyer, product := seedShop(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Toggle(testdb.Ctx(buyer.ID), product.ID, false)
	require.Error(t, err)
	require.True(t, domain.IsKind(err, domain.KindInternal))
}

func TestWishList(t *testing.T) {
	db := testdb.Open(t)
	svc := NewWishService(db)
	buyer, product := seedShop(t, db)
	ctx := testdb.Ctx(buyer.ID)

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, products)

	_, err = svc.Toggle(ctx, product.ID, false)
	require.NoError(t, err)

	products, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, product.ID, products[0].ID)

	// lists are per user
	other := testdb.SeedUser(t, db, "other@example.com")
	products, err = svc.List(testdb.Ctx(other.ID))
	require.NoError(t, err)
	require.Empty(t, products)
}
