package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/internal/testdb"
	"github.com/openshelf/openshelf/pkg/common"
)

type productFixture struct {
	db       *gorm.DB
	svc      *ProductService
	seller   *domain.User
	business *domain.Business
	category *domain.Category
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	db := testdb.Open(t)
	return &productFixture{
		db:       db,
		svc:      NewProductService(db),
		seller:   testdb.SeedUser(t, db, "seller@example.com"),
		business: nil,
		category: testdb.SeedCategory(t, db, "general"),
	}
}

func (f *productFixture) withBusiness(t *testing.T) *productFixture {
	t.Helper()
	f.business = testdb.SeedBusiness(t, f.db, f.seller.ID, "acme")
	return f
}

func TestProductCreateRequiresBusiness(t *testing.T) {
	f := newProductFixture(t)

	_, err := f.svc.Create(testdb.Ctx(f.seller.ID), CreateProductInput{
		CategoryID: f.category.ID,
		Name:       "widget",
		Price:      decimal.RequireFromString("5.00"),
		TotalCount: 3,
	})
	require.True(t, domain.IsKind(err, domain.KindForbidden))
}

func TestProductCreateAndDuplicateName(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	ctx := testdb.Ctx(f.seller.ID)

	product, err := f.svc.Create(ctx, CreateProductInput{
		CategoryID:  f.category.ID,
		Name:        "widget",
		Price:       decimal.RequireFromString("5.00"),
		TotalCount:  3,
		Description: "a widget",
		Images: []ProductImageInput{
			{Ref: "img-1", IsCover: true},
			{Ref: "img-2"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, f.business.ID, product.BusinessID)
	require.EqualValues(t, 3, product.TotalAvailable)
	require.Len(t, product.Images, 2)

	_, err = f.svc.Create(ctx, CreateProductInput{
		CategoryID: f.category.ID,
		Name:       "widget",
		Price:      decimal.RequireFromString("7.00"),
	})
	require.True(t, domain.IsKind(err, domain.KindConflict))

	// same name under another category is allowed
	other := testdb.SeedCategory(t, f.db, "tools")
	_, err = f.svc.Create(ctx, CreateProductInput{
		CategoryID: other.ID,
		Name:       "widget",
		Price:      decimal.RequireFromString("7.00"),
	})
	require.NoError(t, err)
}

func TestProductRecreateAfterDelete(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	ctx := testdb.Ctx(f.seller.ID)

	input := CreateProductInput{
		CategoryID: f.category.ID,
		Name:       "widget",
		Price:      decimal.RequireFromString("5.00"),
		TotalCount: 3,
	}
	product, err := f.svc.Create(ctx, input)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, product.ID))

	// a soft-deleted product releases its name
	recreated, err := f.svc.Create(ctx, input)
	require.NoError(t, err)
	require.NotEqual(t, product.ID, recreated.ID)
}

func TestProductCreateUnknownCategory(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)

	_, err := f.svc.Create(testdb.Ctx(f.seller.ID), CreateProductInput{
		CategoryID: 424242,
		Name:       "widget",
		Price:      decimal.RequireFromString("5.00"),
	})
	require.True(t, domain.IsKind(err, domain.KindNotFound))
}

func TestProductUpdateByNonOwnerForbidden(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	product := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")
	stranger := testdb.SeedUser(t, f.db, "stranger@example.com")

	name := "hijacked"
	_, err := f.svc.Update(testdb.Ctx(stranger.ID), product.ID, UpdateProductInput{Name: &name})
	require.True(t, domain.IsKind(err, domain.KindForbidden))

	var unchanged domain.Product
	require.NoError(t, f.db.First(&unchanged, product.ID).Error)
	require.Equal(t, "widget", unchanged.Name)
}

func TestProductSparseUpdate(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	product := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")
	ctx := testdb.Ctx(f.seller.ID)

	price := decimal.RequireFromString("6.50")
	updated, err := f.svc.Update(ctx, product.ID, UpdateProductInput{Price: &price})
	require.NoError(t, err)
	require.True(t, updated.Price.Equal(price))
	require.Equal(t, "widget", updated.Name)

	avail := uint(99)
	_, err = f.svc.Update(ctx, product.ID, UpdateProductInput{TotalAvailable: &avail})
	require.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestProductUpdateDuplicateName(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")
	gizmo := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "gizmo", "5.00")

	name := "widget"
	_, err := f.svc.Update(testdb.Ctx(f.seller.ID), gizmo.ID, UpdateProductInput{Name: &name})
	require.True(t, domain.IsKind(err, domain.KindConflict))

	// renaming to its own name is not a conflict
	same := "gizmo"
	_, err = f.svc.Update(testdb.Ctx(f.seller.ID), gizmo.ID, UpdateProductInput{Name: &same})
	require.NoError(t, err)
}

func TestProductDeleteCascades(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	product := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")
	buyer := testdb.SeedUser(t, f.db, "buyer@example.com")

	require.NoError(t, f.db.Create(&domain.ProductImage{ID: common.UUIDint64(), ProductID: product.ID, Ref: "img"}).Error)
	require.NoError(t, f.db.Create(&domain.Cart{ID: common.UUIDint64(), UserID: buyer.ID, ProductID: product.ID, Quantity: 1}).Error)

	require.NoError(t, f.svc.Delete(testdb.Ctx(f.seller.ID), product.ID))

	var count int64
	require.NoError(t, f.db.Model(&domain.Product{}).Where("id = ?", product.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
	require.NoError(t, f.db.Model(&domain.ProductImage{}).Where("product_id = ?", product.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
	require.NoError(t, f.db.Model(&domain.Cart{}).Where("product_id = ?", product.ID).Count(&count).Error)
	require.EqualValues(t, 0, count)
}

func TestProductCoverImageIsExclusive(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	product := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")

	first := domain.ProductImage{ID: common.UUIDint64(), ProductID: product.ID, Ref: "img-1", IsCover: true}
	second := domain.ProductImage{ID: common.UUIDint64(), ProductID: product.ID, Ref: "img-2"}
	require.NoError(t, f.db.Create(&first).Error)
	require.NoError(t, f.db.Create(&second).Error)

	cover := true
	updated, err := f.svc.UpdateImage(testdb.Ctx(f.seller.ID), second.ID, UpdateImageInput{IsCover: &cover})
	require.NoError(t, err)
	require.True(t, updated.IsCover)

	var covers []domain.ProductImage
	require.NoError(t, f.db.Where("product_id = ? AND is_cover = ?", product.ID, true).Find(&covers).Error)
	require.Len(t, covers, 1)
	require.Equal(t, second.ID, covers[0].ID)
}

func TestProductCommentRules(t *testing.T) {
	f := newProductFixture(t).withBusiness(t)
	product := testdb.SeedProduct(t, f.db, f.business.ID, f.category.ID, "widget", "5.00")
	buyer := testdb.SeedUser(t, f.db, "buyer@example.com")

	_, err := f.svc.CreateComment(testdb.Ctx(f.seller.ID), product.ID, "great stuff", 5)
	require.True(t, domain.IsKind(err, domain.KindForbidden))

	comment, err := f.svc.CreateComment(testdb.Ctx(buyer.ID), product.ID, "does the job", 0)
	require.NoError(t, err)
	require.Equal(t, 3, comment.Rate)

	_, err = f.svc.CreateComment(testdb.Ctx(buyer.ID), product.ID, "again", 4)
	require.True(t, domain.IsKind(err, domain.KindConflict))
}
