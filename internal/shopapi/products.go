package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/internal/media"
	"github.com/openshelf/openshelf/internal/pagination"
	"github.com/openshelf/openshelf/internal/webserver"
)

func registerProductRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPUT("/products/images/:id", updateProductImage)
	webserver.ApiPOST("/products/:id/comments", createProductComment)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	filter := catalog.ProductFilter{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Business: c.QueryParam("business"),
		SortBy:   c.QueryParam("sort_by"),
		IsAsc:    cast.ToBool(c.QueryParam("is_asc")),
	}
	if v := c.QueryParam("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid min_price", nil)
		}
		filter.MinPrice = &d
	}
	if v := c.QueryParam("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid max_price", nil)
		}
		filter.MaxPrice = &d
	}

	query := productSvc.Query(c.Request().Context(), filter)
	result, err := pagination.Paginate[domain.Product](query, page, pageSize, appctx.Config().Shop.PageSize)
	if err != nil {
		return failError(c, err)
	}
	for i := range result.Results {
		formatProductMedia(&result.Results[i])
	}
	return ok(c, result)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	product, err := productSvc.Get(c.Request().Context(), id)
	if err != nil {
		return failError(c, err)
	}
	formatProductMedia(product)
	return ok(c, product)
}

func createProduct(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload catalog.CreateProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	product, err := productSvc.Create(ctx, payload)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, product)
}

func updateProduct(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	var payload catalog.UpdateProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", nil)
	}
	product, err := productSvc.Update(ctx, id, payload)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	if err := productSvc.Delete(ctx, id); err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}

func updateProductImage(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	var payload catalog.UpdateImageInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse image", nil)
	}
	image, err := productSvc.UpdateImage(ctx, id, payload)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, image)
}

type commentPayload struct {
	Comment string `json:"comment"`
	Rate    int    `json:"rate"`
}

func createProductComment(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	var payload commentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse comment", nil)
	}
	comment, err := productSvc.CreateComment(ctx, id, payload.Comment, payload.Rate)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, comment)
}

// formatProductMedia rewrites stored image references into display URLs.
func formatProductMedia(p *domain.Product) {
	base := appctx.Config().Shop.MediaURL
	for i := range p.Images {
		p.Images[i].Ref = media.URLFor(base, p.Images[i].Ref)
	}
}
