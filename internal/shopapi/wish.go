package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerWishRoutes() {
	webserver.ApiGET("/wish", listWish)
	webserver.ApiPOST("/wish/toggle", toggleWish)
}

type wishPayload struct {
	ProductID int64 `json:"product_id"`
	CheckOnly bool  `json:"check_only"`
}

func listWish(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	products, err := wishSvc.List(ctx)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, products)
}

func toggleWish(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload wishPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse wish request", nil)
	}
	inWish, err := wishSvc.Toggle(ctx, payload.ProductID, payload.CheckOnly)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"in_wish": inWish})
}
