package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerCartRoutes() {
	webserver.ApiGET("/carts", listCarts)
	webserver.ApiPOST("/carts", createCart)
	webserver.ApiPUT("/carts/:id", updateCart)
	webserver.ApiDELETE("/carts/:id", deleteCart)
}

type cartPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func listCarts(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	carts, err := cartSvc.List(ctx)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, carts)
}

func createCart(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart", nil)
	}
	cart, err := cartSvc.Create(ctx, payload.ProductID, payload.Quantity)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, cart)
}

func updateCart(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	var payload cartPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart", nil)
	}
	cart, err := cartSvc.Update(ctx, id, payload.Quantity)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, cart)
}

func deleteCart(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return failError(c, err)
	}
	if err := cartSvc.Delete(ctx, id); err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
