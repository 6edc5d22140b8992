package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerBusinessRoutes() {
	webserver.ApiGET("/business", getBusiness)
	webserver.ApiPOST("/business", createBusiness)
	webserver.ApiPUT("/business", updateBusiness)
	webserver.ApiDELETE("/business", deleteBusiness)
}

type businessPayload struct {
	Name string `json:"name"`
}

func getBusiness(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	business, err := businessSvc.Get(ctx)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, business)
}

func createBusiness(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload businessPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse business", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Business name is required", nil)
	}
	business, err := businessSvc.Create(ctx, payload.Name)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, business)
}

func updateBusiness(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload businessPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse business", nil)
	}
	business, err := businessSvc.Update(ctx, payload.Name)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, business)
}

func deleteBusiness(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	if err := businessSvc.Delete(ctx); err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"status": true})
}
