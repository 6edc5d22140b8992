package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerCategoryRoutes() {
	webserver.PubGET("/categories", listCategories)
	webserver.ApiPOST("/categories", createCategory)
}

func listCategories(c echo.Context) error {
	categories, err := categorySvc.List(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return failError(c, err)
	}
	return ok(c, categories)
}

func createCategory(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	var payload struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category", nil)
	}
	category, err := categorySvc.Create(ctx, payload.Name)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, category)
}
