package shopapi

import (
	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerCheckoutRoutes() {
	webserver.ApiPOST("/checkout", completePayment)
}

func completePayment(c echo.Context) error {
	ctx, err := requestCtx(c)
	if err != nil {
		return failError(c, err)
	}
	if err := checkoutSvc.CompletePayment(ctx); err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"status": true})
}
