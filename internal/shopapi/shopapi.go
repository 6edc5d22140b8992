package shopapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/openshelf/openshelf/internal/app"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/catalog"
	"github.com/openshelf/openshelf/internal/domain"
	"github.com/openshelf/openshelf/internal/media"
	"github.com/openshelf/openshelf/internal/shopping"
	"github.com/openshelf/openshelf/internal/users"
	"github.com/openshelf/openshelf/internal/webserver"
)

var (
	appctx      *app.Application
	productSvc  *catalog.ProductService
	businessSvc *catalog.BusinessService
	categorySvc *catalog.CategoryService
	cartSvc     *shopping.CartService
	wishSvc     *shopping.WishService
	checkoutSvc *shopping.CheckoutService
	userSvc     *users.Service
	mediaStore  media.Store
)

// Init builds the services over the application's database handle and
// registers every route.
func Init(a *app.Application) {
	appctx = a
	db := a.DB()

	productSvc = catalog.NewProductService(db)
	businessSvc = catalog.NewBusinessService(db)
	categorySvc = catalog.NewCategoryService(db)
	cartSvc = shopping.NewCartService(db)
	wishSvc = shopping.NewWishService(db)
	checkoutSvc = shopping.NewCheckoutService(db)
	userSvc = users.NewService(db, auth.NewTokenManager(a.Config().Web.Secret))

	store, err := media.NewLocalStore(a.Config().System.Workdir)
	if err != nil {
		zap.L().Error("media store init failed", zap.Error(err))
	} else {
		mediaStore = store
	}

	registerAuthRoutes()
	registerCategoryRoutes()
	registerBusinessRoutes()
	registerProductRoutes()
	registerWishRoutes()
	registerCartRoutes()
	registerCheckoutRoutes()
	registerMediaRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"code": 0,
		"data": data,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"code":    code,
		"message": message,
		"detail":  detail,
	})
}

// failError maps the domain error taxonomy onto HTTP statuses. Untyped
// errors are treated as store failures and never leak details.
func failError(c echo.Context, err error) error {
	kind := domain.KindOf(err)
	status := http.StatusInternalServerError
	message := err.Error()
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindConflict:
		status = http.StatusConflict
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindUnauthorized:
		status = http.StatusUnauthorized
	case domain.KindValidation:
		status = http.StatusBadRequest
	default:
		zap.L().Error("request failed", zap.String("path", c.Request().URL.Path), zap.Error(err))
		message = "internal error"
	}
	return fail(c, status, kind.String(), message, nil)
}

// parsePagination reads page/page_size tolerantly: non-numeric or missing
// values resolve to page 1, and page_size <= 0 defers to the configured
// default downstream.
func parsePagination(c echo.Context) (int, int) {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize := cast.ToInt(c.QueryParam("page_size"))
	if pageSize > 500 {
		pageSize = 500
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id := cast.ToInt64(c.Param(name))
	if id == 0 {
		return 0, domain.Validation("invalid %s parameter", name)
	}
	return id, nil
}

// requestCtx binds the verified identity into the request context so the
// services' access guard can resolve it.
func requestCtx(c echo.Context) (context.Context, error) {
	uid, err := webserver.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	return auth.WithIdentity(c.Request().Context(), uid), nil
}
