package shopapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/webserver"
)

func registerAuthRoutes() {
	webserver.PubPOST("/auth/register", registerUser)
	webserver.PubPOST("/auth/login", loginUser)
	webserver.PubPOST("/auth/refresh", refreshToken)
	webserver.ApiGET("/auth/me", currentUser)
}

type registerPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshPayload struct {
	Refresh string `json:"refresh"`
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}
	user, err := userSvc.Register(c.Request().Context(), payload.Email, payload.Password, payload.Name)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, user)
}

func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}
	user, access, refresh, err := userSvc.Authenticate(c.Request().Context(), payload.Email, payload.Password)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

func refreshToken(c echo.Context) error {
	var payload refreshPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse refresh request", nil)
	}
	if strings.TrimSpace(payload.Refresh) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_TOKEN", "Refresh token is required", nil)
	}
	access, err := userSvc.RefreshAccess(c.Request().Context(), payload.Refresh)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{"access": access})
}

func currentUser(c echo.Context) error {
	uid, err := webserver.CurrentUserID(c)
	if err != nil {
		return failError(c, err)
	}
	user, err := userSvc.Get(c.Request().Context(), uid)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, user)
}
