package webserver

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/openshelf/openshelf/internal/app"
	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/domain"
)

// WebServer hosts the query/mutation surface. Routes register through the
// package helpers: Pub* endpoints are open, Api* endpoints sit behind the
// JWT middleware.
type WebServer struct {
	root *echo.Echo
	pub  *echo.Group
	api  *echo.Group
	app  *app.Application
}

var server *WebServer

func Init(appctx *app.Application) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJsoniterSerializer()
	e.Use(middleware.Recover())
	e.Use(accessLogMiddleware())

	jwtConfig := echojwt.Config{
		SigningKey: []byte(appctx.Config().Web.Secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}

	server = &WebServer{
		root: e,
		pub:  e.Group("/api/v1"),
		api:  e.Group("/api/v1", echojwt.WithConfig(jwtConfig)),
		app:  appctx,
	}
	return server
}

func Listen() error {
	cfg := server.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return server.root.Start(addr)
}

func Shutdown(ctx context.Context) error {
	return server.root.Shutdown(ctx)
}

func PubGET(path string, h echo.HandlerFunc)  { server.pub.GET(path, h) }
func PubPOST(path string, h echo.HandlerFunc) { server.pub.POST(path, h) }

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

// CurrentUserID extracts the authenticated user from the JWT the
// middleware verified. Refresh tokens are not valid on API routes.
func CurrentUserID(c echo.Context) (int64, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, domain.Unauthorized("authentication required")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok || claims.Type != auth.TokenTypeAccess || claims.UserID == 0 {
		return 0, domain.Unauthorized("invalid token or has expired")
	}
	return claims.UserID, nil
}

func accessLogMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("elapsed", time.Since(start)),
			)
			return err
		}
	}
}
