package shopapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openshelf/openshelf/internal/media"
	"github.com/openshelf/openshelf/internal/webserver"
)

func registerMediaRoutes() {
	webserver.ApiPOST("/media", uploadImage)
}

// uploadImage stores a blob and returns its reference plus display URL.
// Products only ever keep the reference.
func uploadImage(c echo.Context) error {
	if _, err := requestCtx(c); err != nil {
		return failError(c, err)
	}
	if mediaStore == nil {
		return fail(c, http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media store is not configured", nil)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "An image file is required", nil)
	}
	src, err := file.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to read image file", nil)
	}
	defer src.Close()

	ref, err := mediaStore.Save(c.Request().Context(), file.Filename, src)
	if err != nil {
		return failError(c, err)
	}
	return ok(c, map[string]interface{}{
		"ref": ref,
		"url": media.URLFor(appctx.Config().Shop.MediaURL, ref),
	})
}
