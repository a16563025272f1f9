package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUser extracts the identity injected by the Auth middleware. A missing
// user_id means the middleware did not run (or the token carried no
// identity); reject before any store operation sees the request.
func ctxUser(c echo.Context) (userID string, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
