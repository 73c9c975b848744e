package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(c echo.Context) (string, bool) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func Username(c echo.Context) string {
	s, _ := c.Get(CtxUsername).(string)
	return s
}

func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}
