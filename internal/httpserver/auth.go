package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

// Login answers every credential failure with the same 401 body.
func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}
	if err := req.Validate(); err != nil {
		return fail(l, "login_error", err)
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(l, "login_failed", err)
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, transport.OK(transport.LoginResponse{
		Username:     res.Username,
		Token:        res.Token,
		ExpiresAtUTC: res.ExpiresAt.UTC(),
	}))
}
