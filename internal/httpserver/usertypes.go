package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type UserTypeHTTP struct {
	Svc *service.UserTypeService
}

func (h *UserTypeHTTP) ListUserTypes(c echo.Context) error {
	l := handlerLogger(c, "user_type.list")

	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return fail(l, "list_user_types_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(items, transport.UserTypeFromModel)))
}
