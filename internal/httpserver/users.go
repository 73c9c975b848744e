package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type UserHTTP struct {
	Svc *service.UserService
}

func (h *UserHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "user.create")

	var req transport.UserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_user_error", "invalid body", err)
	}
	user, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return fail(l, "create_user_error", err)
	}
	return c.JSON(http.StatusCreated, transport.OK(transport.UserFromModel(*user)))
}

func (h *UserHTTP) ListUsers(c echo.Context) error {
	l := handlerLogger(c, "user.list")

	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return fail(l, "list_users_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(users, transport.UserFromModel)))
}

func (h *UserHTTP) GetUser(c echo.Context) error {
	l := handlerLogger(c, "user.get")

	id, err := pathID(c, l, "get_user_error")
	if err != nil {
		return err
	}
	user, err := h.Svc.GetUserByID(c.Request().Context(), id)
	if err != nil {
		return fail(l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.UserFromModel(*user)))
}

func (h *UserHTTP) GetUserByName(c echo.Context) error {
	l := handlerLogger(c, "user.get_by_name")

	user, err := h.Svc.GetUserByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(l, "get_user_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.UserFromModel(*user)))
}

func (h *UserHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := handlerLogger(c, "user.update")

	id, err := pathID(c, l, "update_user_error")
	if err != nil {
		return err
	}
	var req transport.UserRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_user_error", "invalid body", err)
	}
	user, err := h.Svc.UpdateUser(ctx, id, req)
	if err != nil {
		return fail(l, "update_user_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.UserFromModel(*user)))
}

func (h *UserHTTP) DeleteUser(c echo.Context) error {
	l := handlerLogger(c, "user.delete")

	id, err := pathID(c, l, "delete_user_error")
	if err != nil {
		return err
	}
	if err := h.Svc.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(l, "delete_user_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(true))
}
