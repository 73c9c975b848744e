package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type PrivilegeHTTP struct {
	Svc *service.PrivilegeService
}

func (h *PrivilegeHTTP) CreatePrivilege(c echo.Context) error {
	l := handlerLogger(c, "privilege.create")

	var req transport.PrivilegeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_privilege_error", "invalid body", err)
	}
	p, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(l, "create_privilege_error", err)
	}
	return c.JSON(http.StatusCreated, transport.OK(transport.PrivilegeFromModel(*p)))
}

func (h *PrivilegeHTTP) ListPrivileges(c echo.Context) error {
	l := handlerLogger(c, "privilege.list")

	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return fail(l, "list_privileges_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(items, transport.PrivilegeFromModel)))
}

func (h *PrivilegeHTTP) GetPrivilege(c echo.Context) error {
	l := handlerLogger(c, "privilege.get")

	id, err := pathID(c, l, "get_privilege_error")
	if err != nil {
		return err
	}
	p, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(l, "get_privilege_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.PrivilegeFromModel(*p)))
}

func (h *PrivilegeHTTP) GetPrivilegeByName(c echo.Context) error {
	l := handlerLogger(c, "privilege.get_by_name")

	p, err := h.Svc.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(l, "get_privilege_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.PrivilegeFromModel(*p)))
}

func (h *PrivilegeHTTP) UpdatePrivilege(c echo.Context) error {
	l := handlerLogger(c, "privilege.update")

	id, err := pathID(c, l, "update_privilege_error")
	if err != nil {
		return err
	}
	var req transport.PrivilegeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_privilege_error", "invalid body", err)
	}
	p, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(l, "update_privilege_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.PrivilegeFromModel(*p)))
}

func (h *PrivilegeHTTP) DeletePrivilege(c echo.Context) error {
	l := handlerLogger(c, "privilege.delete")

	id, err := pathID(c, l, "delete_privilege_error")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return fail(l, "delete_privilege_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(true))
}
