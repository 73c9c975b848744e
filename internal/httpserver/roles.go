package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
)

type RoleHTTP struct {
	Svc        *service.RoleService
	Privileges *service.PrivilegeService
}

func (h *RoleHTTP) CreateRole(c echo.Context) error {
	l := handlerLogger(c, "role.create")

	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_role_error", "invalid body", err)
	}
	role, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(l, "create_role_error", err)
	}
	return c.JSON(http.StatusCreated, transport.OK(transport.RoleFromModel(*role)))
}

func (h *RoleHTTP) ListRoles(c echo.Context) error {
	l := handlerLogger(c, "role.list")

	roles, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return fail(l, "list_roles_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(roles, transport.RoleFromModel)))
}

func (h *RoleHTTP) GetRole(c echo.Context) error {
	l := handlerLogger(c, "role.get")

	id, err := pathID(c, l, "get_role_error")
	if err != nil {
		return err
	}
	role, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(l, "get_role_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.RoleFromModel(*role)))
}

func (h *RoleHTTP) UpdateRole(c echo.Context) error {
	l := handlerLogger(c, "role.update")

	id, err := pathID(c, l, "update_role_error")
	if err != nil {
		return err
	}
	var req transport.RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_role_error", "invalid body", err)
	}
	role, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(l, "update_role_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.RoleFromModel(*role)))
}

func (h *RoleHTTP) DeleteRole(c echo.Context) error {
	l := handlerLogger(c, "role.delete")

	id, err := pathID(c, l, "delete_role_error")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return fail(l, "delete_role_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(true))
}

func (h *RoleHTTP) ListRolePrivileges(c echo.Context) error {
	l := handlerLogger(c, "role.privileges")

	id, err := pathID(c, l, "list_role_privileges_error")
	if err != nil {
		return err
	}
	privileges, err := h.Privileges.ListByRole(c.Request().Context(), id)
	if err != nil {
		return fail(l, "list_role_privileges_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(privileges, transport.PrivilegeFromModel)))
}
