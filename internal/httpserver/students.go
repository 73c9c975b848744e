package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/service"
	"github.com/Skotchmaster/college_admin/internal/transport"
	"github.com/Skotchmaster/college_admin/internal/util"
)

type StudentHTTP struct {
	Svc *service.StudentService
}

func (h *StudentHTTP) CreateStudent(c echo.Context) error {
	l := handlerLogger(c, "student.create")

	var req transport.StudentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_student_error", "invalid body", err)
	}
	st, err := h.Svc.Create(c.Request().Context(), req)
	if err != nil {
		return fail(l, "create_student_error", err)
	}
	return c.JSON(http.StatusCreated, transport.OK(transport.StudentFromModel(*st)))
}

func (h *StudentHTTP) ListStudents(c echo.Context) error {
	l := handlerLogger(c, "student.list")

	items, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return fail(l, "list_students_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.MapSlice(items, transport.StudentFromModel)))
}

func (h *StudentHTTP) GetStudent(c echo.Context) error {
	l := handlerLogger(c, "student.get")

	id, err := pathID(c, l, "get_student_error")
	if err != nil {
		return err
	}
	st, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return fail(l, "get_student_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.StudentFromModel(*st)))
}

func (h *StudentHTTP) GetStudentByName(c echo.Context) error {
	l := handlerLogger(c, "student.get_by_name")

	st, err := h.Svc.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return fail(l, "get_student_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.StudentFromModel(*st)))
}

func (h *StudentHTTP) SearchStudents(c echo.Context) error {
	l := handlerLogger(c, "student.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)

	res, err := h.Svc.Search(c.Request().Context(), c.QueryParam("q"), page, size)
	if err != nil {
		return fail(l, "search_students_error", err)
	}

	l.Info("search_students_success", "total", res.Total)
	items := transport.MapSlice(res.Items, transport.StudentFromModel)
	return c.JSON(http.StatusOK, transport.OK(transport.NewPage(items, res.Page, res.From, res.Size, res.Total)))
}

func (h *StudentHTTP) UpdateStudent(c echo.Context) error {
	l := handlerLogger(c, "student.update")

	id, err := pathID(c, l, "update_student_error")
	if err != nil {
		return err
	}
	var req transport.StudentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_student_error", "invalid body", err)
	}
	st, err := h.Svc.Update(c.Request().Context(), id, req)
	if err != nil {
		return fail(l, "update_student_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.StudentFromModel(*st)))
}

func (h *StudentHTTP) PatchStudent(c echo.Context) error {
	l := handlerLogger(c, "student.patch")

	id, err := pathID(c, l, "patch_student_error")
	if err != nil {
		return err
	}
	var patch transport.StudentPatch
	if err := c.Bind(&patch); err != nil {
		return badRequest(l, "patch_student_error", "invalid body", err)
	}
	st, err := h.Svc.Patch(c.Request().Context(), id, patch)
	if err != nil {
		return fail(l, "patch_student_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(transport.StudentFromModel(*st)))
}

func (h *StudentHTTP) DeleteStudent(c echo.Context) error {
	l := handlerLogger(c, "student.delete")

	id, err := pathID(c, l, "delete_student_error")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return fail(l, "delete_student_error", err)
	}
	return c.JSON(http.StatusOK, transport.OK(true))
}
