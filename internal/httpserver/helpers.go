package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/util"
)

func handlerLogger(c echo.Context, name string) *slog.Logger {
	return logging.FromContext(c.Request().Context()).With("handler", name)
}

func pathID(c echo.Context, l *slog.Logger, event string) (uint, error) {
	id, ok := util.ParseUint(c.Param("id"))
	if !ok {
		return 0, badRequest(l, event, "id must be a positive integer", nil)
	}
	return id, nil
}
