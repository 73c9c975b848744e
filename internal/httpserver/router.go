package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Skotchmaster/college_admin/internal/db"
	authmw "github.com/Skotchmaster/college_admin/internal/middleware/auth"
	loggingmw "github.com/Skotchmaster/college_admin/internal/middleware/logging"
	"github.com/Skotchmaster/college_admin/internal/tokens"
)

type Deps struct {
	DB         *gorm.DB
	Issuer     *tokens.Issuer
	Auth       *AuthHTTP
	Users      *UserHTTP
	Roles      *RoleHTTP
	Privileges *PrivilegeHTTP
	Students   *StudentHTTP
	UserTypes  *UserTypeHTTP
}

// New builds an echo instance with the shared middleware stack.
func New(logger *slog.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	return e
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", d.ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/login", d.Auth.Login)

	authed := api.Group("", authmw.RequireAuth(d.Issuer))
	admin := authmw.AdminOnly()

	users := authed.Group("/users", admin)
	users.POST("", d.Users.CreateUser)
	users.GET("", d.Users.ListUsers)
	users.GET("/by-name/:name", d.Users.GetUserByName)
	users.GET("/:id", d.Users.GetUser)
	users.PUT("/:id", d.Users.UpdateUser)
	users.DELETE("/:id", d.Users.DeleteUser)

	roles := authed.Group("/roles")
	roles.GET("", d.Roles.ListRoles)
	roles.GET("/:id", d.Roles.GetRole)
	roles.GET("/:id/privileges", d.Roles.ListRolePrivileges)
	roles.POST("", d.Roles.CreateRole, admin)
	roles.PUT("/:id", d.Roles.UpdateRole, admin)
	roles.DELETE("/:id", d.Roles.DeleteRole, admin)

	privileges := authed.Group("/privileges")
	privileges.GET("", d.Privileges.ListPrivileges)
	privileges.GET("/by-name/:name", d.Privileges.GetPrivilegeByName)
	privileges.GET("/:id", d.Privileges.GetPrivilege)
	privileges.POST("", d.Privileges.CreatePrivilege, admin)
	privileges.PUT("/:id", d.Privileges.UpdatePrivilege, admin)
	privileges.DELETE("/:id", d.Privileges.DeletePrivilege, admin)

	students := authed.Group("/students")
	students.GET("", d.Students.ListStudents)
	students.GET("/search", d.Students.SearchStudents)
	students.GET("/by-name/:name", d.Students.GetStudentByName)
	students.GET("/:id", d.Students.GetStudent)
	students.POST("", d.Students.CreateStudent, admin)
	students.PUT("/:id", d.Students.UpdateStudent, admin)
	students.PATCH("/:id", d.Students.PatchStudent, admin)
	students.DELETE("/:id", d.Students.DeleteStudent, admin)

	authed.GET("/user-types", d.UserTypes.ListUserTypes)
}

func (d *Deps) ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx, d.DB); err != nil {
		handlerLogger(c, "health.ready").Error("ready_check_failed", "status", 503, "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.NoContent(http.StatusOK)
}
