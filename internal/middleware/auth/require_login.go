package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/college_admin/internal/logging"
	"github.com/Skotchmaster/college_admin/internal/metrics"
	"github.com/Skotchmaster/college_admin/internal/tokens"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// subject and role claims on the context.
func RequireAuth(issuer *tokens.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := logging.FromContext(c.Request().Context()).With("mw", "auth.require_auth")

			raw, ok := bearerToken(c)
			if !ok {
				l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			if !issuer.Configured() {
				l.Error("auth_failed", "status", 500, "reason", "token issuer is not configured")
				return echo.NewHTTPError(http.StatusInternalServerError, "server configuration error")
			}

			claims, err := issuer.Validate(raw)
			if err != nil {
				metrics.TokenRejected()
				l.Warn("auth_failed", "status", 401, "reason", "invalid token", "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxRole, claims.Role)
			return next(c)
		}
	}
}
