package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/pkg/tokens"
)

const actorKey = "actor"

type AuthMiddleware struct {
	JWTSecret []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{JWTSecret: secret}
}

// RequireAuth verifies the bearer token once and stores the resulting
// actor in the request context. Handlers and services work from the actor,
// never from the raw token.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := tokens.AccessClaimsFromToken(tokenStr, m.JWTSecret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		c.Set(actorKey, authz.Actor{UserID: uint(userID), Role: claims.Role})
		return next(c)
	}
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != models.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	})
}

func ActorFrom(c echo.Context) (authz.Actor, bool) {
	actor, ok := c.Get(actorKey).(authz.Actor)
	return actor, ok
}
