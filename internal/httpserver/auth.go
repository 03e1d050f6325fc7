package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		l.Warn("register_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	res, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		l.Warn("login_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	user, profile, err := h.Svc.GetProfile(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}

	resp := echo.Map{"user": user}
	if profile != nil {
		resp["seller_profile"] = profile
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	user, err := h.Svc.UpdateProfile(ctx, actor, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) ApproveSeller(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.Svc.ApproveSeller(ctx, actor, userID)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}
