package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	cart, items, err := h.Svc.GetCart(ctx, actor)
	if err != nil {
		l.Error("get_cart_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"cart": cart, "items": items})
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}

	item, err := h.Svc.AddToCart(ctx, actor, req.ProductID, req.Quantity)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *CartHTTP) SetItemQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.SetQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Svc.SetItemQuantity(ctx, actor, itemID, req.Quantity)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	itemID, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveItem(ctx, actor, itemID); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	if err := h.Svc.ClearCart(ctx, actor); err != nil {
		l.Error("clear_cart_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "cart cleared"})
}

func (h *CartHTTP) Summary(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	summary, err := h.Svc.Summary(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}
