package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	lines := make([]service.CheckoutLine, len(req.Items))
	for i, item := range req.Items {
		lines[i] = service.CheckoutLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	order, err := h.Svc.CreateOrder(ctx, actor, req.ShippingAddress, lines)
	if err != nil {
		l.Warn("create_order_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.Svc.GetOrder(ctx, actor, id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	offset, limit, page := pagination(c)
	total, orders, err := h.Svc.ListBuyerOrders(ctx, actor, c.QueryParam("status"), c.QueryParam("search"), offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": orders,
		"meta": listMeta(page, limit, total, offset),
	})
}

func (h *OrderHTTP) UpdateOrderStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	order, err := h.Svc.UpdateOrderStatus(ctx, actor, id, req.Status)
	if err != nil {
		l.Warn("update_order_status_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) SellerOrders(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	offset, limit, page := pagination(c)
	total, orders, err := h.Svc.ListSellerOrders(ctx, actor, c.QueryParam("status"), offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": orders,
		"meta": listMeta(page, limit, total, offset),
	})
}

func (h *OrderHTTP) SellerItems(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	offset, limit, page := pagination(c)
	total, items, err := h.Svc.ListSellerItems(ctx, actor, c.QueryParam("status"), offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": listMeta(page, limit, total, offset),
	})
}

func (h *OrderHTTP) UpdateItemStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_item_status")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	item, err := h.Svc.UpdateOrderItemStatus(ctx, actor, id, req.Status)
	if err != nil {
		l.Warn("update_item_status_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *OrderHTTP) BuyerStats(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.Svc.BuyerStats(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *OrderHTTP) SellerStats(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.Svc.SellerStats(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *OrderHTTP) AdminListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var buyerID *uint
	if v := c.QueryParam("buyer"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			b := uint(id)
			buyerID = &b
		}
	}

	offset, limit, page := pagination(c)
	total, orders, err := h.Svc.ListAllOrders(ctx, actor, c.QueryParam("status"), buyerID, offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": orders,
		"meta": listMeta(page, limit, total, offset),
	})
}
