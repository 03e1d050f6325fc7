package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/transport"
	"github.com/vendora/marketplace/pkg/logging"
)

type PaymentHTTP struct {
	Svc *service.PaymentService
}

func (h *PaymentHTTP) CreatePayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.create")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_payment_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	payment, err := h.Svc.CreatePayment(ctx, actor, req.OrderID, req.Amount, req.PaymentMethod, req.ProviderRef)
	if err != nil {
		l.Warn("create_payment_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

func (h *PaymentHTTP) ProcessPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.process")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.Svc.ProcessPayment(ctx, actor, id)
	if err != nil {
		l.Warn("process_payment_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHTTP) RefundPayment(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "payment.refund")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.Svc.RefundPayment(ctx, actor, id)
	if err != nil {
		l.Warn("refund_payment_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHTTP) UpdateProviderRef(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.UpdateProviderRefRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	payment, err := h.Svc.UpdateProviderRef(ctx, actor, id, req.ProviderRef)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHTTP) GetPayment(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.Svc.GetPayment(ctx, actor, id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHTTP) PaymentByOrder(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	payment, err := h.Svc.GetPaymentByOrder(ctx, actor, id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, payment)
}

func (h *PaymentHTTP) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	f := repo.PaymentFilter{
		Status: c.QueryParam("status"),
		Method: c.QueryParam("method"),
	}
	if v := c.QueryParam("order_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			o := uint(id)
			f.OrderID = &o
		}
	}

	offset, limit, page := pagination(c)
	total, payments, err := h.Svc.ListPayments(ctx, actor, f, offset, limit)
	if err != nil {
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": payments,
		"meta": listMeta(page, limit, total, offset),
	})
}

func (h *PaymentHTTP) Stats(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	stats, err := h.Svc.Stats(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
