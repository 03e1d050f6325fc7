package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vendora/marketplace/internal/service"
	"github.com/vendora/marketplace/internal/transport"
)

type WishlistHTTP struct {
	Svc *service.WishlistService
}

func (h *WishlistHTTP) GetWishlist(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	wishlist, products, err := h.Svc.GetWishlist(ctx, actor)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"wishlist": wishlist, "products": products})
}

func (h *WishlistHTTP) AddProduct(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.WishlistAddRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ProductID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "product_id required"})
	}

	if err := h.Svc.AddProduct(ctx, actor, req.ProductID); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "product added to wishlist"})
}

func (h *WishlistHTTP) RemoveProduct(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "product_id")
	if err != nil {
		return err
	}

	if err := h.Svc.RemoveProduct(ctx, actor, productID); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product removed from wishlist"})
}

func (h *WishlistHTTP) MoveToCart(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	productID, err := idParam(c, "product_id")
	if err != nil {
		return err
	}

	if err := h.Svc.MoveToCart(ctx, actor, productID); err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "product moved to cart"})
}
