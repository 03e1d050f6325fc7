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

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func productFilterFromQuery(c echo.Context) repo.ProductFilter {
	f := repo.ProductFilter{Name: c.QueryParam("name")}

	if v := c.QueryParam("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := c.QueryParam("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			cid := uint(id)
			f.CategoryID = &cid
		}
	}
	if v := c.QueryParam("seller_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			sid := uint(id)
			f.SellerID = &sid
		}
	}
	if v := c.QueryParam("in_stock"); v != "" {
		inStock := v == "true" || v == "1"
		f.InStock = &inStock
	}

	// Public listing shows active products unless the caller asks otherwise.
	active := true
	if v := c.QueryParam("is_active"); v != "" {
		active = v == "true" || v == "1"
	}
	f.IsActive = &active

	return f
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()

	offset, limit, page := pagination(c)
	total, items, err := h.Svc.GetProducts(ctx, productFilterFromQuery(c), offset, limit)
	if err != nil {
		logging.FromContext(ctx).Error("get_products_error", "error", err)
		return httpError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"data": items,
		"meta": listMeta(page, limit, total, offset),
	})
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	product, err := h.Svc.CreateProduct(ctx, actor, req)
	if err != nil {
		l.Warn("create_product_error", "error", err)
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *CatalogHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	product, err := h.Svc.PatchProduct(ctx, actor, id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteProduct(ctx, actor, id); err != nil {
		return httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()

	offset, limit, _ := pagination(c)
	total, products, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"), offset, limit)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": products})
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	categories, err := h.Svc.GetCategories(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	category, err := h.Svc.CreateCategory(ctx, actor, req.Name, req.Description)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHTTP) AddVariant(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.CreateVariantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	variant, err := h.Svc.AddVariant(ctx, actor, id, req)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, variant)
}

func (h *CatalogHTTP) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req transport.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	review, err := h.Svc.AddReview(ctx, actor, id, req.Rating, req.Comment)
	if err != nil {
		return httpError(c, err)
	}
	return c.JSON(http.StatusCreated, review)
}
