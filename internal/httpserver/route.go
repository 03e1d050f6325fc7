package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/vendora/marketplace/internal/middleware"
	"github.com/vendora/marketplace/internal/service"
)

// Deps carries everything the HTTP layer needs wired in.
type Deps struct {
	Logger *slog.Logger
	DB     *gorm.DB

	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Wishlist *service.WishlistService
	Orders   *service.OrderService
	Payments *service.PaymentService

	JWTSecret []byte
}

// Register mounts all routes on the given echo instance.
func Register(e *echo.Echo, d Deps) {
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(d.Logger))

	authn := middleware.NewAuthMiddleware(d.JWTSecret)

	e.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/health/ready", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil || sqlDB.PingContext(c.Request().Context()) != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "unavailable"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")

	authHTTP := &AuthHTTP{Svc: d.Auth}
	auth := api.Group("/auth")
	auth.POST("/register", authHTTP.Register)
	auth.POST("/login", authHTTP.Login)
	auth.GET("/profile", authHTTP.GetProfile, authn.RequireAuth)
	auth.PATCH("/profile", authHTTP.UpdateProfile, authn.RequireAuth)
	auth.POST("/sellers/:id/approve", authHTTP.ApproveSeller, authn.RequireAdmin)

	catalogHTTP := &CatalogHTTP{Svc: d.Catalog}
	products := api.Group("/products")
	products.GET("", catalogHTTP.GetProducts)
	products.GET("/:id", catalogHTTP.GetProduct)
	products.POST("", catalogHTTP.CreateProduct, authn.RequireAuth)
	products.PATCH("/:id", catalogHTTP.PatchProduct, authn.RequireAuth)
	products.DELETE("/:id", catalogHTTP.DeleteProduct, authn.RequireAuth)
	products.POST("/:id/variants", catalogHTTP.AddVariant, authn.RequireAuth)
	products.POST("/:id/reviews", catalogHTTP.AddReview, authn.RequireAuth)

	api.GET("/search", catalogHTTP.Search)

	categories := api.Group("/categories")
	categories.GET("", catalogHTTP.GetCategories)
	categories.POST("", catalogHTTP.CreateCategory, authn.RequireAdmin)

	cartHTTP := &CartHTTP{Svc: d.Cart}
	cart := api.Group("/cart", authn.RequireAuth)
	cart.GET("", cartHTTP.GetCart)
	cart.GET("/summary", cartHTTP.Summary)
	cart.POST("/items", cartHTTP.AddToCart)
	cart.PUT("/items/:id", cartHTTP.SetItemQuantity)
	cart.DELETE("/items/:id", cartHTTP.RemoveItem)
	cart.DELETE("", cartHTTP.ClearCart)

	wishlistHTTP := &WishlistHTTP{Svc: d.Wishlist}
	wishlist := api.Group("/wishlist", authn.RequireAuth)
	wishlist.GET("", wishlistHTTP.GetWishlist)
	wishlist.POST("/items", wishlistHTTP.AddProduct)
	wishlist.DELETE("/items/:product_id", wishlistHTTP.RemoveProduct)
	wishlist.POST("/items/:product_id/move-to-cart", wishlistHTTP.MoveToCart)

	orderHTTP := &OrderHTTP{Svc: d.Orders}
	paymentHTTP := &PaymentHTTP{Svc: d.Payments}
	orders := api.Group("/orders", authn.RequireAuth)
	orders.POST("", orderHTTP.CreateOrder)
	orders.GET("", orderHTTP.ListOrders)
	orders.GET("/stats", orderHTTP.BuyerStats)
	orders.GET("/:id", orderHTTP.GetOrder)
	orders.PATCH("/:id/status", orderHTTP.UpdateOrderStatus)
	orders.GET("/:id/payment", paymentHTTP.PaymentByOrder)

	items := api.Group("/order-items", authn.RequireAuth)
	items.GET("", orderHTTP.SellerItems)
	items.PATCH("/:id/status", orderHTTP.UpdateItemStatus)

	seller := api.Group("/seller", authn.RequireAuth)
	seller.GET("/orders", orderHTTP.SellerOrders)
	seller.GET("/stats", orderHTTP.SellerStats)

	admin := api.Group("/admin", authn.RequireAdmin)
	admin.GET("/orders", orderHTTP.AdminListOrders)

	payments := api.Group("/payments", authn.RequireAuth)
	payments.POST("", paymentHTTP.CreatePayment)
	payments.GET("/stats", paymentHTTP.Stats)
	payments.GET("", paymentHTTP.ListPayments)
	payments.GET("/:id", paymentHTTP.GetPayment)
	payments.POST("/:id/process", paymentHTTP.ProcessPayment)
	payments.POST("/:id/refund", paymentHTTP.RefundPayment)
	payments.PATCH("/:id/provider-ref", paymentHTTP.UpdateProviderRef)
}
