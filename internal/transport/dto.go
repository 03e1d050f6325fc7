package transport

import "github.com/vendora/marketplace/internal/models"

type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	ShopName        string `json:"shop_name"`
	ShopDescription string `json:"shop_description"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresAt   int64       `json:"expires_at"`
	User        models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type CreateProductRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	CategoryID    *uint   `json:"category_id"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *int     `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

type CreateVariantRequest struct {
	VariantType     string  `json:"variant_type"`
	VariantValue    string  `json:"variant_value"`
	PriceAdjustment float64 `json:"price_adjustment"`
	StockQuantity   int     `json:"stock_quantity"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductDetail struct {
	models.Product
	Variants      []models.ProductVariant `json:"variants"`
	Reviews       []models.ProductReview  `json:"reviews"`
	AverageRating float64                 `json:"average_rating"`
	ReviewCount   int64                   `json:"review_count"`
	IsInStock     bool                    `json:"is_in_stock"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type SetQuantityRequest struct {
	Quantity uint `json:"quantity"`
}

type CartLine struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    uint    `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

type SellerGroup struct {
	Items      []CartLine `json:"items"`
	TotalPrice float64    `json:"total_price"`
}

type CartSummary struct {
	TotalItems  int64                 `json:"total_items"`
	UniqueItems int64                 `json:"unique_items"`
	TotalPrice  float64               `json:"total_price"`
	BySeller    map[uint]*SellerGroup `json:"items_by_seller"`
}

type WishlistAddRequest struct {
	ProductID uint `json:"product_id"`
}

type OrderLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type CreateOrderRequest struct {
	ShippingAddress string      `json:"shipping_address"`
	Items           []OrderLine `json:"items"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CreatePaymentRequest struct {
	OrderID       uint    `json:"order_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	ProviderRef   string  `json:"provider_ref"`
}

type UpdateProviderRefRequest struct {
	ProviderRef string `json:"provider_ref"`
}
