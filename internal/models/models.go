package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string    `gorm:"unique;not null"           json:"username"`
	Email        string    `gorm:"unique;not null"           json:"email"`
	PasswordHash string    `gorm:"not null"                  json:"-"`
	Role         string    `gorm:"not null;default:buyer"    json:"role"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

type SellerProfile struct {
	ID              uint      `gorm:"primaryKey"              json:"id"`
	UserID          uint      `gorm:"uniqueIndex;not null"    json:"user_id"`
	ShopName        string    `gorm:"not null"                json:"shop_name"`
	ShopDescription string    `json:"shop_description"`
	IsApproved      bool      `gorm:"default:false"           json:"is_approved"`
	CreatedAt       time.Time `json:"created_at"`
}

type Category struct {
	ID          uint      `gorm:"primaryKey"       json:"id"`
	Name        string    `gorm:"unique;not null"  json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	SellerID      uint      `gorm:"index;not null"            json:"seller_id"`
	CategoryID    *uint     `gorm:"index"                     json:"category_id"`
	Name          string    `gorm:"not null"                  json:"name"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null"                  json:"price"`
	StockQuantity int       `gorm:"default:0"                 json:"stock_quantity"`
	IsActive      bool      `gorm:"default:true"              json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ProductVariant struct {
	ID              uint    `gorm:"primaryKey"      json:"id"`
	ProductID       uint    `gorm:"index;not null"  json:"product_id"`
	VariantType     string  `gorm:"not null"        json:"variant_type"`
	VariantValue    string  `gorm:"not null"        json:"variant_value"`
	PriceAdjustment float64 `json:"price_adjustment"`
	StockQuantity   int     `gorm:"default:0"       json:"stock_quantity"`
}

type ProductReview struct {
	ID        uint      `gorm:"primaryKey"                                    json:"id"`
	ProductID uint      `gorm:"uniqueIndex:idx_review_product_buyer;not null" json:"product_id"`
	BuyerID   uint      `gorm:"uniqueIndex:idx_review_product_buyer;not null" json:"buyer_id"`
	Rating    int       `gorm:"not null;check:rating BETWEEN 1 AND 5"         json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Cart struct {
	ID        uint      `gorm:"primaryKey"            json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"  json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey"                                  json:"id"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_product;not null"       json:"cart_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_product;not null"       json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                  json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime"                              json:"added_at"`
}

type Wishlist struct {
	ID        uint      `gorm:"primaryKey"            json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"  json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type WishlistItem struct {
	ID         uint      `gorm:"primaryKey"                                 json:"id"`
	WishlistID uint      `gorm:"uniqueIndex:idx_wishlist_product;not null"  json:"wishlist_id"`
	ProductID  uint      `gorm:"uniqueIndex:idx_wishlist_product;not null"  json:"product_id"`
	AddedAt    time.Time `gorm:"autoCreateTime"                             json:"added_at"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey"              json:"id"`
	OrderID         string      `gorm:"uniqueIndex;not null"    json:"order_id"`
	BuyerID         uint        `gorm:"index;not null"          json:"buyer_id"`
	TotalAmount     float64     `gorm:"not null"                json:"total_amount"`
	Status          string      `gorm:"not null;default:pending" json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey"                  json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	SellerID  uint    `gorm:"index;not null"              json:"seller_id"`
	Quantity  uint    `gorm:"not null;check:quantity>0"   json:"quantity"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
	Status    string  `gorm:"not null;default:pending"    json:"status"`
}

type Payment struct {
	ID            uint      `gorm:"primaryKey"              json:"id"`
	OrderID       uint      `gorm:"uniqueIndex;not null"    json:"order_id"`
	Amount        float64   `gorm:"not null"                json:"amount"`
	Status        string    `gorm:"not null;default:pending" json:"status"`
	PaymentMethod string    `gorm:"not null;default:card"   json:"payment_method"`
	ProviderRef   string    `json:"provider_ref"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
