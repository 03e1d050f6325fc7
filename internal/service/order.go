package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/events"
	"github.com/vendora/marketplace/internal/metrics"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/tracing"
	"github.com/vendora/marketplace/pkg/logging"
	"gorm.io/gorm"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events *events.Publisher
}

// CheckoutLine is one caller-supplied order line. The unit price is taken
// as given; the seller is re-derived from the product at creation time so
// an item can never point at a seller other than its product's.
type CheckoutLine struct {
	ProductID uint
	Quantity  uint
	UnitPrice float64
}

// NewOrderID returns an opaque order identifier: "ORD-" plus 8 uppercase
// hex chars. Collisions are treated as negligible; the unique index is the
// backstop.
func NewOrderID() string {
	id := uuid.New()
	return "ORD-" + strings.ToUpper(hex.EncodeToString(id[:4]))
}

// CreateOrder builds one Order plus one OrderItem per line in a single
// transaction. Any per-line validation failure aborts the whole creation;
// no partial order is ever visible.
func (s *OrderService) CreateOrder(ctx context.Context, actor authz.Actor, shippingAddress string, lines []CheckoutLine) (*models.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if len(lines) == 0 {
		metrics.OrdersFailedTotal.WithLabelValues("no_items").Inc()
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range lines {
		if lines[i].Quantity == 0 {
			metrics.OrdersFailedTotal.WithLabelValues("invalid_quantity").Inc()
			return nil, fmt.Errorf("%w: line %d: quantity must be > 0", ErrValidation, i)
		}
		if lines[i].UnitPrice < 0 {
			metrics.OrdersFailedTotal.WithLabelValues("invalid_price").Inc()
			return nil, fmt.Errorf("%w: line %d: price must be >= 0", ErrValidation, i)
		}
	}

	order := &models.Order{
		OrderID:         NewOrderID(),
		BuyerID:         actor.UserID,
		Status:          models.OrderStatusPending,
		ShippingAddress: shippingAddress,
	}

	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var total float64
		items := make([]models.OrderItem, 0, len(lines))

		for i, line := range lines {
			product, err := r.GetProduct(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: line %d: product %d not found", ErrValidation, i, line.ProductID)
				}
				return err
			}
			if !product.IsActive {
				return fmt.Errorf("%w: line %d: product %q is not available", ErrValidation, i, product.Name)
			}
			if product.StockQuantity < int(line.Quantity) {
				return fmt.Errorf("%w: line %d: insufficient stock for product %q", ErrValidation, i, product.Name)
			}

			total += float64(line.Quantity) * line.UnitPrice
			items = append(items, models.OrderItem{
				ProductID: product.ID,
				SellerID:  product.SellerID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Status:    models.OrderStatusPending,
			})
		}

		order.TotalAmount = total
		order.Items = items
		return r.CreateOrder(ctx, order)
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			metrics.OrdersFailedTotal.WithLabelValues("validation").Inc()
		}
		return nil, err
	}

	metrics.OrdersCreatedTotal.Inc()
	s.Events.OrderCreated(ctx, order)
	logging.FromContext(ctx).Info("order_created",
		"order_id", order.OrderID, "buyer_id", order.BuyerID, "total", order.TotalAmount)

	return order, nil
}

// UpdateOrderStatus applies a buyer-driven transition. Legal edges are
// pending->cancelled and confirmed->cancelled; everything else is rejected.
// On success the new status is forced onto every item of the order,
// regardless of per-seller progress.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, actor authz.Actor, orderID uint, newStatus string) (*models.Order, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderService.UpdateOrderStatus")
	defer span.End()

	if !models.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var order *models.Order
	var from string

	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var err error
		order, err = r.GetOrderForBuyer(ctx, orderID, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		from = order.Status
		if !models.CanTransitionOrder(from, newStatus) {
			return fmt.Errorf("%w: cannot change status from %s to %s", ErrInvalidTransition, from, newStatus)
		}

		if err := r.SetOrderStatus(ctx, order.ID, newStatus); err != nil {
			return err
		}
		return r.SetOrderItemsStatus(ctx, order.ID, newStatus)
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	for i := range order.Items {
		order.Items[i].Status = newStatus
	}

	metrics.OrderStatusTransitionsTotal.WithLabelValues(newStatus).Inc()
	s.Events.OrderStatusChanged(ctx, order, from)
	logging.FromContext(ctx).Info("order_status_changed",
		"order_id", order.OrderID, "from", from, "to", newStatus)

	return order, nil
}

// UpdateOrderItemStatus applies a seller-driven item update. Item-level
// changes are unconstrained within the status enum. After the write, the
// distinct set of item statuses is inspected inside the same transaction:
// a single-element set overwrites the order's status, a mixed set leaves
// it untouched.
func (s *OrderService) UpdateOrderItemStatus(ctx context.Context, actor authz.Actor, itemID uint, newStatus string) (*models.OrderItem, error) {
	ctx, span := tracing.StartSpan(ctx, "OrderService.UpdateOrderItemStatus")
	defer span.End()

	if !models.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var item *models.OrderItem
	var from string
	rolled := false

	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var err error
		item, err = r.GetOrderItemForSeller(ctx, itemID, actor.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order item %d", ErrNotFound, itemID)
			}
			return err
		}

		from = item.Status
		if err := r.SetOrderItemStatus(ctx, item.ID, newStatus); err != nil {
			return err
		}
		item.Status = newStatus

		statuses, err := r.DistinctItemStatuses(ctx, item.OrderID)
		if err != nil {
			return err
		}
		if len(statuses) == 1 {
			rolled = true
			return r.SetOrderStatus(ctx, item.OrderID, statuses[0])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.OrderItemUpdatesTotal.Inc()
	if rolled {
		metrics.OrderRollupsTotal.Inc()
	}
	s.Events.OrderItemStatusChanged(ctx, item, from)
	logging.FromContext(ctx).Info("order_item_status_changed",
		"item_id", item.ID, "order_id", item.OrderID, "from", from, "to", newStatus, "rolled_up", rolled)

	return item, nil
}

func (s *OrderService) GetOrder(ctx context.Context, actor authz.Actor, orderID uint) (*models.Order, error) {
	order, err := s.Repo.GetOrderForBuyer(ctx, orderID, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListBuyerOrders(ctx context.Context, actor authz.Actor, status, search string, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListBuyerOrders(ctx, actor.UserID, repo.OrderFilter{Status: status, Search: search}, offset, limit)
}

func (s *OrderService) ListSellerOrders(ctx context.Context, actor authz.Actor, status string, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListSellerOrders(ctx, actor.UserID, status, offset, limit)
}

func (s *OrderService) ListSellerItems(ctx context.Context, actor authz.Actor, status string, offset, limit int) (int64, []models.OrderItem, error) {
	return s.Repo.ListSellerItems(ctx, actor.UserID, status, offset, limit)
}

func (s *OrderService) ListAllOrders(ctx context.Context, actor authz.Actor, status string, buyerID *uint, offset, limit int) (int64, []models.Order, error) {
	if !actor.IsAdmin() {
		return 0, nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}
	return s.Repo.ListOrders(ctx, repo.OrderFilter{Status: status, BuyerID: buyerID}, offset, limit)
}

func (s *OrderService) BuyerStats(ctx context.Context, actor authz.Actor) (*repo.OrderStats, error) {
	return s.Repo.BuyerOrderStats(ctx, actor.UserID)
}

func (s *OrderService) SellerStats(ctx context.Context, actor authz.Actor) (*repo.SellerStats, error) {
	return s.Repo.SellerOrderStats(ctx, actor.UserID)
}
