package events

import (
	"context"
	"fmt"

	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/pkg/logging"
)

const (
	TopicOrderEvents   = "order_events"
	TopicPaymentEvents = "payment_events"
	TopicProductEvents = "product_events"
)

// Publisher emits domain events to kafka. A nil Publisher is a no-op so
// that callers never have to guard event emission.
type Publisher struct {
	producer *Producer
}

func NewPublisher(producer *Producer) *Publisher {
	if producer == nil {
		return nil
	}
	return &Publisher{producer: producer}
}

func (p *Publisher) publish(ctx context.Context, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.producer.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}

func (p *Publisher) OrderCreated(ctx context.Context, order *models.Order) {
	p.publish(ctx, TopicOrderEvents, order.OrderID, map[string]any{
		"type":         "order_created",
		"order_id":     order.OrderID,
		"buyer_id":     order.BuyerID,
		"total_amount": order.TotalAmount,
		"items":        len(order.Items),
	})
}

func (p *Publisher) OrderStatusChanged(ctx context.Context, order *models.Order, from string) {
	p.publish(ctx, TopicOrderEvents, order.OrderID, map[string]any{
		"type":     "order_status_changed",
		"order_id": order.OrderID,
		"from":     from,
		"to":       order.Status,
	})
}

func (p *Publisher) OrderItemStatusChanged(ctx context.Context, item *models.OrderItem, from string) {
	p.publish(ctx, TopicOrderEvents, fmt.Sprintf("item-%d", item.ID), map[string]any{
		"type":      "order_item_status_changed",
		"item_id":   item.ID,
		"order_id":  item.OrderID,
		"seller_id": item.SellerID,
		"from":      from,
		"to":        item.Status,
	})
}

func (p *Publisher) PaymentStatusChanged(ctx context.Context, payment *models.Payment, from string) {
	p.publish(ctx, TopicPaymentEvents, fmt.Sprintf("payment-%d", payment.ID), map[string]any{
		"type":       "payment_status_changed",
		"payment_id": payment.ID,
		"order_id":   payment.OrderID,
		"from":       from,
		"to":         payment.Status,
	})
}

func (p *Publisher) ProductEvent(ctx context.Context, eventType string, product *models.Product) {
	p.publish(ctx, TopicProductEvents, fmt.Sprintf("product-%d", product.ID), map[string]any{
		"type":      eventType,
		"productID": product.ID,
		"name":      product.Name,
	})
}
