package repo

import (
	"context"

	"github.com/vendora/marketplace/internal/models"
)

type OrderFilter struct {
	Status  string
	BuyerID *uint
	Search  string
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

func (r *GormRepo) GetOrderForBuyer(ctx context.Context, id, buyerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND buyer_id = ?", id, buyerID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListBuyerOrders(ctx context.Context, buyerID uint, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("buyer_id = ?", buyerID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where(
			"order_id LIKE ? OR id IN (?)",
			"%"+f.Search+"%",
			r.DB.Model(&models.OrderItem{}).
				Select("order_items.order_id").
				Joins("JOIN products ON products.id = order_items.product_id").
				Where("products.name LIKE ?", "%"+f.Search+"%"),
		)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// ListSellerOrders returns orders containing at least one item sold by the
// seller.
func (r *GormRepo) ListSellerOrders(ctx context.Context, sellerID uint, status string, offset, limit int) (int64, []models.Order, error) {
	sub := r.DB.Model(&models.OrderItem{}).
		Select("order_id").
		Where("seller_id = ?", sellerID)

	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("id IN (?)", sub)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) ListSellerItems(ctx context.Context, sellerID uint, status string, offset, limit int) (int64, []models.OrderItem, error) {
	q := r.DB.WithContext(ctx).Model(&models.OrderItem{}).Where("seller_id = ?", sellerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.OrderItem
	if err := q.Order("id DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BuyerID != nil {
		q = q.Where("buyer_id = ?", *f.BuyerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *GormRepo) SetOrderStatus(ctx context.Context, orderID uint, status string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *GormRepo) SetOrderItemsStatus(ctx context.Context, orderID uint, status string) error {
	return r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Update("status", status).Error
}

func (r *GormRepo) GetOrderItemForSeller(ctx context.Context, itemID, sellerID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND seller_id = ?", itemID, sellerID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SetOrderItemStatus(ctx context.Context, itemID uint, status string) error {
	return r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("id = ?", itemID).
		Update("status", status).Error
}

// DistinctItemStatuses returns the set of statuses present across an
// order's items.
func (r *GormRepo) DistinctItemStatuses(ctx context.Context, orderID uint) ([]string, error) {
	var statuses []string
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Distinct().
		Pluck("status", &statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

type OrderStats struct {
	TotalOrders     int64            `json:"total_orders"`
	ByStatus        map[string]int64 `json:"by_status"`
	TotalSpent      float64          `json:"total_spent"`
}

func (r *GormRepo) BuyerOrderStats(ctx context.Context, buyerID uint) (*OrderStats, error) {
	stats := &OrderStats{ByStatus: map[string]int64{}}

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("buyer_id = ?", buyerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("buyer_id = ?", buyerID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&stats.TotalSpent).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

type SellerStats struct {
	TotalItemsSold int64            `json:"total_items_sold"`
	ByStatus       map[string]int64 `json:"by_status"`
	TotalRevenue   float64          `json:"total_revenue"`
	OrdersInvolved int64            `json:"orders_involved"`
}

func (r *GormRepo) SellerOrderStats(ctx context.Context, sellerID uint) (*SellerStats, error) {
	stats := &SellerStats{ByStatus: map[string]int64{}}

	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.TotalItemsSold).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Select("status, COUNT(*) AS count").
		Where("seller_id = ?", sellerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Select("COALESCE(SUM(unit_price * quantity), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Where("seller_id = ?", sellerID).
		Distinct("order_id").
		Count(&stats.OrdersInvolved).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
