package repo

import (
	"context"

	"github.com/vendora/marketplace/internal/models"
)

type PaymentFilter struct {
	Status  string
	Method  string
	OrderID *uint
}

func (r *GormRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	return r.DB.WithContext(ctx).Create(payment).Error
}

func (r *GormRepo) GetPayment(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) GetPaymentByOrder(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.DB.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *GormRepo) ListPayments(ctx context.Context, f PaymentFilter, offset, limit int) (int64, []models.Payment, error) {
	q := r.DB.WithContext(ctx).Model(&models.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Method != "" {
		q = q.Where("payment_method = ?", f.Method)
	}
	if f.OrderID != nil {
		q = q.Where("order_id = ?", *f.OrderID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var payments []models.Payment
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return 0, nil, err
	}
	return total, payments, nil
}

func (r *GormRepo) SavePayment(ctx context.Context, payment *models.Payment) error {
	return r.DB.WithContext(ctx).Save(payment).Error
}

type PaymentStats struct {
	TotalPayments int64            `json:"total_payments"`
	TotalAmount   float64          `json:"total_amount"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByMethod      map[string]int64 `json:"by_method"`
}

func (r *GormRepo) PaymentStatsSummary(ctx context.Context) (*PaymentStats, error) {
	stats := &PaymentStats{ByStatus: map[string]int64{}, ByMethod: map[string]int64{}}

	if err := r.DB.WithContext(ctx).Model(&models.Payment{}).
		Count(&stats.TotalPayments).Error; err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&stats.TotalAmount).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Status string
		Count  int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Payment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Status] = row.Count
	}

	var byMethod []struct {
		PaymentMethod string
		Count         int64
	}
	if err := r.DB.WithContext(ctx).Model(&models.Payment{}).
		Select("payment_method, COUNT(*) AS count").
		Group("payment_method").
		Scan(&byMethod).Error; err != nil {
		return nil, err
	}
	for _, row := range byMethod {
		stats.ByMethod[row.PaymentMethod] = row.Count
	}

	return stats, nil
}
