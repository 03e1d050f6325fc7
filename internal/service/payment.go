package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vendora/marketplace/internal/authz"
	"github.com/vendora/marketplace/internal/events"
	"github.com/vendora/marketplace/internal/metrics"
	"github.com/vendora/marketplace/internal/models"
	"github.com/vendora/marketplace/internal/repo"
	"github.com/vendora/marketplace/internal/tracing"
	"github.com/vendora/marketplace/pkg/logging"
	"gorm.io/gorm"
)

// PaymentService is the payment ledger. Payment state is independent of
// order state: nothing here reacts to order transitions and nothing in the
// order engine reacts to payments.
type PaymentService struct {
	Repo   *repo.GormRepo
	Events *events.Publisher
}

func (s *PaymentService) CreatePayment(ctx context.Context, actor authz.Actor, orderID uint, amount float64, method, providerRef string) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "PaymentService.CreatePayment")
	defer span.End()

	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if method == "" {
		method = models.PaymentMethodCard
	}
	if !models.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}

	order, err := s.Repo.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if !actor.IsAdmin() && order.BuyerID != actor.UserID {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}

	if _, err := s.Repo.GetPaymentByOrder(ctx, orderID); err == nil {
		return nil, fmt.Errorf("%w: order %s already has a payment", ErrConflict, order.OrderID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	payment := &models.Payment{
		OrderID:       orderID,
		Amount:        amount,
		Status:        models.PaymentStatusPending,
		PaymentMethod: method,
		ProviderRef:   providerRef,
	}
	if err := s.Repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("payment_created",
		"payment_id", payment.ID, "order_id", orderID, "amount", amount, "method", method)
	return payment, nil
}

func (s *PaymentService) getOwnedPayment(ctx context.Context, r *repo.GormRepo, actor authz.Actor, paymentID uint) (*models.Payment, error) {
	payment, err := r.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		return nil, err
	}
	if actor.IsAdmin() {
		return payment, nil
	}
	order, err := r.GetOrder(ctx, payment.OrderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != actor.UserID {
		return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
	}
	return payment, nil
}

// ProcessPayment moves a payment from pending to completed. Every other
// source state is rejected and left unchanged.
func (s *PaymentService) ProcessPayment(ctx context.Context, actor authz.Actor, paymentID uint) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "PaymentService.ProcessPayment")
	defer span.End()

	var payment *models.Payment
	var from string

	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var err error
		payment, err = s.getOwnedPayment(ctx, r, actor, paymentID)
		if err != nil {
			return err
		}

		from = payment.Status
		if payment.Status != models.PaymentStatusPending {
			return fmt.Errorf("%w: cannot complete payment in status %s", ErrInvalidPaymentState, payment.Status)
		}

		payment.Status = models.PaymentStatusCompleted
		return r.SavePayment(ctx, payment)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPaymentState) {
			metrics.PaymentsRejectedTotal.WithLabelValues("not_pending").Inc()
		}
		return nil, err
	}

	metrics.PaymentsProcessedTotal.Inc()
	s.Events.PaymentStatusChanged(ctx, payment, from)
	logging.FromContext(ctx).Info("payment_processed", "payment_id", payment.ID, "order_id", payment.OrderID)
	return payment, nil
}

// RefundPayment moves a payment from completed to refunded.
func (s *PaymentService) RefundPayment(ctx context.Context, actor authz.Actor, paymentID uint) (*models.Payment, error) {
	ctx, span := tracing.StartSpan(ctx, "PaymentService.RefundPayment")
	defer span.End()

	var payment *models.Payment
	var from string

	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var err error
		payment, err = s.getOwnedPayment(ctx, r, actor, paymentID)
		if err != nil {
			return err
		}

		from = payment.Status
		if payment.Status != models.PaymentStatusCompleted {
			return fmt.Errorf("%w: can only refund completed payments, payment is %s", ErrInvalidPaymentState, payment.Status)
		}

		payment.Status = models.PaymentStatusRefunded
		return r.SavePayment(ctx, payment)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidPaymentState) {
			metrics.PaymentsRejectedTotal.WithLabelValues("not_completed").Inc()
		}
		return nil, err
	}

	metrics.PaymentsRefundedTotal.Inc()
	s.Events.PaymentStatusChanged(ctx, payment, from)
	logging.FromContext(ctx).Info("payment_refunded", "payment_id", payment.ID, "order_id", payment.OrderID)
	return payment, nil
}

// UpdateProviderRef sets the payment processor reference. Allowed at any
// payment status.
func (s *PaymentService) UpdateProviderRef(ctx context.Context, actor authz.Actor, paymentID uint, ref string) (*models.Payment, error) {
	var payment *models.Payment
	err := s.Repo.Transaction(ctx, func(r *repo.GormRepo) error {
		var err error
		payment, err = s.getOwnedPayment(ctx, r, actor, paymentID)
		if err != nil {
			return err
		}
		payment.ProviderRef = ref
		return r.SavePayment(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, actor authz.Actor, paymentID uint) (*models.Payment, error) {
	return s.getOwnedPayment(ctx, s.Repo, actor, paymentID)
}

func (s *PaymentService) GetPaymentByOrder(ctx context.Context, actor authz.Actor, orderID uint) (*models.Payment, error) {
	payment, err := s.Repo.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment for order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return s.getOwnedPayment(ctx, s.Repo, actor, payment.ID)
}

func (s *PaymentService) ListPayments(ctx context.Context, actor authz.Actor, f repo.PaymentFilter, offset, limit int) (int64, []models.Payment, error) {
	if !actor.IsAdmin() {
		return 0, nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}
	return s.Repo.ListPayments(ctx, f, offset, limit)
}

func (s *PaymentService) Stats(ctx context.Context, actor authz.Actor) (*repo.PaymentStats, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin access required", ErrPermissionDenied)
	}
	return s.Repo.PaymentStatsSummary(ctx)
}
