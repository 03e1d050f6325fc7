package models

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

const (
	PaymentMethodCard           = "card"
	PaymentMethodBkash          = "bkash"
	PaymentMethodNagad          = "nagad"
	PaymentMethodRocket         = "rocket"
	PaymentMethodBankTransfer   = "bank_transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

var orderStatuses = map[string]struct{}{
	OrderStatusPending:   {},
	OrderStatusConfirmed: {},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// Buyer-driven order transitions. Shipped, delivered and cancelled orders
// are terminal from the buyer's side; item-level updates are not restricted
// by this table.
var orderTransitions = map[string][]string{
	OrderStatusPending:   {OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusCancelled},
	OrderStatusShipped:   {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

var paymentMethods = map[string]struct{}{
	PaymentMethodCard:           {},
	PaymentMethodBkash:          {},
	PaymentMethodNagad:          {},
	PaymentMethodRocket:         {},
	PaymentMethodBankTransfer:   {},
	PaymentMethodCashOnDelivery: {},
}

func ValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

func CanTransitionOrder(from, to string) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	_, ok := paymentMethods[m]
	return ok
}
