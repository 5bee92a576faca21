package model

import (
	"math"
	"time"
)

// Column names of the source order table
const (
	ColOrderID             = "order_id"
	ColProductID           = "product_id"
	ColOrderItemID         = "order_item_id"
	ColCustomerID          = "customer_id"
	ColPaymentType         = "payment_type"
	ColPaymentInstallments = "payment_installments"
	ColPaymentValue        = "payment_value"
	ColFreightValue        = "freight_value"
	ColCustomerCity        = "customer_city"
	ColCustomerState       = "customer_state"
	ColPurchasedAt         = "order_purchase_timestamp"
	ColApprovedAt          = "order_approved_at"
	ColDeliveredCarrierAt  = "order_delivered_carrier_date"
	ColDeliveredCustomerAt = "order_delivered_customer_date"
	ColEstimatedDelivery   = "order_estimated_delivery_date"
	ColShippingLimitAt     = "shipping_limit_date"
)

// DateColumns are the lifecycle columns that must parse as timestamps.
var DateColumns = []string{
	ColPurchasedAt,
	ColApprovedAt,
	ColDeliveredCarrierAt,
	ColDeliveredCustomerAt,
	ColEstimatedDelivery,
}

// RequiredColumns must be present in every source.
var RequiredColumns = append([]string{
	ColOrderID, ColProductID, ColOrderItemID, ColCustomerID,
	ColPaymentType, ColPaymentInstallments, ColPaymentValue, ColFreightValue,
	ColCustomerCity, ColCustomerState,
}, DateColumns...)

// UnknownInstallments marks a row whose installment count is absent.
const UnknownInstallments = -1

// Order is one line item of the order table.
// Absent timestamps are zero values, absent money fields are NaN.
type Order struct {
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	OrderItemID string `json:"order_item_id"`
	CustomerID  string `json:"customer_id"`

	PaymentType         string  `json:"payment_type"`
	PaymentInstallments int     `json:"payment_installments"`
	PaymentValue        float64 `json:"payment_value"`
	FreightValue        float64 `json:"freight_value"`

	CustomerCity  string `json:"customer_city"`
	CustomerState string `json:"customer_state"`

	PurchasedAt         time.Time `json:"purchased_at"`
	ApprovedAt          time.Time `json:"approved_at"`
	DeliveredCarrierAt  time.Time `json:"delivered_carrier_at"`
	DeliveredCustomerAt time.Time `json:"delivered_customer_at"`
	EstimatedDeliveryAt time.Time `json:"estimated_delivery_at"`
	ShippingLimitAt     time.Time `json:"shipping_limit_at"`
}

// HasPayment reports whether the payment value is present.
func (o Order) HasPayment() bool { return finite(o.PaymentValue) }

// HasFreight reports whether the freight value is present.
func (o Order) HasFreight() bool { return finite(o.FreightValue) }

// HasInstallments reports whether the installment count is present.
func (o Order) HasInstallments() bool { return o.PaymentInstallments != UnknownInstallments }

// DeliveryDays returns whole days between purchase and customer delivery.
func (o Order) DeliveryDays() (int, error) {
	if o.PurchasedAt.IsZero() {
		return 0, &MissingFieldError{Field: ColPurchasedAt, OrderID: o.OrderID}
	}
	if o.DeliveredCustomerAt.IsZero() {
		return 0, &MissingFieldError{Field: ColDeliveredCustomerAt, OrderID: o.OrderID}
	}
	return WholeDays(o.DeliveredCustomerAt.Sub(o.PurchasedAt)), nil
}

// DeliveryDelayDays returns whole days between the estimated and the actual
// delivery. Positive values mean the order arrived late.
func (o Order) DeliveryDelayDays() (int, error) {
	if o.DeliveredCustomerAt.IsZero() {
		return 0, &MissingFieldError{Field: ColDeliveredCustomerAt, OrderID: o.OrderID}
	}
	if o.EstimatedDeliveryAt.IsZero() {
		return 0, &MissingFieldError{Field: ColEstimatedDelivery, OrderID: o.OrderID}
	}
	return WholeDays(o.DeliveredCustomerAt.Sub(o.EstimatedDeliveryAt)), nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// WholeDays floors a duration to whole days, rounding toward negative infinity.
func WholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}
