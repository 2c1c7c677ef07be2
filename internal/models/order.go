package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// allowedTransitions maps each status to the statuses it may move to.
// completed and cancelled are terminal.
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
}

// ParseOrderStatus validates a raw status string.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how the customer intends to pay. Settlement is handled
// elsewhere; only the method and an optional reference are recorded.
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentCreditCard PaymentMethod = "credit_card"
)

// ParsePaymentMethod validates a raw payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCreditCard:
		return PaymentMethod(s), true
	}
	return "", false
}

// Order is the aggregate root of a placed order. Price and preparation-time
// columns are snapshots taken at creation and are never recomputed from the
// live catalog.
type Order struct {
	BaseModel
	OrderNumber              string          `gorm:"uniqueIndex" json:"order_number"`
	UserID                   *uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	User                     *User           `json:"user,omitempty"`
	BranchID                 uuid.UUID       `gorm:"type:uuid;index" json:"branch_id"`
	Branch                   *Branch         `json:"branch,omitempty"`
	Status                   OrderStatus     `json:"status"`
	TotalPrice               decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	EstimatedPreparationTime int             `json:"estimated_preparation_time"`
	ReadyAt                  *time.Time      `json:"ready_at"`
	PaymentMethod            PaymentMethod   `json:"payment_method"`
	PaymentReference         string          `json:"payment_reference,omitempty"`
	PaymentProvider          string          `json:"payment_provider,omitempty"`
	CustomerNote             string          `json:"customer_note,omitempty"`
	OrderSnapshot            json.RawMessage `gorm:"type:jsonb" json:"order_snapshot,omitempty"`
	Items                    []OrderItem     `json:"items,omitempty"`
}

// TransitionTo applies the status state machine. The ready transition stamps
// ReadyAt; no other transition touches it. The receiver is not persisted here.
func (o *Order) TransitionTo(next OrderStatus, now time.Time) error {
	if !o.Status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition order from %s to %s", o.Status, next)
	}
	o.Status = next
	if next == OrderReady {
		o.ReadyAt = &now
	}
	return nil
}

// OrderItem is one cart line frozen at purchase time. ProductID is nullable:
// the product may be deleted later without touching order history.
type OrderItem struct {
	BaseModel
	OrderID          uuid.UUID         `gorm:"type:uuid;index" json:"order_id"`
	ProductID        *uuid.UUID        `gorm:"type:uuid" json:"product_id"`
	ProductName      string            `json:"product_name"`
	ProductBasePrice decimal.Decimal   `gorm:"type:numeric(10,2)" json:"product_base_price"`
	Quantity         int               `json:"quantity"`
	ItemTotalPrice   decimal.Decimal   `gorm:"type:numeric(10,2)" json:"item_total_price"`
	Options          []OrderItemOption `json:"options,omitempty"`
}

// OrderItemOption is one selected option instance on an order item. Group and
// option names/prices are denormalized copies so history survives catalog
// edits and deletions.
type OrderItemOption struct {
	BaseModel
	OrderItemID          uuid.UUID       `gorm:"type:uuid;index" json:"order_item_id"`
	ProductOptionGroupID *uuid.UUID      `gorm:"type:uuid" json:"product_option_group_id"`
	ProductOptionID      *uuid.UUID      `gorm:"type:uuid" json:"product_option_id"`
	GroupName            string          `json:"group_name"`
	GroupType            OptionGroupType `json:"group_type"`
	GroupIsRequired      bool            `json:"group_is_required"`
	OptionName           string          `json:"option_name"`
	OptionExtraPrice     decimal.Decimal `gorm:"type:numeric(10,2)" json:"option_extra_price"`
}
