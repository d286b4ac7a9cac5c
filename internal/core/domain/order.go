package domain

import "time"

// OrderStatus is a plain enumerated value. Any status may move to any other.
type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderCompleted  OrderStatus = "Completed"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// DateLayout is the wire and storage format of Order.Date.
const DateLayout = "2006-01-02"

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Active reports whether the order still needs work.
func (s OrderStatus) Active() bool {
	return s == OrderPending || s == OrderProcessing
}

// Order is a purchase placed by a customer. ID is supplied by the caller and
// Amount is kept as the text the caller sent (e.g. "$250.00").
type Order struct {
	ID         string      `json:"id"`
	CustomerID int64       `json:"customer_id"`
	Amount     string      `json:"amount"`
	Status     OrderStatus `json:"status"`
	Date       time.Time   `json:"date"`
}

// OrderView is an order joined with its customer, as shown in listings.
type OrderView struct {
	ID       string      `json:"id"`
	Customer string      `json:"customer"`
	Email    string      `json:"email"`
	Amount   string      `json:"amount"`
	Status   OrderStatus `json:"status"`
	Date     string      `json:"date"`
}

// OrderEventType names an entry in an order's audit trail.
type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "created"
	OrderEventStatusChanged OrderEventType = "status_changed"
	OrderEventUpdated       OrderEventType = "updated"
	OrderEventDeleted       OrderEventType = "deleted"
)

// OrderEvent is one audit trail entry for an order.
type OrderEvent struct {
	OrderID    string         `json:"order_id" bson:"order_id"`
	Type       OrderEventType `json:"type" bson:"type"`
	FromStatus OrderStatus    `json:"from_status,omitempty" bson:"from_status,omitempty"`
	ToStatus   OrderStatus    `json:"to_status,omitempty" bson:"to_status,omitempty"`
	Amount     string         `json:"amount,omitempty" bson:"amount,omitempty"`
	ActorID    int64          `json:"actor_id" bson:"actor_id"`
	ActorEmail string         `json:"actor_email" bson:"actor_email"`
	OccurredAt time.Time      `json:"occurred_at" bson:"occurred_at"`
}
