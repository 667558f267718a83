package models

import "gorm.io/gorm"

// Order statuses. Transitions move forward only; COMPLETED and
// CANCELLED are terminal.
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

// ValidStatus reports whether s is one of the five order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// allowedTransitions is the forward-only order lifecycle.
var allowedTransitions = map[string][]string{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusReady, StatusCancelled},
	StatusReady:      {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order is a placed order with its line items.
type Order struct {
	gorm.Model
	UserID     uint    `gorm:"not null;index" json:"userId"`
	Total      float64 `gorm:"not null" json:"total"`
	Status     string  `gorm:"size:50;not null;default:PENDING" json:"status"`
	PaymentRef string  `gorm:"size:100" json:"paymentRef"`

	User  User        `json:"-"`
	Items []OrderItem `json:"items"`
}

// OrderItem is one line of an order. UnitPrice is snapshotted at
// confirmation time so later menu-price edits do not rewrite history.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `gorm:"not null;index" json:"orderId"`
	MenuItemID uint    `gorm:"not null;index" json:"menuItemId"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"not null" json:"unitPrice"`

	MenuItem MenuItem `json:"menuItem"`
}
