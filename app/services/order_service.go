package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/app/repositories"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/auth"
	"github.com/ashrith-07/campus-bites-sub000/pkg/logger"
	"github.com/ashrith-07/campus-bites-sub000/pkg/metrics"
	"github.com/ashrith-07/campus-bites-sub000/pkg/realtime"
)

// OrderService runs the order lifecycle. Events are dispatched only
// after the database write succeeds; a dispatch failure never rolls
// back the write.
type OrderService struct {
	orders   *repositories.OrderRepository
	items    *repositories.MenuItemRepository
	dispatch *realtime.Dispatcher
}

func NewOrderService(orders *repositories.OrderRepository, items *repositories.MenuItemRepository, dispatch *realtime.Dispatcher) *OrderService {
	return &OrderService{orders: orders, items: items, dispatch: dispatch}
}

// CheckoutItem is one cart line.
type CheckoutItem struct {
	MenuItemID uint `json:"menuItemId" validate:"required"`
	Quantity   int  `json:"quantity" validate:"required,gt=0"`
}

// statusMessages are the human-readable texts attached to order-update
// events.
var statusMessages = map[string]string{
	models.StatusPending:    "Your order has been placed",
	models.StatusProcessing: "Your order is being prepared",
	models.StatusReady:      "Your order is ready for pickup",
	models.StatusCompleted:  "Your order is complete. Enjoy!",
	models.StatusCancelled:  "Your order has been cancelled",
}

func validateCart(total float64, items []CheckoutItem) error {
	if len(items) == 0 {
		return apperr.InvalidInput("Order must contain at least one item")
	}
	for _, it := range items {
		if it.MenuItemID == 0 || it.Quantity <= 0 {
			return apperr.InvalidInput("Each item needs a menu item and a positive quantity")
		}
	}
	if total <= 0 {
		return apperr.InvalidInput("Total must be greater than zero")
	}
	return nil
}

// Checkout validates the cart and returns a pending-payment reference.
// No charge occurs; the reference stands in for a payment gateway.
func (s *OrderService) Checkout(caller *auth.Identity, total float64, items []CheckoutItem) (string, error) {
	if caller == nil {
		return "", apperr.Unauthenticated("Login required")
	}
	if err := validateCart(total, items); err != nil {
		return "", err
	}
	return "pi_" + uuid.NewString(), nil
}

// Confirm persists the order as PENDING, snapshotting each item's unit
// price, then notifies the owner and the vendor group.
func (s *OrderService) Confirm(caller *auth.Identity, total float64, items []CheckoutItem, paymentRef string) (models.Order, error) {
	if caller == nil {
		return models.Order{}, apperr.Unauthenticated("Login required")
	}
	if err := validateCart(total, items); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		UserID:     caller.ID,
		Total:      total,
		Status:     models.StatusPending,
		PaymentRef: paymentRef,
	}
	for _, it := range items {
		menuItem, err := s.items.FindByID(it.MenuItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Order{}, apperr.InvalidInput(fmt.Sprintf("Menu item %d does not exist", it.MenuItemID))
			}
			return models.Order{}, apperr.Internal(err)
		}
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Quantity:   it.Quantity,
			UnitPrice:  menuItem.Price,
		})
	}

	if err := s.orders.Create(&order); err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	metrics.OrdersCreated.Inc()

	created, err := s.orders.FindByID(order.ID)
	if err != nil {
		logger.Warn("order: reload after create failed", "order_id", order.ID, "error", err)
		created = order
	}

	s.dispatch.SendToUser(caller.ID, realtime.OrderUpdate(created.ID, created.Status, statusMessages[created.Status]))
	s.dispatch.SendToRole(models.RoleVendor, realtime.NewOrder(created.ID, created.Status))

	return created, nil
}

// List returns the caller's orders, or every order for vendors. Newest
// first.
func (s *OrderService) List(caller *auth.Identity) ([]models.Order, error) {
	if caller == nil {
		return nil, apperr.Unauthenticated("Login required")
	}

	var (
		orders []models.Order
		err    error
	)
	if caller.Role == models.RoleVendor {
		orders, err = s.orders.All()
	} else {
		orders, err = s.orders.ByUser(caller.ID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

// GetByID returns one order, restricted to its owner or a vendor.
func (s *OrderService) GetByID(caller *auth.Identity, id uint) (models.Order, error) {
	if caller == nil {
		return models.Order{}, apperr.Unauthenticated("Login required")
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound("Order not found")
		}
		return models.Order{}, apperr.Internal(err)
	}

	if order.UserID != caller.ID && caller.Role != models.RoleVendor {
		return models.Order{}, apperr.Forbidden("You may only view your own orders")
	}
	return order, nil
}

// UpdateStatus moves the order along its lifecycle. Vendor only;
// transitions run forward only. The owner is notified of the change.
func (s *OrderService) UpdateStatus(caller *auth.Identity, id uint, status string) (models.Order, error) {
	if caller == nil {
		return models.Order{}, apperr.Unauthenticated("Login required")
	}
	if caller.Role != models.RoleVendor {
		return models.Order{}, apperr.Forbidden("Only vendors may update order status")
	}
	if !models.ValidStatus(status) {
		return models.Order{}, apperr.InvalidInput("Unknown order status: " + status)
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound("Order not found")
		}
		return models.Order{}, apperr.Internal(err)
	}

	if !models.CanTransition(order.Status, status) {
		return models.Order{}, apperr.InvalidState(
			fmt.Sprintf("Cannot move order from %s to %s", order.Status, status))
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return models.Order{}, apperr.Internal(err)
	}
	order.Status = status

	s.dispatch.SendToUser(order.UserID, realtime.OrderUpdate(order.ID, status, statusMessages[status]))

	return order, nil
}

// Cancel deletes the order and its items. Owner or vendor only;
// completed orders cannot be cancelled. A vendor-initiated cancel
// notifies the owner.
func (s *OrderService) Cancel(caller *auth.Identity, id uint) error {
	if caller == nil {
		return apperr.Unauthenticated("Login required")
	}

	order, err := s.orders.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Order not found")
		}
		return apperr.Internal(err)
	}

	if order.UserID != caller.ID && caller.Role != models.RoleVendor {
		return apperr.Forbidden("You may only cancel your own orders")
	}
	if order.Status == models.StatusCompleted {
		return apperr.InvalidState("A completed order cannot be cancelled")
	}

	if err := s.orders.Delete(id); err != nil {
		return apperr.Internal(err)
	}

	if caller.Role == models.RoleVendor {
		s.dispatch.SendToUser(order.UserID,
			realtime.OrderUpdate(order.ID, models.StatusCancelled, statusMessages[models.StatusCancelled]))
	}
	return nil
}
