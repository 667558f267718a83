package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashrith-07/campus-bites-sub000/app/models"
	"github.com/ashrith-07/campus-bites-sub000/pkg/apperr"
	"github.com/ashrith-07/campus-bites-sub000/pkg/testkit"
)

func TestCheckoutValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)
	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)

	_, err := svc.Checkout(nil, 100, []CheckoutItem{{MenuItemID: 1, Quantity: 1}})
	assert.True(t, apperr.Is(err, "UNAUTHENTICATED"))

	_, err = svc.Checkout(customer, 100, nil)
	assert.True(t, apperr.Is(err, "INVALID_INPUT"), "empty cart")

	_, err = svc.Checkout(customer, 100, []CheckoutItem{{MenuItemID: 1, Quantity: 0}})
	assert.True(t, apperr.Is(err, "INVALID_INPUT"), "zero quantity")

	_, err = svc.Checkout(customer, 0, []CheckoutItem{{MenuItemID: 1, Quantity: 1}})
	assert.True(t, apperr.Is(err, "INVALID_INPUT"), "zero total")

	ref, err := svc.Checkout(customer, 250, []CheckoutItem{{MenuItemID: 1, Quantity: 2}})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "pi_"), "got %q", ref)
}

// Scenario: checkout then confirm creates a PENDING order and pushes an
// order-update to the owner plus a new-order to the vendor group.
func TestConfirmCreatesPendingOrderAndNotifies(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Masala Dosa", 125)

	ownerConn := f.connect(customer.ID, customer.Role)
	vendorConn := f.connect(vendor.ID, vendor.Role)

	ref, err := svc.Checkout(customer, 250, []CheckoutItem{{MenuItemID: item.ID, Quantity: 2}})
	require.NoError(t, err)

	order, err := svc.Confirm(customer, 250, []CheckoutItem{{MenuItemID: item.ID, Quantity: 2}}, ref)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 250.0, order.Total)
	assert.Equal(t, ref, order.PaymentRef)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, item.Name, order.Items[0].MenuItem.Name)

	ownerEvents := ownerConn.events(t)
	require.Len(t, ownerEvents, 1)
	assert.Equal(t, "order-update", ownerEvents[0].Event)
	assert.Equal(t, models.StatusPending, ownerEvents[0].Data.Status)
	assert.Equal(t, order.ID, ownerEvents[0].Data.OrderID)

	vendorEvents := vendorConn.events(t)
	require.Len(t, vendorEvents, 1)
	assert.Equal(t, "new-order", vendorEvents[0].Event)
	assert.Equal(t, order.ID, vendorEvents[0].Data.OrderID)
}

func TestConfirmSnapshotsUnitPrice(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	item := testkit.SeedMenuItem(t, f.db, "Cold Coffee", 60)

	order, err := svc.Confirm(customer, 120, []CheckoutItem{{MenuItemID: item.ID, Quantity: 2}}, "pi_test")
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 60.0, order.Items[0].UnitPrice)

	// A later price hike must not rewrite the recorded order.
	item.Price = 90
	require.NoError(t, f.db.Save(&item).Error)

	reloaded, err := svc.GetByID(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, 60.0, reloaded.Items[0].UnitPrice)
}

func TestConfirmRejectsUnknownMenuItem(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)
	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)

	_, err := svc.Confirm(customer, 100, []CheckoutItem{{MenuItemID: 999, Quantity: 1}}, "pi_test")
	assert.True(t, apperr.Is(err, "INVALID_INPUT"))
}

func TestListScopesByRole(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, alice := testkit.SeedUser(t, f.db, "alice@campus.dev", models.RoleCustomer)
	_, bob := testkit.SeedUser(t, f.db, "bob@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	_, err := svc.Confirm(alice, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)
	_, err = svc.Confirm(bob, 60, []CheckoutItem{{MenuItemID: item.ID, Quantity: 2}}, "pi_b")
	require.NoError(t, err)

	aliceOrders, err := svc.List(alice)
	require.NoError(t, err)
	require.Len(t, aliceOrders, 1)
	assert.Equal(t, alice.ID, aliceOrders[0].UserID)

	vendorOrders, err := svc.List(vendor)
	require.NoError(t, err)
	assert.Len(t, vendorOrders, 2, "vendors see every order")
}

func TestGetByIDOwnership(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, alice := testkit.SeedUser(t, f.db, "alice@campus.dev", models.RoleCustomer)
	_, bob := testkit.SeedUser(t, f.db, "bob@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(alice, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	_, err = svc.GetByID(alice, order.ID)
	assert.NoError(t, err, "owner may read")

	_, err = svc.GetByID(vendor, order.ID)
	assert.NoError(t, err, "vendor may read")

	_, err = svc.GetByID(bob, order.ID)
	assert.True(t, apperr.Is(err, "FORBIDDEN"))

	_, err = svc.GetByID(alice, 9999)
	assert.True(t, apperr.Is(err, "NOT_FOUND"))
}

func TestUpdateStatusByCustomerIsForbiddenAndLeavesStatusUnchanged(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(customer, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(customer, order.ID, models.StatusProcessing)
	assert.True(t, apperr.Is(err, "FORBIDDEN"))

	reloaded, err := svc.GetByID(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, reloaded.Status, "status must be unchanged after the rejected call")
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(customer, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(vendor, order.ID, "SHIPPED")
	assert.True(t, apperr.Is(err, "INVALID_INPUT"), "unknown status")

	_, err = svc.UpdateStatus(vendor, order.ID, models.StatusReady)
	assert.True(t, apperr.Is(err, "INVALID_STATE"), "PENDING cannot skip to READY")

	_, err = svc.UpdateStatus(vendor, order.ID, models.StatusProcessing)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(vendor, order.ID, models.StatusPending)
	assert.True(t, apperr.Is(err, "INVALID_STATE"), "no backward transition")
}

// Scenario: READY pushes an order-update whose message mentions pickup.
func TestUpdateStatusReadyNotifiesOwner(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(customer, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	ownerConn := f.connect(customer.ID, customer.Role)

	_, err = svc.UpdateStatus(vendor, order.ID, models.StatusProcessing)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(vendor, order.ID, models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, updated.Status)

	events := ownerConn.events(t)
	require.Len(t, events, 2)
	last := events[1]
	assert.Equal(t, "order-update", last.Event)
	assert.Equal(t, models.StatusReady, last.Data.Status)
	assert.Contains(t, last.Data.Message, "ready for pickup")
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, alice := testkit.SeedUser(t, f.db, "alice@campus.dev", models.RoleCustomer)
	_, bob := testkit.SeedUser(t, f.db, "bob@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(alice, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	err = svc.Cancel(bob, order.ID)
	assert.True(t, apperr.Is(err, "FORBIDDEN"))

	ownerConn := f.connect(alice.ID, alice.Role)

	require.NoError(t, svc.Cancel(vendor, order.ID))

	events := ownerConn.events(t)
	require.Len(t, events, 1, "vendor-initiated cancel notifies the owner")
	assert.Equal(t, "order-update", events[0].Event)
	assert.Equal(t, models.StatusCancelled, events[0].Data.Status)

	_, err = svc.GetByID(vendor, order.ID)
	assert.True(t, apperr.Is(err, "NOT_FOUND"), "order and items are gone")
}

func TestCancelCompletedOrderIsInvalidState(t *testing.T) {
	f := newFixture(t)
	svc := NewOrderService(f.orders, f.menu, f.dispatch)

	_, customer := testkit.SeedUser(t, f.db, "c@campus.dev", models.RoleCustomer)
	_, vendor := testkit.SeedUser(t, f.db, "v@campus.dev", models.RoleVendor)
	item := testkit.SeedMenuItem(t, f.db, "Samosa", 30)

	order, err := svc.Confirm(customer, 30, []CheckoutItem{{MenuItemID: item.ID, Quantity: 1}}, "pi_a")
	require.NoError(t, err)

	for _, status := range []string{models.StatusProcessing, models.StatusReady, models.StatusCompleted} {
		_, err = svc.UpdateStatus(vendor, order.ID, status)
		require.NoError(t, err)
	}

	err = svc.Cancel(customer, order.ID)
	assert.True(t, apperr.Is(err, "INVALID_STATE"))

	reloaded, err := svc.GetByID(customer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, reloaded.Status)
}
