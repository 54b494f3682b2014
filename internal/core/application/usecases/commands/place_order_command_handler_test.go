package commands_test

import (
	"testing"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/menu"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func seedMenuItem(t *testing.T, store *memStore, tenantID kernel.UUID, name, price string) *menu.MenuItem {
	t.Helper()
	item, err := menu.NewMenuItem(kernel.NewUUID(), tenantID, "mains", name, "", mustMoney(t, price))
	require.NoError(t, err)
	store.putMenuItem(item)
	return item
}

func seedOccupiedTable(t *testing.T, store *memStore, tenantID kernel.UUID, occupant string) *table.Table {
	t.Helper()
	tbl, err := table.NewTable(kernel.NewUUID(), tenantID, 7, 4)
	require.NoError(t, err)
	require.NoError(t, tbl.CheckIn(occupant))
	store.putTable(tbl)
	return tbl
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, tenantID, "Alice")
	burger := seedMenuItem(t, store, tenantID, "Burger", "8.50")
	fries := seedMenuItem(t, store, tenantID, "Fries", "3.25")

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, tenantID),
		[]commands.RequestedLine{
			{MenuItemID: burger.ID(), Quantity: 2},
			{MenuItemID: fries.ID(), Quantity: 2},
		})
	require.NoError(t, err)

	publisher := new(recordingPublisher)
	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, publisher)
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, order.Placed, placed.Status())
	require.Equal(t, "Alice", placed.OccupantName())
	require.True(t, placed.Total().IsEqual(mustMoney(t, "23.50")))

	// The order must carry a price snapshot, not a catalog reference.
	stored, err := (&memOrderRepo{store: store}).Get(ctx, placed.ID())
	require.NoError(t, err)
	require.Len(t, stored.Lines(), 2)
	require.True(t, stored.Total().IsEqual(mustMoney(t, "23.50")))

	events := publisher.Events()
	require.Len(t, events, 1)
	require.Equal(t, ports.EventOrderPlaced, events[0].Kind)
	require.Equal(t, placed.ID().String(), events[0].OrderID)
}

func TestPlaceOrderCommandHandler_Handle_PriceSnapshotSurvivesRepricing(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, tenantID, "Alice")
	burger := seedMenuItem(t, store, tenantID, "Burger", "8.50")

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, tenantID),
		[]commands.RequestedLine{{MenuItemID: burger.ID(), Quantity: 1}})
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, new(recordingPublisher))
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	repriced, err := menu.RestoreMenuItem(
		burger.ID(), tenantID, burger.Category(), burger.Name(), burger.Description(),
		mustMoney(t, "12.00"), true)
	require.NoError(t, err)
	store.putMenuItem(repriced)

	stored, err := (&memOrderRepo{store: store}).Get(ctx, placed.ID())
	require.NoError(t, err)
	require.True(t, stored.Total().IsEqual(mustMoney(t, "8.50")))
}

func TestPlaceOrderCommandHandler_Handle_UnknownMenuItem(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, tenantID, "Alice")

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, tenantID),
		[]commands.RequestedLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}})
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, new(recordingPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrItemUnavailable)
}

func TestPlaceOrderCommandHandler_Handle_UnavailableMenuItem(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, tenantID, "Alice")

	offMenu, err := menu.RestoreMenuItem(
		kernel.NewUUID(), tenantID, "mains", "Soup of Yesterday", "", mustMoney(t, "4.00"), false)
	require.NoError(t, err)
	store.putMenuItem(offMenu)

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, tenantID),
		[]commands.RequestedLine{{MenuItemID: offMenu.ID(), Quantity: 1}})
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, new(recordingPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrItemUnavailable)
}

func TestPlaceOrderCommandHandler_Handle_ForeignTenantMenuItem(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, tenantID, "Alice")
	foreign := seedMenuItem(t, store, kernel.NewUUID(), "Foreign Dish", "9.99")

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, tenantID),
		[]commands.RequestedLine{{MenuItemID: foreign.ID(), Quantity: 1}})
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, new(recordingPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrItemUnavailable)
}

func TestPlaceOrderCommandHandler_Handle_ForeignTenantTable(t *testing.T) {
	ctx := t.Context()
	store := newMemStore()
	tbl := seedOccupiedTable(t, store, kernel.NewUUID(), "Alice")
	otherTenant := kernel.NewUUID()
	item := seedMenuItem(t, store, otherTenant, "Burger", "8.50")

	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), tbl.ID(), customerCaller(t, otherTenant),
		[]commands.RequestedLine{{MenuItemID: item.ID(), Quantity: 1}})
	require.NoError(t, err)

	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, new(recordingPublisher))
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrScopeViolation)
}

func TestPlaceOrderCommand_RejectsEmptyAndZeroQuantityLines(t *testing.T) {
	tenantID := kernel.NewUUID()
	caller := customerCaller(t, tenantID)

	_, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), caller, nil)
	require.ErrorIs(t, err, commands.ErrRequestedLinesAreRequired)

	_, err = commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), caller,
		[]commands.RequestedLine{{MenuItemID: kernel.NewUUID(), Quantity: 0}})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	h := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: newMemStore()}, new(recordingPublisher))
	_, err := h.Handle(ctx, commands.PlaceOrderCommand{})
	require.Error(t, err)
}
