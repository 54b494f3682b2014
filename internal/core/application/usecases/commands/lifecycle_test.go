package commands_test

import (
	"testing"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"
	"tableside/internal/pkg/errs"
	"tableside/internal/pkg/keyedmutex"

	"github.com/stretchr/testify/require"
)

// Walks a full dinner service through the command handlers: claim a table,
// order, cook, serve, pay. The second guest loses the table race, and after
// payment the table is free again.
func TestDinnerServiceLifecycle(t *testing.T) {
	ctx := t.Context()
	tenantID := kernel.NewUUID()
	store := newMemStore()
	locks := keyedmutex.New()
	publisher := new(recordingPublisher)

	tbl, err := table.NewTable(kernel.NewUUID(), tenantID, 12, 4)
	require.NoError(t, err)
	store.putTable(tbl)
	burger := seedMenuItem(t, store, tenantID, "Burger", "8.50")
	fries := seedMenuItem(t, store, tenantID, "Fries", "3.25")

	checkIn := commands.NewCheckInTableCommandHandler(&memTableUoWFactory{store: store}, locks, publisher)
	place := commands.NewPlaceOrderCommandHandler(&memUoWFactory{store: store}, publisher)
	advance := commands.NewAdvanceOrderCommandHandler(&memOrderUoWFactory{store: store}, locks, publisher)
	collect := commands.NewCollectPaymentCommandHandler(&memUoWFactory{store: store}, locks, publisher)

	customer := customerCaller(t, tenantID)

	// Alice wins the table, Bob is turned away.
	aliceCheckIn, err := commands.NewCheckInTableCommand(tbl.ID(), customer, "Alice")
	require.NoError(t, err)
	require.NoError(t, checkIn.Handle(ctx, aliceCheckIn))

	bobCheckIn, err := commands.NewCheckInTableCommand(tbl.ID(), customer, "Bob")
	require.NoError(t, err)
	require.ErrorIs(t, checkIn.Handle(ctx, bobCheckIn), errs.ErrTableOccupied)

	placeCmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), tbl.ID(), customer,
		[]commands.RequestedLine{
			{MenuItemID: burger.ID(), Quantity: 2},
			{MenuItemID: fries.ID(), Quantity: 2},
		})
	require.NoError(t, err)
	placed, err := place.Handle(ctx, placeCmd)
	require.NoError(t, err)
	require.True(t, placed.Total().IsEqual(mustMoney(t, "23.50")))
	require.Equal(t, "Alice", placed.OccupantName())

	kitchen := roleCaller(t, tenantID, kernel.RoleKitchen)
	waiter := roleCaller(t, tenantID, kernel.RoleWaiter)
	cashier := roleCaller(t, tenantID, kernel.RoleCashier)

	steps := []struct {
		caller kernel.Caller
		target order.Status
	}{
		{kitchen, order.Preparing},
		{kitchen, order.Ready},
		{waiter, order.Served},
	}
	for _, step := range steps {
		cmd, stepErr := commands.NewAdvanceOrderCommand(placed.ID(), step.caller, step.target)
		require.NoError(t, stepErr)
		require.NoError(t, advance.Handle(ctx, cmd))
	}

	payCmd, err := commands.NewCollectPaymentCommand(placed.ID(), cashier, commands.PaymentCard)
	require.NoError(t, err)
	require.NoError(t, collect.Handle(ctx, payCmd))

	finalOrder, err := (&memOrderRepo{store: store}).Get(ctx, placed.ID())
	require.NoError(t, err)
	require.Equal(t, order.Completed, finalOrder.Status())

	finalTable, err := (&memTableRepo{store: store}).Get(ctx, tbl.ID())
	require.NoError(t, err)
	require.Equal(t, table.Available, finalTable.Occupancy())

	// Bob can now take the freed table.
	require.NoError(t, checkIn.Handle(ctx, bobCheckIn))

	var kinds []ports.EventKind
	for _, e := range publisher.Events() {
		kinds = append(kinds, e.Kind)
	}
	// One occupancy change for each claim and release, one status change per
	// advanced edge, one placement.
	require.Equal(t, []ports.EventKind{
		ports.EventTableOccupancyChange,
		ports.EventOrderPlaced,
		ports.EventOrderStatusChanged,
		ports.EventOrderStatusChanged,
		ports.EventOrderStatusChanged,
		ports.EventOrderStatusChanged,
		ports.EventTableOccupancyChange,
		ports.EventTableOccupancyChange,
	}, kinds)
}
