package order_test

import (
	"testing"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFromString(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want order.Status
	}{
		{"placed", order.Placed},
		{"preparing", order.Preparing},
		{"ready", order.Ready},
		{"served", order.Served},
		{"completed", order.Completed},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := order.StatusFromString(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := order.StatusFromString("cancelled")
		require.Error(t, err)
	})

	t.Run("rejects mixed case", func(t *testing.T) {
		_, err := order.StatusFromString("Placed")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, order.Placed.Validate())
	require.NoError(t, order.Completed.Validate())
	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(99).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "preparing", order.Preparing.String())
	assert.Equal(t, "unknown", order.Status(42).String())
}

func TestStatus_Advance_LegalEdges(t *testing.T) {
	for _, tc := range []struct {
		name string
		from order.Status
		to   order.Status
		role kernel.Role
	}{
		{"kitchen starts cooking", order.Placed, order.Preparing, kernel.RoleKitchen},
		{"kitchen finishes", order.Preparing, order.Ready, kernel.RoleKitchen},
		{"waiter serves", order.Ready, order.Served, kernel.RoleWaiter},
		{"cashier completes after serve", order.Served, order.Completed, kernel.RoleCashier},
		{"cashier completes straight from ready", order.Ready, order.Completed, kernel.RoleCashier},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.from.Advance(tc.to, tc.role)
			require.NoError(t, err)
			assert.Equal(t, tc.to, got)
		})
	}
}

func TestStatus_Advance_IdempotentReplay(t *testing.T) {
	// Replaying the current status is a no-op success regardless of role.
	for _, s := range []order.Status{order.Placed, order.Preparing, order.Ready, order.Served, order.Completed} {
		got, err := s.Advance(s, kernel.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestStatus_Advance_IllegalEdges(t *testing.T) {
	for _, tc := range []struct {
		name string
		from order.Status
		to   order.Status
		role kernel.Role
	}{
		{"skipping preparing and ready", order.Placed, order.Served, kernel.RoleWaiter},
		{"skipping straight to completed", order.Placed, order.Completed, kernel.RoleCashier},
		{"regression to placed", order.Served, order.Placed, kernel.RoleKitchen},
		{"regression to ready", order.Completed, order.Ready, kernel.RoleCashier},
		{"waiter cannot start cooking", order.Placed, order.Preparing, kernel.RoleWaiter},
		{"kitchen cannot serve", order.Ready, order.Served, kernel.RoleKitchen},
		{"customer cannot complete", order.Served, order.Completed, kernel.RoleCustomer},
		{"operator holds no edge permission", order.Placed, order.Preparing, kernel.RoleOperator},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.from.Advance(tc.to, tc.role)
			require.ErrorIs(t, err, errs.ErrIllegalTransition)
		})
	}
}

func TestStatus_Advance_InvalidStates(t *testing.T) {
	_, err := order.Unknown.Advance(order.Placed, kernel.RoleKitchen)
	require.Error(t, err)

	_, err = order.Placed.Advance(order.Unknown, kernel.RoleKitchen)
	require.Error(t, err)
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Completed.IsTerminal())
	assert.False(t, order.Served.IsTerminal())
}
