package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/domain/services"
)

func newReadyOrder(t *testing.T) *order.Order {
	t.Helper()

	address, err := kernel.NewAddress("Av. Los Leones 220", "Providencia", "Santiago", "", nil)
	require.NoError(t, err)

	price, err := kernel.NewMoney(2490)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Empanada de pino", 2, price)
	require.NoError(t, err)

	fee, err := kernel.NewMoney(1500)
	require.NoError(t, err)

	o, err := order.NewOrder(order.NewOrderParams{
		ID:          kernel.NewUUID(),
		ClientID:    kernel.NewUUID(),
		ShopID:      kernel.NewUUID(),
		Items:       []order.Item{item},
		Address:     address,
		DeliveryFee: fee,
	})
	require.NoError(t, err)

	for _, next := range []order.Status{order.StatusConfirmed, order.StatusPreparing, order.StatusReady} {
		require.NoError(t, o.TransitionTo(next))
	}
	return o
}

func newCourier(t *testing.T, active bool) *user.User {
	t.Helper()
	u, err := user.RestoreUser(kernel.NewUUID(), "Pedro Rojas", "pedro@correo.cl", user.RoleCourier, active, "tok-pedro")
	require.NoError(t, err)
	return u
}

func TestCourierDispatch_Assign(t *testing.T) {
	dispatch := services.NewCourierDispatch()

	t.Run("assigns an active courier to a ready order", func(t *testing.T) {
		o := newReadyOrder(t)
		courier := newCourier(t, true)

		err := dispatch.Assign(o, courier)

		require.NoError(t, err)
		assert.Equal(t, order.StatusInDelivery, o.Status())
		require.NotNil(t, o.Courier())
		assert.True(t, o.Courier().IsEqual(courier.ID()))
	})

	t.Run("rejects an inactive courier", func(t *testing.T) {
		o := newReadyOrder(t)
		courier := newCourier(t, false)

		err := dispatch.Assign(o, courier)

		require.Error(t, err)
		assert.Equal(t, order.StatusReady, o.Status())
		assert.Nil(t, o.Courier())
	})

	t.Run("rejects a user without the courier role", func(t *testing.T) {
		o := newReadyOrder(t)
		client, err := user.RestoreUser(kernel.NewUUID(), "Ana Soto", "ana@correo.cl", user.RoleClient, true, "tok-ana")
		require.NoError(t, err)

		err = dispatch.Assign(o, client)

		require.Error(t, err)
		assert.Equal(t, order.StatusReady, o.Status())
	})

	t.Run("rejects an order that is not ready", func(t *testing.T) {
		o := newReadyOrder(t)
		courier := newCourier(t, true)
		require.NoError(t, dispatch.Assign(o, courier))

		other := newCourier(t, true)
		err := dispatch.Assign(o, other)

		require.Error(t, err)
		assert.True(t, o.Courier().IsEqual(courier.ID()))
	})
}
