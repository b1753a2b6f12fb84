package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

func TestAssignCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	owner := user.Principal{ID: kernel.NewUUID(), Role: user.RoleShopOwner}
	owned := testShop(t, owner.ID)
	clientID := kernel.NewUUID()
	o := testOrder(t, clientID, owned.ID(), order.StatusReady)
	courier := testCourierUser(t, true)

	cmd, err := commands.NewAssignCourierCommand(owner, o.ID(), courier.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)
	publisher := new(MockPublisher)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, owned.ID()).Return(owned, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		orderRepo.On("Update", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventOrderAssigned && e.Rooms[0] == ports.RoomCourier(courier.ID())
	})).Once()
	publisher.On("Publish", ctx, mock.MatchedBy(func(e ports.Event) bool {
		return e.Name == ports.EventOrderStatusUpdated && e.Rooms[0] == ports.RoomClient(clientID)
	})).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, publisher)
	assigned, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusInDelivery, assigned.Status())
	require.NotNil(t, assigned.Courier())
	assert.True(t, assigned.Courier().IsEqual(courier.ID()))
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestAssignCourierCommandHandler_Handle_InactiveCourier(t *testing.T) {
	ctx := t.Context()

	admin := user.Principal{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	o := testOrder(t, kernel.NewUUID(), kernel.NewUUID(), order.StatusReady)
	courier := testCourierUser(t, false)

	cmd, err := commands.NewAssignCourierCommand(admin, o.ID(), courier.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("UserRepository").Return(userRepo).Once(),
		userRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, new(MockPublisher))
	assigned, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Nil(t, assigned)
	assert.Equal(t, order.StatusReady, o.Status())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAssignCourierCommandHandler_Handle_ForbiddenForOtherShopOwner(t *testing.T) {
	ctx := t.Context()

	stranger := user.Principal{ID: kernel.NewUUID(), Role: user.RoleShopOwner}
	owned := testShop(t, kernel.NewUUID())
	o := testOrder(t, kernel.NewUUID(), owned.ID(), order.StatusReady)

	cmd, err := commands.NewAssignCourierCommand(stranger, o.ID(), kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	shopRepo := new(MockShopRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		uow.On("ShopRepository").Return(shopRepo).Once(),
		shopRepo.On("Get", ctx, owned.ID()).Return(owned, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, new(MockPublisher))
	assigned, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrForbidden)
	assert.Nil(t, assigned)
}

func TestAssignCourierCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()

	admin := user.Principal{ID: kernel.NewUUID(), Role: user.RoleAdmin}
	orderID := kernel.NewUUID()

	cmd, err := commands.NewAssignCourierCommand(admin, orderID, kernel.NewUUID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("orderId", orderID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAssignCourierCommandHandler(factory, new(MockPublisher))
	assigned, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, assigned)
}
