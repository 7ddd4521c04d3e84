package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	orderRepo "github.com/atabaev/TMR-BookingAgent/internal/infra/storage/orders"
	"github.com/atabaev/TMR-BookingAgent/internal/service/orders/models"
)

type fakeRepo struct {
	orders        map[int64]*domain.Order
	getErr        error
	updatedID     int64
	updatedStatus domain.OrderStatus
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *fakeRepo) GetByUserID(_ context.Context, userID int64, status *domain.OrderStatus) ([]*domain.Order, error) {
	var result []*domain.Order
	for _, order := range r.orders {
		if order.UserID != userID {
			continue
		}
		if status != nil && order.Status != *status {
			continue
		}
		copied := *order
		result = append(result, &copied)
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return orderRepo.ErrOrderNotFound
	}
	order.Status = status
	r.updatedID = id
	r.updatedStatus = status
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testOrder(id, userID int64, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		ID:             id,
		UserID:         userID,
		BookingNumber:  "BN-1001",
		OrderNumber:    "ORD-1001",
		FormURL:        "https://pay.example.com/form/1001",
		ExpireTime:     time.Date(2026, 9, 1, 13, 0, 0, 0, time.UTC),
		Source:         "Aşgabat",
		Destination:    "Mary",
		TravelDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		PassengerCount: 2,
		Status:         status,
		CreatedAt:      time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt:      time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestGetByID(t *testing.T) {
	repo := &fakeRepo{orders: map[int64]*domain.Order{
		10: testOrder(10, 7, domain.StatusActive),
	}}
	svc := NewService(repo, nopLogger{})

	t.Run("owner gets order", func(t *testing.T) {
		order, err := svc.GetByID(context.Background(), 10, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(10), order.ID)
		assert.Equal(t, "BN-1001", order.BookingNumber)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 999, 7)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("foreign order denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 10, 8)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestGetUserOrders_StatusFilter(t *testing.T) {
	repo := &fakeRepo{orders: map[int64]*domain.Order{
		10: testOrder(10, 7, domain.StatusActive),
		11: testOrder(11, 7, domain.StatusCancelled),
		12: testOrder(12, 8, domain.StatusActive),
	}}
	svc := NewService(repo, nopLogger{})

	all, err := svc.GetUserOrders(context.Background(), &models.GetUserOrdersRequest{UserID: 7})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	status := "cancelled"
	cancelled, err := svc.GetUserOrders(context.Background(), &models.GetUserOrdersRequest{UserID: 7, Status: &status})
	require.NoError(t, err)
	require.Equal(t, 1, cancelled.Total)
	assert.Equal(t, int64(11), cancelled.Orders[0].ID)

	bad := "paid"
	_, err = svc.GetUserOrders(context.Background(), &models.GetUserOrdersRequest{UserID: 7, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	t.Run("active order cancelled", func(t *testing.T) {
		repo := &fakeRepo{orders: map[int64]*domain.Order{
			10: testOrder(10, 7, domain.StatusActive),
		}}
		svc := NewService(repo, nopLogger{})

		require.NoError(t, svc.Cancel(context.Background(), 10, 7))
		assert.Equal(t, domain.StatusCancelled, repo.updatedStatus)
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo := &fakeRepo{orders: map[int64]*domain.Order{
			10: testOrder(10, 7, domain.StatusCancelled),
		}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 7)
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("foreign order denied", func(t *testing.T) {
		repo := &fakeRepo{orders: map[int64]*domain.Order{
			10: testOrder(10, 7, domain.StatusActive),
		}}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 8)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("repository failure wrapped", func(t *testing.T) {
		repo := &fakeRepo{getErr: errors.New("connection refused")}
		svc := NewService(repo, nopLogger{})

		err := svc.Cancel(context.Background(), 10, 7)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
