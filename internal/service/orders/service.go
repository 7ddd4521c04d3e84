package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
	orderRepo "github.com/atabaev/TMR-BookingAgent/internal/infra/storage/orders"
	"github.com/atabaev/TMR-BookingAgent/internal/service/orders/models"
)

// Service сервис для работы с историей заказов
type Service struct {
	orderRepo OrderRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса заказов
func NewService(orderRepo OrderRepository, logger Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// GetByID получает заказ по ID.
// Пользователь видит только собственные заказы.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.OrderResponse, error) {
	s.logger.Info("GetByID: fetching order id=%d for user=%d", id, userID)

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("GetByID: order id=%d not found", id)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("GetByID: repository error for order id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if order.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to order id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainOrder(order), nil
}

// GetUserOrders получает историю заказов пользователя.
// Опционально фильтрует по статусу.
func (s *Service) GetUserOrders(ctx context.Context, req *models.GetUserOrdersRequest) (*models.OrderListResponse, error) {
	s.logger.Info("GetUserOrders: fetching orders for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.OrderStatus
	if req.Status != nil {
		status, err := models.ToDomainOrderStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserOrders: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	orders, err := s.orderRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserOrders: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserOrders - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserOrders: fetched %d orders for user=%d", len(orders), req.UserID)
	return models.FromDomainOrderList(orders), nil
}

// Cancel отменяет активный заказ пользователя
func (s *Service) Cancel(ctx context.Context, id int64, userID int64) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if order.UserID != userID {
		return ErrAccessDenied
	}
	if !order.CanBeCancelled() {
		return ErrCannotCancel
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, domain.StatusCancelled); err != nil {
		return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: order id=%d cancelled by user=%d", id, userID)
	return nil
}
