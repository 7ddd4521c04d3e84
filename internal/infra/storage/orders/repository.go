package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/atabaev/TMR-BookingAgent/internal/domain"
)

// psql squirrel builder с PostgreSQL плейсхолдерами
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var orderColumns = []string{
	"id",
	"user_id",
	"booking_number",
	"order_number",
	"form_url",
	"expire_time",
	"source",
	"destination",
	"travel_date",
	"passenger_count",
	"round_trip",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами билетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет подтвержденный заказ
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query, args, err := psql.Insert("orders").
		Columns(
			"user_id",
			"booking_number",
			"order_number",
			"form_url",
			"expire_time",
			"source",
			"destination",
			"travel_date",
			"passenger_count",
			"round_trip",
			"status",
		).
		Values(
			order.UserID,
			order.BookingNumber,
			order.OrderNumber,
			order.FormURL,
			order.ExpireTime,
			order.Source,
			order.Destination,
			order.TravelDate,
			order.PassengerCount,
			order.RoundTrip,
			order.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return order, nil
}

// GetByID получает заказ по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query, args, err := psql.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var order domain.Order
	var createdAt, updatedAt sql.NullTime

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&order.ID,
		&order.UserID,
		&order.BookingNumber,
		&order.OrderNumber,
		&order.FormURL,
		&order.ExpireTime,
		&order.Source,
		&order.Destination,
		&order.TravelDate,
		&order.PassengerCount,
		&order.RoundTrip,
		&order.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}

// GetByUserID получает историю заказов пользователя, новые первыми.
// Опционально фильтрует по статусу.
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.OrderStatus) ([]*domain.Order, error) {
	selectBuilder := psql.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanOrders(rows)
}

// UpdateStatus обновляет статус заказа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	switch status {
	case domain.StatusActive, domain.StatusExpired, domain.StatusCancelled:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	query, args, err := psql.Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// scanOrders сканирует результаты запроса в слайс заказов
func (r *Repository) scanOrders(rows *sql.Rows) ([]*domain.Order, error) {
	orders := make([]*domain.Order, 0)

	for rows.Next() {
		var order domain.Order
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.BookingNumber,
			&order.OrderNumber,
			&order.FormURL,
			&order.ExpireTime,
			&order.Source,
			&order.Destination,
			&order.TravelDate,
			&order.PassengerCount,
			&order.RoundTrip,
			&order.Status,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanOrders - scan row: %v", ErrScanRow, err)
		}

		order.CreatedAt = createdAt.Time
		order.UpdatedAt = updatedAt.Time

		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanOrders - rows error: %v", ErrScanRow, err)
	}

	return orders, nil
}
