package domain

// Business validation constants
const (
	MinPassengersPerOrder = 1
	MaxPassengersPerOrder = 10
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных заказов
// Используется при фильтрации истории заказов
var InactiveStatuses = []OrderStatus{
	StatusExpired,
	StatusCancelled,
}

// ActiveStatuses список статусов активных заказов
var ActiveStatuses = []OrderStatus{
	StatusActive,
}
