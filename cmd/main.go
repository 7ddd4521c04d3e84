package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelOrderHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/cancel_order"
	createOrderHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/create_order"
	getOrderHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/get_order"
	getPriceSummaryHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/get_price_summary"
	getSeatsHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/get_seats"
	getStationsHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/get_stations"
	getUserOrdersHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/get_user_orders"
	searchTripsHandler "github.com/atabaev/TMR-BookingAgent/internal/api/handlers/search_trips"
	"github.com/atabaev/TMR-BookingAgent/internal/api/middleware"
	"github.com/atabaev/TMR-BookingAgent/internal/config"
	orderRepo "github.com/atabaev/TMR-BookingAgent/internal/infra/storage/orders"
	"github.com/atabaev/TMR-BookingAgent/internal/integrations/railways"
	ordersService "github.com/atabaev/TMR-BookingAgent/internal/service/orders"
	timetableService "github.com/atabaev/TMR-BookingAgent/internal/service/timetable"
	createOrderUC "github.com/atabaev/TMR-BookingAgent/internal/usecase/create_order"
	"github.com/atabaev/TMR-BookingAgent/pkg/logger"
	"github.com/atabaev/TMR-BookingAgent/pkg/metrics"
)

func main() {
	// .env опционален: в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TMR-BookingAgent...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента railway API
	var railwaysMetrics railways.Metrics
	if metricsCollector != nil {
		railwaysMetrics = metricsCollector
	}
	railwaysClient := railways.NewClient(
		cfg.Railways.Hostname,
		time.Duration(cfg.Railways.Timeout)*time.Second,
		log,
		railwaysMetrics,
	)
	defer railwaysClient.Close()
	log.Info("Railway API client initialized (hostname=%s timeout=%ds)",
		cfg.Railways.Hostname, cfg.Railways.Timeout)

	// Инициализируем репозиторий и сервисы
	orderRepository := orderRepo.NewRepository(db)

	timetableSvc := timetableService.NewService(railwaysClient, log)
	ordersSvc := ordersService.NewService(orderRepository, log)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		railwaysClient,
		orderRepository,
		&createOrderUC.RealTimeProvider{},
		log,
	)

	// Инициализируем handlers
	getStations := getStationsHandler.NewHandler(timetableSvc, log)
	searchTrips := searchTripsHandler.NewHandler(timetableSvc, log)
	getPriceSummary := getPriceSummaryHandler.NewHandler(timetableSvc, log)
	getSeats := getSeatsHandler.NewHandler(timetableSvc, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(ordersSvc, log)
	getUserOrders := getUserOrdersHandler.NewHandler(ordersSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Справочник станций
	api.HandleFunc("/stations", getStations.Handle).Methods(http.MethodGet)

	// Поиск рейсов
	api.HandleFunc("/trips/search", searchTrips.Handle).Methods(http.MethodPost)

	// Цены по рейсу (+ опциональный обратный рейс через ?inbound=)
	api.HandleFunc("/trips/{tripId}/price-summary", getPriceSummary.Handle).Methods(http.MethodGet)

	// Доступные места по рейсу
	api.HandleFunc("/trips/{tripId}/seats", getSeats.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Оформление заказа (бронирование билетов)
	protected.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// Получение заказа по ID
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// Отмена заказа
	protected.HandleFunc("/orders/{orderId}", cancelOrder.Handle).Methods(http.MethodDelete)

	// История заказов пользователя
	protected.HandleFunc("/users/{userId}/orders", getUserOrders.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
