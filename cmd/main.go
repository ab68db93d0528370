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
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	cancelReservationHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/delete_reservation"
	exportReservationsHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/export_reservations"
	getBookingCalendarHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_booking_calendar"
	getDashboardHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_dashboard"
	getMyReservationsHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_my_reservations"
	getReservationHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_reservation"
	getReservationDetailHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_reservation_detail"
	getWorkHistoryHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/get_work_history"
	listReservationsHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/list_reservations"
	listServiceMenusHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/list_service_menus"
	manageCalendarHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/manage_calendar"
	manageHolidaysHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/manage_holidays"
	manageServiceMenusHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/manage_service_menus"
	updateReservationHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/update_reservation"
	updateWorkHistoryHandler "github.com/m04kA/BikeRepair-BookingService/internal/api/handlers/update_work_history"
	"github.com/m04kA/BikeRepair-BookingService/internal/api/middleware"
	"github.com/m04kA/BikeRepair-BookingService/internal/config"
	"github.com/m04kA/BikeRepair-BookingService/internal/infra/filestorage"
	bikeInfoRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/bikeinfo"
	calendarRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/calendar"
	reservationRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	serviceMenuRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/servicemenu"
	workHistoryRepo "github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/workhistory"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/mailer"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/sms"
	userServiceClient "github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
	catalogService "github.com/m04kA/BikeRepair-BookingService/internal/service/catalog"
	notificationsService "github.com/m04kA/BikeRepair-BookingService/internal/service/notifications"
	reportService "github.com/m04kA/BikeRepair-BookingService/internal/service/report"
	reservationsService "github.com/m04kA/BikeRepair-BookingService/internal/service/reservations"
	createReservationUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
	getBookingCalendarUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/get_booking_calendar"
	sendRemindersUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/send_reminders"
	updateWorkHistoryUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/update_work_history"
	"github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
	"github.com/m04kA/BikeRepair-BookingService/pkg/metrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/txmanager"
)

func main() {
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

	log.Info("Starting BikeRepair-BookingService...")

	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Failed to load shop timezone %q: %v", cfg.Shop.Timezone, err)
	}
	timeProvider := &createReservationUC.RealTimeProvider{Location: location}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	bikeInfoRepository := bikeInfoRepo.NewRepository(wrappedDB)
	serviceMenuRepository := serviceMenuRepo.NewRepository(wrappedDB)
	calendarRepository := calendarRepo.NewRepository(wrappedDB)
	workHistoryRepository := workHistoryRepo.NewRepository(wrappedDB)

	// Хранилище фотографий
	photoStorage, err := filestorage.New(cfg.Storage.PhotoDir, cfg.Storage.PublicPrefix)
	if err != nil {
		log.Fatal("Failed to initialize photo storage: %v", err)
	}
	log.Info("Photo storage initialized at %s", photoStorage.Root())

	// Интеграции
	users, closeUsers := newUserClient(cfg, log)
	defer closeUsers()
	notifier := newNotifier(cfg, users, metricsCollector, log)

	// Use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		bikeInfoRepository,
		serviceMenuRepository,
		photoStorage,
		notifier,
		txMgr,
		metricsCollector,
		timeProvider,
		log,
	)
	getBookingCalendarUseCase := getBookingCalendarUC.NewUseCase(
		reservationRepository,
		calendarRepository,
		serviceMenuRepository,
		cfg.Shop.BookingHorizonDays,
		timeProvider,
		log,
	)
	updateWorkHistoryUseCase := updateWorkHistoryUC.NewUseCase(
		reservationRepository,
		workHistoryRepository,
		photoStorage,
		notifier,
		txMgr,
		log,
	)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		reservationRepository,
		notifier,
		metricsCollector,
		timeProvider,
		log,
	)

	// Сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		bikeInfoRepository,
		workHistoryRepository,
		serviceMenuRepository,
		photoStorage,
		txMgr,
		timeProvider,
		log,
	)
	catalogSvc := catalogService.NewService(
		serviceMenuRepository,
		reservationRepository,
		calendarRepository,
		txMgr,
		log,
	)
	reportSvc := reportService.NewService(reservationRepository, log)

	// Handlers
	maxUploadBytes := cfg.Storage.MaxUploadMB << 20

	createReservation := createReservationHandler.NewHandler(
		createReservationUseCase, getBookingCalendarUseCase, photoStorage.URL, maxUploadBytes, log)
	getBookingCalendar := getBookingCalendarHandler.NewHandler(getBookingCalendarUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getMyReservations := getMyReservationsHandler.NewHandler(reservationsSvc, log)
	listServiceMenus := listServiceMenusHandler.NewHandler(catalogSvc, log)

	getDashboard := getDashboardHandler.NewHandler(reservationsSvc, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	exportReservations := exportReservationsHandler.NewHandler(reportSvc, timeProvider, log)
	getReservationDetail := getReservationDetailHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(reservationsSvc, getBookingCalendarUseCase, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	getWorkHistory := getWorkHistoryHandler.NewHandler(updateWorkHistoryUseCase, photoStorage.URL, log)
	updateWorkHistory := updateWorkHistoryHandler.NewHandler(updateWorkHistoryUseCase, photoStorage.URL, maxUploadBytes, log)
	serviceMenus := manageServiceMenusHandler.NewHandler(catalogSvc, log)
	holidays := manageHolidaysHandler.NewHandler(catalogSvc, log)
	calendarSettings := manageCalendarHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Фотографии велосипедов и выполненных работ (без листинга каталогов)
	r.PathPrefix(cfg.Storage.PublicPrefix).Handler(
		http.StripPrefix(cfg.Storage.PublicPrefix, photoStorage.Handler()),
	).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Занятые слоты, нерабочие дни и меню для формы бронирования
	api.HandleFunc("/reservations/booking-calendar", getBookingCalendar.Handle).Methods(http.MethodGet)

	// Активные меню услуг
	api.HandleFunc("/service-menus", listServiceMenus.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{id:[0-9]+}/cancel", cancelReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/me/reservations", getMyReservations.Handle).Methods(http.MethodGet)

	// ============================================================
	// STAFF ROUTES (X-User-ID сотрудника мастерской)
	// ============================================================

	staff := protected.PathPrefix("").Subrouter()
	staff.Use(middleware.StaffOnly(users, log))

	// --- Бронирования ---
	staff.HandleFunc("/dashboard", getDashboard.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/reservations", listReservations.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/reservations/export", exportReservations.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/reservations/{id:[0-9]+}", getReservationDetail.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	staff.HandleFunc("/dashboard/reservations/{id:[0-9]+}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- История работ ---
	staff.HandleFunc("/dashboard/reservations/{id:[0-9]+}/work-history", getWorkHistory.Handle).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/reservations/{id:[0-9]+}/work-history", updateWorkHistory.Handle).Methods(http.MethodPost)

	// --- Меню услуг ---
	staff.HandleFunc("/dashboard/service-menus", serviceMenus.List).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/service-menus", serviceMenus.Create).Methods(http.MethodPost)
	staff.HandleFunc("/dashboard/service-menus/{id:[0-9]+}", serviceMenus.Update).Methods(http.MethodPut)
	staff.HandleFunc("/dashboard/service-menus/{id:[0-9]+}", serviceMenus.Delete).Methods(http.MethodDelete)

	// --- Календарь ---
	staff.HandleFunc("/dashboard/holidays", holidays.List).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/holidays", holidays.Create).Methods(http.MethodPost)
	staff.HandleFunc("/dashboard/holidays/{id:[0-9]+}", holidays.Update).Methods(http.MethodPut)
	staff.HandleFunc("/dashboard/holidays/{id:[0-9]+}", holidays.Delete).Methods(http.MethodDelete)
	staff.HandleFunc("/dashboard/time-slots", calendarSettings.ListTimeSlots).Methods(http.MethodGet)
	staff.HandleFunc("/dashboard/time-slots", calendarSettings.CreateTimeSlot).Methods(http.MethodPost)
	staff.HandleFunc("/dashboard/business-days/{date}", calendarSettings.SetBusinessDay).Methods(http.MethodPut)

	// Ежедневные напоминания по расписанию
	var scheduler *cron.Cron
	if cfg.Reminders.Enabled {
		scheduler = cron.New(cron.WithLocation(location))
		_, err := scheduler.AddFunc(cfg.Reminders.Schedule, func() {
			result, err := sendRemindersUseCase.Execute(context.Background())
			if err != nil {
				log.Error("Reminder batch failed: %v", err)
				return
			}
			log.Info("Reminder batch finished: date=%s total=%d sent=%d failed=%d",
				result.Date, result.Total, result.Sent, result.Failed)
		})
		if err != nil {
			log.Fatal("Invalid reminders schedule %q: %v", cfg.Reminders.Schedule, err)
		}
		scheduler.Start()
		log.Info("Reminder scheduler started (schedule=%q, timezone=%s)", cfg.Reminders.Schedule, location)
	}

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if scheduler != nil {
		// Дожидаемся текущей рассылки
		select {
		case <-scheduler.Stop().Done():
			log.Info("Reminder scheduler stopped")
		case <-shutdownCtx.Done():
			log.Warn("Reminder batch did not finish before shutdown timeout")
		}
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

// newUserClient создает клиент UserService, при включенном redis с кешем контактов
func newUserClient(cfg *config.Config, log *logger.Logger) (userServiceClient.UserGetter, func()) {
	client := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	if !cfg.Redis.Enabled || cfg.UserService.CacheTTL <= 0 {
		return client, func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis at %s is unavailable, contact cache disabled: %v", cfg.Redis.Addr, err)
		_ = rdb.Close()
		return client, func() {}
	}

	log.Info("Contact cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.UserService.CacheTTL)
	cached := userServiceClient.NewCachedClient(client, rdb, time.Duration(cfg.UserService.CacheTTL)*time.Second, log)
	return cached, func() { _ = rdb.Close() }
}

// newNotifier собирает диспетчер уведомлений из включенных каналов
func newNotifier(
	cfg *config.Config,
	users userServiceClient.UserGetter,
	metricsCollector *metrics.Metrics,
	log *logger.Logger,
) *notificationsService.Dispatcher {
	var (
		email notificationsService.EmailSender
		text  notificationsService.SMSSender
	)

	if cfg.SMTP.Enabled {
		email = mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		log.Info("Email notifications enabled (smtp=%s:%d)", cfg.SMTP.Host, cfg.SMTP.Port)
	}

	if cfg.SMS.Enabled {
		text = sms.New(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.From, log)
		log.Info("SMS notifications enabled (from=%s)", cfg.SMS.From)
	}

	if email == nil && text == nil {
		log.Warn("No notification channel is enabled, customers will not be notified")
	}

	return notificationsService.NewDispatcher(
		users,
		email,
		text,
		notificationsService.ShopInfo{
			Name:         cfg.Shop.Name,
			ContactPhone: cfg.Shop.ContactPhone,
			PublicURL:    cfg.Server.PublicURL,
		},
		metricsCollector,
		log,
	)
}
