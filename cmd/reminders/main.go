// Команда reminders разово рассылает напоминания о завтрашних бронированиях.
// Предназначена для внешнего ежедневного планировщика (cron, Kubernetes CronJob).
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/BikeRepair-BookingService/internal/config"
	"github.com/m04kA/BikeRepair-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/mailer"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/sms"
	"github.com/m04kA/BikeRepair-BookingService/internal/integrations/userservice"
	"github.com/m04kA/BikeRepair-BookingService/internal/service/notifications"
	createReservationUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/create_reservation"
	sendRemindersUC "github.com/m04kA/BikeRepair-BookingService/internal/usecase/send_reminders"
	"github.com/m04kA/BikeRepair-BookingService/pkg/dbmetrics"
	"github.com/m04kA/BikeRepair-BookingService/pkg/logger"
	"github.com/m04kA/BikeRepair-BookingService/pkg/metrics"
)

const batchTimeout = 10 * time.Minute

func main() {
	configPath := flag.String("config", "config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	location, err := cfg.Shop.Location()
	if err != nil {
		log.Fatal("Failed to load shop timezone %q: %v", cfg.Shop.Timezone, err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	var (
		email notifications.EmailSender
		text  notifications.SMSSender
	)
	if cfg.SMTP.Enabled {
		email = mailer.New(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	if cfg.SMS.Enabled {
		text = sms.New(cfg.SMS.AccountSID, cfg.SMS.AuthToken, cfg.SMS.From, log)
	}

	// Разовый запуск не публикует метрики
	var noMetrics *metrics.Metrics

	users := userservice.NewClient(cfg.UserService.URL, time.Duration(cfg.UserService.Timeout)*time.Second, log)
	notifier := notifications.NewDispatcher(
		users,
		email,
		text,
		notifications.ShopInfo{
			Name:         cfg.Shop.Name,
			ContactPhone: cfg.Shop.ContactPhone,
			PublicURL:    cfg.Server.PublicURL,
		},
		noMetrics,
		log,
	)

	useCase := sendRemindersUC.NewUseCase(
		reservation.NewRepository(dbmetrics.Wrap(db, nil)),
		notifier,
		noMetrics,
		&createReservationUC.RealTimeProvider{Location: location},
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	result, err := useCase.Execute(ctx)
	if err != nil {
		log.Error("Reminder batch failed: %v", err)
		os.Exit(1)
	}

	// Итог в stdout для внешнего планировщика
	_ = json.NewEncoder(os.Stdout).Encode(result)

	if result.Failed > 0 {
		log.Warn("Reminder batch finished with failures: sent=%d failed=%d", result.Sent, result.Failed)
	}
}
