package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/adapters/config"
	postgresStorage "github.com/eventlocator/backend/internal/adapters/database/postgres"
	redisStorage "github.com/eventlocator/backend/internal/adapters/database/redis"
	"github.com/eventlocator/backend/internal/adapters/logger"
	"github.com/eventlocator/backend/internal/domain/service"
	"github.com/eventlocator/backend/pkg/smtp"
)

// App wires storages, services and the delivery worker together.
type App struct {
	DB     *gorm.DB
	Redis  *redisStorage.Client
	Mailer *smtp.Client
	Logger *logger.Logger

	UserService       *service.UserService
	EventService      *service.EventService
	CategoryService   *service.CategoryService
	PreferenceService *service.PreferenceService
	ReminderService   *service.ReminderService

	worker *service.DeliveryWorker
}

func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.Named("app")
	if err != nil {
		return nil, err
	}
	workerLogger, err := logger.Named("worker")
	if err != nil {
		return nil, err
	}

	offsets, err := service.ParseOffsets(cfg.Notifications.Offsets)
	if err != nil {
		return nil, err
	}

	mailer := smtp.NewClient(cfg.SMTPDialer)

	userStorage := postgresStorage.NewUserStorage(cfg.Database)
	eventStorage := postgresStorage.NewEventStorage(cfg.Database)
	categoryStorage := postgresStorage.NewCategoryStorage(cfg.Database)
	preferenceStorage := postgresStorage.NewPreferenceStorage(cfg.Database)
	favoriteStorage := postgresStorage.NewFavoriteStorage(cfg.Database)
	reviewStorage := postgresStorage.NewReviewStorage(cfg.Database)
	notificationStorage := postgresStorage.NewNotificationStorage(cfg.Database)

	preferenceService := service.NewPreferenceService(preferenceStorage)
	reminderService := service.NewReminderService(preferenceService, cfg.Redis.Reminders, offsets)
	notifyService := service.NewNotifyService(userStorage, eventStorage, mailer)

	worker := service.NewDeliveryWorker(
		cfg.Redis.Reminders,
		notifyService,
		notificationStorage,
		workerLogger,
		service.WorkerOptions{
			PollInterval: cfg.Notifications.PollInterval,
			MaxAttempts:  cfg.Notifications.MaxAttempts,
			MaxInFlight:  cfg.Notifications.MaxInFlight,
		},
	)

	return &App{
		DB:     cfg.Database,
		Redis:  cfg.Redis,
		Mailer: mailer,
		Logger: appLogger,

		UserService:       service.NewUserService(userStorage, preferenceStorage, cfg.Redis.Reminders, mailer, appLogger),
		EventService:      service.NewEventService(eventStorage, favoriteStorage, reviewStorage, categoryStorage, reminderService, appLogger),
		CategoryService:   service.NewCategoryService(categoryStorage),
		PreferenceService: preferenceService,
		ReminderService:   reminderService,

		worker: worker,
	}, nil
}

// Start runs the delivery worker until the process receives SIGINT or
// SIGTERM. The current tick finishes before Start returns.
func (a *App) Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Logger.Info("Event locator starting")
	a.worker.Run(ctx)
	a.Logger.Info("Event locator stopped")
}
