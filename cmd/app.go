package cmd

import (
	"context"
	"fmt"
	"time"

	"clinichub/config"
	"clinichub/cron"
	"clinichub/database"
	appointmentRepo "clinichub/database/repository/appointment"
	doctorRepo "clinichub/database/repository/doctor"
	notificationRepo "clinichub/database/repository/notification"
	reportRepo "clinichub/database/repository/report"
	reviewRepo "clinichub/database/repository/review"
	serviceRepo "clinichub/database/repository/service"
	userRepo "clinichub/database/repository/user"
	"clinichub/handlers"
	"clinichub/services/appointment"
	"clinichub/services/catalogue"
	"clinichub/services/chat"
	"clinichub/services/doctor"
	"clinichub/services/notification"
	"clinichub/services/report"
	"clinichub/services/review"
	"clinichub/services/storage"
	"clinichub/services/tasks"
	"clinichub/services/user"
	"clinichub/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// app holds the wired services shared by every command.
type app struct {
	cfg           config.Config
	users         *user.DefaultUserService
	notifications *notification.DefaultNotificationService
	appointments  *appointment.DefaultAppointmentService
	doctors       *doctor.DefaultDoctorService
	catalogue     *catalogue.DefaultCatalogueService
	reviews       *review.DefaultReviewService
	reports       *report.DefaultReportService
	chat          *chat.DefaultChatService
	queue         *asynq.Client
}

// newApp connects to MongoDB and Redis and wires the services.
func newApp(ctx context.Context) (*app, error) {
	cfg := config.AppConfig
	logger := utils.GetLogger()

	if err := database.InitDB(); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	utils.InitRedis()
	db := database.DB()
	loc := config.Location()

	users := userRepo.NewMongoUserRepo(db)
	doctors := doctorRepo.NewMongoDoctorRepo(db)
	services := serviceRepo.NewMongoServiceRepo(db)
	appts := appointmentRepo.NewMongoAppointmentRepo(db)

	a := &app{cfg: cfg}
	a.users = &user.DefaultUserService{
		Repo:     users,
		Tokens:   user.NewRedisTokenCache(utils.GetAuthCacheClient()),
		TokenTTL: cfg.TokenTTL,
	}

	a.notifications = &notification.DefaultNotificationService{
		Repo:   notificationRepo.NewMongoNotificationRepo(db),
		Users:  users,
		Unread: notification.NewRedisUnreadCache(utils.GetCacheClient()),
	}
	fcm, err := utils.FirebaseMessaging(ctx)
	switch {
	case err != nil:
		logger.Warn("Push notifications disabled", zap.Error(err))
	case fcm != nil:
		a.notifications.Pusher = &notification.FCMPusher{Client: fcm}
	default:
		logger.Info("No Firebase credentials configured, push notifications disabled")
	}

	a.queue = asynq.NewClient(cron.RedisOpt(cfg))
	a.appointments = &appointment.DefaultAppointmentService{
		Repo:     appts,
		Doctors:  doctors,
		Users:    users,
		Services: services,
		Notifier: a.notifications,
		Reminders: &tasks.AsynqReminderScheduler{
			Client: a.queue,
			Lead:   cfg.ReminderLead,
		},
		Location:       loc,
		UpcomingWindow: cfg.UpcomingWindow,
	}

	a.doctors = &doctor.DefaultDoctorService{
		Repo:         doctors,
		Users:        users,
		Accounts:     a.users,
		Appointments: appts,
		Location:     loc,
	}
	if store, err := storage.NewCloudinaryStorage(cfg); err != nil {
		logger.Warn("Image uploads disabled", zap.Error(err))
	} else {
		a.doctors.Storage = store
	}

	a.catalogue = &catalogue.DefaultCatalogueService{Repo: services}
	a.reviews = &review.DefaultReviewService{
		Repo:         reviewRepo.NewMongoReviewRepo(db),
		Appointments: appts,
	}
	a.reports = &report.DefaultReportService{
		Repo:         reportRepo.NewMongoReportRepo(db),
		Appointments: appts,
		ClinicName:   cfg.ClinicName,
	}

	a.chat = &chat.DefaultChatService{
		Appointments: appts,
		Users:        users,
		APIKey:       cfg.StreamAPIKey,
		PollSeconds:  cfg.ChatPollSeconds,
	}
	if client, err := chat.NewStreamClient(cfg.StreamAPIKey, cfg.StreamAPISecret); err != nil {
		logger.Warn("Chat disabled", zap.Error(err))
	} else {
		a.chat.Client = client
	}
	return a, nil
}

// bundle assembles the HTTP handlers.
func (a *app) bundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		Auth:          a.users,
		MaxRequests:   a.cfg.MaxRequestsPerMin,
		AllowOrigins:  a.cfg.CORSOrigins,
		Users:         handlers.NewAuthHandler(a.users),
		Doctors:       handlers.NewDoctorHandler(a.doctors, a.reviews),
		Services:      handlers.NewServiceHandler(a.catalogue),
		Appointments:  handlers.NewAppointmentHandler(a.appointments),
		Reviews:       handlers.NewReviewHandler(a.reviews),
		Notifications: handlers.NewNotificationHandler(a.notifications, a.cfg.UnreadPollSeconds),
		Reports:       handlers.NewReportHandler(a.reports),
		Chat:          handlers.NewChatHandler(a.chat),
	}
}

func (a *app) close() {
	logger := utils.GetLogger()
	if a.queue != nil {
		if err := a.queue.Close(); err != nil {
			logger.Warn("Failed to close task queue client", zap.Error(err))
		}
	}
	utils.CloseRedis()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Close(ctx); err != nil {
		logger.Warn("Failed to disconnect MongoDB", zap.Error(err))
	}
}
