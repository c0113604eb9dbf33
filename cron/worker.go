package cron

import (
	"context"
	"fmt"
	"time"

	"clinichub/config"
	"clinichub/services/tasks"
	"clinichub/utils"

	"github.com/avast/retry-go/v4"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AppointmentJobs is what the worker needs from the appointment service.
type AppointmentJobs interface {
	tasks.ReminderSender
	tasks.StatusAdvancer
}

// RedisOpt returns the connection options of the task queue database.
func RedisOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// NewServeMux routes every task type to its handler.
func NewServeMux(jobs AppointmentJobs) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, tasks.HandleReminderTask(jobs))
	mux.HandleFunc(tasks.TypeAppointmentAdvance, tasks.HandleAdvanceTask(jobs))
	return mux
}

// Worker processes queued tasks and fires the periodic status sweep.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	sweepSpec string
}

// NewWorker builds the task server and the sweep scheduler.
func NewWorker(cfg config.Config, jobs AppointmentJobs) *Worker {
	redisOpt := RedisOpt(cfg)
	logger := utils.GetLogger()

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"default": 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: config.Location(),
	})

	spec := cfg.SweepSpec
	if spec == "" {
		spec = "@every 5m"
	}
	return &Worker{
		server:    srv,
		scheduler: scheduler,
		mux:       NewServeMux(jobs),
		sweepSpec: spec,
	}
}

// Run starts the worker and blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	logger := utils.GetLogger()

	entryID, err := w.scheduler.Register(w.sweepSpec, tasks.NewAdvanceTask(), asynq.Unique(time.Minute))
	if err != nil {
		return fmt.Errorf("failed to register status sweep: %w", err)
	}
	logger.Info("Status sweep registered", zap.String("spec", w.sweepSpec), zap.String("entryID", entryID))

	err = retry.Do(
		func() error { return w.server.Start(w.mux) },
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Worker failed to start, retrying", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	logger.Info("Worker started")

	<-ctx.Done()
	logger.Info("Worker shutting down")
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}
