package cron

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"
	"rideconnect/services/calendar"
	"rideconnect/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// CalendarSyncHandler applies queued calendar changes and records the outcome
// on the booking.
type CalendarSyncHandler struct {
	Bookings bookingRepo.BookingRepository
	Syncer   calendar.Syncer
	Logger   *zap.Logger
	Now      func() time.Time
}

func (h *CalendarSyncHandler) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now()
}

func (h *CalendarSyncHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	p, err := tasks.ParseCalendarSyncPayload(task)
	if err != nil {
		h.Logger.Error("[CalendarSync] Dropping invalid task", zap.Error(err))
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if h.Syncer == nil {
		h.Logger.Debug("[CalendarSync] Calendar not configured, skipping", zap.String("bookingId", p.BookingID))
		return nil
	}

	b, err := h.Bookings.GetByID(ctx, p.BookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		h.Logger.Warn("[CalendarSync] Booking vanished", zap.String("bookingId", p.BookingID))
		return nil
	}
	if err != nil {
		return err
	}

	switch p.Action {
	case tasks.CalendarActionCreate:
		return h.create(ctx, *b)
	default:
		return h.cancel(ctx, *b)
	}
}

func (h *CalendarSyncHandler) create(ctx context.Context, b models.Booking) error {
	if b.GoogleEventID != "" {
		return nil
	}
	// A retried create can arrive after the cancel task already ran.
	if b.Status == models.BookingCancelled {
		h.Logger.Info("[CalendarSync] Booking cancelled, skipping event", zap.String("bookingId", b.ID))
		return nil
	}
	eventID, err := h.Syncer.CreateEvent(ctx, b)
	if err != nil {
		h.Logger.Error("[CalendarSync] Failed to create event", zap.String("bookingId", b.ID), zap.Error(err))
		h.record(ctx, b.ID, models.CalendarInfo{SyncStatus: models.CalendarSyncFailed})
		return err
	}
	h.record(ctx, b.ID, models.CalendarInfo{
		EventID:    eventID,
		CalendarID: h.Syncer.CalendarID(),
		SyncStatus: models.CalendarSyncSynced,
	})
	h.Logger.Info("[CalendarSync] Event created", zap.String("bookingId", b.ID), zap.String("eventId", eventID))
	return nil
}

func (h *CalendarSyncHandler) cancel(ctx context.Context, b models.Booking) error {
	if b.GoogleEventID == "" {
		return nil
	}
	if err := h.Syncer.DeleteEvent(ctx, b.GoogleEventID); err != nil {
		h.Logger.Error("[CalendarSync] Failed to delete event", zap.String("bookingId", b.ID), zap.Error(err))
		return err
	}
	h.record(ctx, b.ID, models.CalendarInfo{SyncStatus: models.CalendarSyncCancelled})
	return nil
}

func (h *CalendarSyncHandler) record(ctx context.Context, bookingID string, info models.CalendarInfo) {
	info.SyncedAt = h.now()
	if err := h.Bookings.UpdateCalendarInfo(ctx, bookingID, info); err != nil {
		h.Logger.Error("[CalendarSync] Failed to record sync status",
			zap.String("bookingId", bookingID), zap.String("status", info.SyncStatus), zap.Error(err))
	}
}

// StartWorker runs the task server in the background. The returned server
// should be shut down on exit.
func StartWorker(redisOpt asynq.RedisClientOpt, handler *CalendarSyncHandler, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(tasks.TypeCalendarSync, handler)

	go monitorRedisConnection(redisOpt, logger)

	go func() {
		logger.Info("[Worker] Starting task worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[Worker] Failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[Worker] Giving up; calendar sync is disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return srv
}

// monitorRedisConnection pings the queue's Redis periodically to surface outages.
func monitorRedisConnection(redisOpt asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisOpt.Addr,
		Password: redisOpt.Password,
		DB:       redisOpt.DB,
	})
	defer client.Close()

	ctx := context.Background()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("[Worker] Redis connection lost", zap.Error(err))
		}
	}
}
