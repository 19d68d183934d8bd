package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"beacon-attendance/core/cache"
	"beacon-attendance/core/config"
	"beacon-attendance/core/constants"
	"beacon-attendance/core/database"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/middleware"
	"beacon-attendance/core/queue"
	"beacon-attendance/core/storage"
	"beacon-attendance/core/utils"
	"beacon-attendance/modules/attendance"
	"beacon-attendance/modules/auth"
	"beacon-attendance/modules/beacon"
	"beacon-attendance/modules/meeting"
	meetingService "beacon-attendance/modules/meeting/service"
	"beacon-attendance/modules/notification"
	notificationService "beacon-attendance/modules/notification/service"
	"beacon-attendance/modules/report"

	"github.com/labstack/echo/v4"
)

// Run loads configuration, wires every module and serves HTTP until SIGINT
// or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
	}

	window, err := meetingService.NewTimeWindow(cfg.Timezone.Display)
	if err != nil {
		return fmt.Errorf("load display timezone: %w", err)
	}
	loc := window.Location()

	appCache, redisUp := newCache(ctx, cfg.Redis)
	defer appCache.Close()

	signer := utils.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.AccessTTLMinute)*time.Minute)
	mw := middleware.NewMiddleware(appCache, signer)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	middleware.Setup(e)
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	pushSender := notificationService.NewOneSignalSender(cfg.OneSignal)
	var sender notificationService.Sender = pushSender
	var worker *queue.Worker
	if redisUp {
		client := queue.NewClient(cfg.Redis)
		defer client.Close()
		sender = notificationService.NewQueueSender(client)

		if cfg.Notifier.WorkerEnabled {
			worker = queue.NewWorker(cfg.Redis, 0)
			worker.Handle(notificationService.TaskMeetingStarting, notificationService.NewDeliveryHandler(pushSender))
			if err := worker.Start(); err != nil {
				return err
			}
			defer worker.Shutdown()
		}
	}

	auth.Init(e, db, appCache, signer, mw, loc)
	beacon.Init(e, db, mw, loc)
	meeting.Init(e, db, mw, window)
	attendance.Init(e, db, mw, loc)
	report.Init(e, db, mw, storage.New(cfg.Storage), loc)
	notifier := notification.Init(e, db, mw, sender, cfg.Notifier, loc)

	if cfg.Notifier.Enabled {
		go notifier.Run(ctx)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("Server:Start", "addr", addr, "env", cfg.Server.Env, "timezone", loc.String())
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			logger.Error("Server:Start", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("Server:Stopped")
	return nil
}

// newCache connects to redis and falls back to an in-process cache when it
// is unreachable. The second result reports whether redis is available.
func newCache(ctx context.Context, cfg config.RedisConfig) (cache.Cache, bool) {
	client, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Server:NewCache:RedisUnavailable", "addr", cfg.Addr, "error", err)
		return cache.NewMemoryCache(), false
	}
	return cache.NewRedisCache(client), true
}
