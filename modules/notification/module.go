package notification

import (
	"time"

	"beacon-attendance/core/config"
	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/notification/controller"
	"beacon-attendance/modules/notification/repository"
	"beacon-attendance/modules/notification/router"
	"beacon-attendance/modules/notification/service"

	"github.com/labstack/echo/v4"
)

// Init registers the inbox routes and returns the reminder notifier built on
// the same repository. The caller decides whether to run it.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, sender service.Sender, cfg config.NotifierConfig, loc *time.Location) *service.Notifier {
	repo := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(repo, loc)
	ctrl := controller.NewNotificationController(svc)

	router.NewNotificationRouter(ctrl).Setup(e, mw)

	return service.NewNotifier(
		repo,
		sender,
		repo,
		service.NewNotifiedSet(),
		time.Duration(cfg.IntervalSeconds)*time.Second,
		time.Duration(cfg.LeadTimeMinutes)*time.Minute,
	)
}
