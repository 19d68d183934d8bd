package meeting

import (
	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/meeting/controller"
	"beacon-attendance/modules/meeting/repository"
	"beacon-attendance/modules/meeting/router"
	"beacon-attendance/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

// Init wires the meeting module and registers its routes.
func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, window *service.TimeWindow) {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, window)
	ctrl := controller.NewMeetingController(svc)

	router.NewMeetingRouter(ctrl).Setup(e, mw)
}
