package attendance

import (
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/attendance/controller"
	"beacon-attendance/modules/attendance/repository"
	"beacon-attendance/modules/attendance/router"
	"beacon-attendance/modules/attendance/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, loc *time.Location) {
	repo := repository.NewAttendanceRepository(db)
	svc := service.NewAttendanceService(repo, loc)
	ctrl := controller.NewAttendanceController(svc)

	router.NewAttendanceRouter(ctrl).Setup(e, mw)
}
