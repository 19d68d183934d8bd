package report

import (
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/core/storage"
	"beacon-attendance/modules/report/controller"
	"beacon-attendance/modules/report/repository"
	"beacon-attendance/modules/report/router"
	"beacon-attendance/modules/report/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, archive storage.ObjectStore, loc *time.Location) {
	repo := repository.NewReportRepository(db)
	svc := service.NewReportService(repo, archive, loc)
	ctrl := controller.NewReportController(svc)

	router.NewReportRouter(ctrl).Setup(e, mw)
}
