package beacon

import (
	"time"

	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/beacon/controller"
	"beacon-attendance/modules/beacon/repository"
	"beacon-attendance/modules/beacon/router"
	"beacon-attendance/modules/beacon/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, mw *middleware.Middleware, loc *time.Location) {
	repo := repository.NewBeaconRepository(db)
	svc := service.NewBeaconService(repo, loc)
	ctrl := controller.NewBeaconController(svc)

	router.NewBeaconRouter(ctrl).Setup(e, mw)
}
