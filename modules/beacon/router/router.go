package router

import (
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/beacon/controller"

	"github.com/labstack/echo/v4"
)

type BeaconRouter struct {
	BeaconController *controller.BeaconController
}

func NewBeaconRouter(ctrl *controller.BeaconController) *BeaconRouter {
	return &BeaconRouter{BeaconController: ctrl}
}

func (r *BeaconRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	privateRoutes := e.Group("/api/v1/private", mw.AuthMiddleware())

	privateRoutes.GET("/meetings/available-beacons", r.BeaconController.ListBeacons)

	beaconRoutes := privateRoutes.Group("/beacons")
	beaconRoutes.GET("", r.BeaconController.ListBeacons)
	beaconRoutes.GET("/:id", r.BeaconController.GetBeacon)

	adminRoutes := beaconRoutes.Group("", mw.AdminMiddleware())
	adminRoutes.POST("", r.BeaconController.CreateBeacon)
	adminRoutes.PUT("/:id", r.BeaconController.UpdateBeacon)
	adminRoutes.DELETE("/:id", r.BeaconController.DeleteBeacon)
}
