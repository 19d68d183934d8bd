package router

import (
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/report/controller"

	"github.com/labstack/echo/v4"
)

type ReportRouter struct {
	ReportController *controller.ReportController
}

func NewReportRouter(ctrl *controller.ReportController) *ReportRouter {
	return &ReportRouter{ReportController: ctrl}
}

func (r *ReportRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	reportRoutes := e.Group("/api/v1/private/reports", mw.AuthMiddleware())

	reportRoutes.GET("/meetings/:meeting_id", r.ReportController.MeetingReport)
	reportRoutes.POST("/meetings/:meeting_id", r.ReportController.MeetingReport)
	reportRoutes.GET("/users/me", r.ReportController.MyReport)
	reportRoutes.GET("/users/:user_id", r.ReportController.UserReport)
}
