package router

import (
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/attendance/controller"

	"github.com/labstack/echo/v4"
)

type AttendanceRouter struct {
	AttendanceController *controller.AttendanceController
}

func NewAttendanceRouter(ctrl *controller.AttendanceController) *AttendanceRouter {
	return &AttendanceRouter{AttendanceController: ctrl}
}

func (r *AttendanceRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	attendanceRoutes := e.Group("/api/v1/private/attendance", mw.AuthMiddleware())

	attendanceRoutes.POST("", r.AttendanceController.AssignAttendance)
	attendanceRoutes.POST("/mark", r.AttendanceController.MarkAttendance)
	attendanceRoutes.GET("/my", r.AttendanceController.GetMyAttendance)
	attendanceRoutes.GET("/my/:meeting_id", r.AttendanceController.GetMyAttendanceForMeeting)
	attendanceRoutes.GET("/meeting/:meeting_id", r.AttendanceController.ListForMeeting)
}
