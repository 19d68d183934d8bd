package controller

import (
	"time"

	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/attendance/dto"
	"beacon-attendance/modules/attendance/entity"
	"beacon-attendance/modules/attendance/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AttendanceController struct {
	controller.BaseController
	AttendanceService service.AttendanceServiceInterface
	now               func() time.Time
}

func NewAttendanceController(svc service.AttendanceServiceInterface) *AttendanceController {
	return &AttendanceController{
		BaseController:    controller.NewBaseController(),
		AttendanceService: svc,
		now:               time.Now,
	}
}

// MarkAttendance handles POST /attendance/mark
// @Summary Mark own attendance
// @Description Records the caller as present or late depending on when the meeting started.
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.MarkAttendanceRequest true "Meeting"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 422 {object} controller.ErrorResponse
// @Router /private/attendance/mark [post]
func (c *AttendanceController) MarkAttendance(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.MarkAttendanceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.AttendanceService.MarkSelf(ctx.Request().Context(), userID, meetingID, c.now())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Attendance marked")
}

// AssignAttendance handles POST /attendance
// @Summary Assign attendance (coordinator only)
// @Tags Attendance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AssignAttendanceRequest true "Assignment"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/attendance [post]
func (c *AttendanceController) AssignAttendance(ctx echo.Context) error {
	requesterID := middleware.GetUserID(ctx)
	if requesterID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.AssignAttendanceRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}
	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	status := entity.StatusAbsent
	if req.Status != "" {
		parsed, ok := entity.ParseStatus(req.Status)
		if !ok {
			return c.BadRequest(errors.ErrInvalidInput, "status must be one of present, late, absent")
		}
		status = parsed
	}

	reqCtx := ctx.Request().Context()
	if appErr := c.AttendanceService.AuthorizeAssignment(reqCtx, requesterID, meetingID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	result, appErr := c.AttendanceService.AssignAttendance(reqCtx, requesterID, targetID, meetingID, status)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Attendance assigned")
}

// GetMyAttendance handles GET /attendance/my
// @Summary List own attendance
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.AttendanceResponse
// @Router /private/attendance/my [get]
func (c *AttendanceController) GetMyAttendance(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.AttendanceService.GetMyAttendance(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyAttendanceForMeeting handles GET /attendance/my/:meeting_id
// @Summary Own attendance for one meeting
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.AttendanceResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/attendance/my/{meeting_id} [get]
func (c *AttendanceController) GetMyAttendanceForMeeting(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	meetingID, err := uuid.Parse(ctx.Param("meeting_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.AttendanceService.GetMyAttendanceForMeeting(ctx.Request().Context(), userID, meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// ListForMeeting handles GET /attendance/meeting/:meeting_id
// @Summary Attendance list of a meeting
// @Tags Attendance
// @Security BearerAuth
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {array} dto.AttendanceResponse
// @Router /private/attendance/meeting/{meeting_id} [get]
func (c *AttendanceController) ListForMeeting(ctx echo.Context) error {
	meetingID, err := uuid.Parse(ctx.Param("meeting_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.AttendanceService.ListForMeeting(ctx.Request().Context(), meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}
