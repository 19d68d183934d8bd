package controller

import (
	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/report/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ReportController struct {
	controller.BaseController
	ReportService service.ReportServiceInterface
}

func NewReportController(svc service.ReportServiceInterface) *ReportController {
	return &ReportController{
		BaseController: controller.NewBaseController(),
		ReportService:  svc,
	}
}

// MeetingReport handles GET and POST /reports/meetings/:meeting_id
// @Summary Generate or fetch a meeting report
// @Description The first call stores a snapshot; later calls return it unchanged.
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Param meeting_id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingReportResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/reports/meetings/{meeting_id} [post]
func (c *ReportController) MeetingReport(ctx echo.Context) error {
	meetingID, err := uuid.Parse(ctx.Param("meeting_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.ReportService.GenerateOrGetMeetingReport(ctx.Request().Context(), meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// MyReport handles GET /reports/users/me
// @Summary Attendance statistics of the caller
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.GeneralReportResponse
// @Router /private/reports/users/me [get]
func (c *ReportController) MyReport(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}
	return c.generalReport(ctx, userID)
}

// UserReport handles GET /reports/users/:user_id
// @Summary Attendance statistics of a user (self or admin)
// @Tags Report
// @Security BearerAuth
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.GeneralReportResponse
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/reports/users/{user_id} [get]
func (c *ReportController) UserReport(ctx echo.Context) error {
	claims, ok := middleware.GetTokenData(ctx)
	if !ok {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	userID, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}
	if userID != claims.UserID && !claims.IsAdmin {
		return c.ErrorResponse(ctx, errors.NewAppError(errors.ErrForbidden, "not allowed to view this report", nil))
	}
	return c.generalReport(ctx, userID)
}

func (c *ReportController) generalReport(ctx echo.Context, userID uuid.UUID) error {
	result, appErr := c.ReportService.GenerateGeneralReport(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}
