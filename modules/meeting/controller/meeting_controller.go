package controller

import (
	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/middleware"
	"beacon-attendance/core/params"
	"beacon-attendance/modules/meeting/dto"
	"beacon-attendance/modules/meeting/service"
	"beacon-attendance/modules/meeting/validator"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type MeetingController struct {
	controller.BaseController
	MeetingService service.MeetingServiceInterface
}

func NewMeetingController(svc service.MeetingServiceInterface) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		MeetingService: svc,
	}
}

// CreateMeeting handles POST /meetings
// @Summary Create a meeting
// @Description Schedules a meeting, optionally on a beacon. Rejects overlapping bookings.
// @Tags Meeting
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateMeetingRequest true "Meeting"
// @Success 201 {object} dto.MeetingResponse
// @Failure 400 {object} controller.ErrorResponse
// @Failure 404 {object} controller.ErrorResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/meetings [post]
func (c *MeetingController) CreateMeeting(ctx echo.Context) error {
	coordinatorID := middleware.GetUserID(ctx)
	if coordinatorID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}

	if result := validator.ValidateCreateMeetingRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	result, appErr := c.MeetingService.CreateMeeting(ctx.Request().Context(), coordinatorID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.CreatedResponse(ctx, result, "Meeting created successfully")
}

// GetMeetings handles GET /meetings
// @Summary List meetings
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param search query string false "Title filter"
// @Router /private/meetings [get]
func (c *MeetingController) GetMeetings(ctx echo.Context) error {
	queryParams := params.NewQueryParams(ctx)

	result, appErr := c.MeetingService.GetMeetings(ctx.Request().Context(), *queryParams)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMyMeetings handles GET /meetings/my
// @Summary List meetings the caller coordinates or is invited to
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.MeetingResponse
// @Router /private/meetings/my [get]
func (c *MeetingController) GetMyMeetings(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	result, appErr := c.MeetingService.GetMyMeetings(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// GetMeeting handles GET /meetings/:id
// @Summary Get a meeting
// @Tags Meeting
// @Security BearerAuth
// @Produce json
// @Param id path string true "Meeting ID"
// @Success 200 {object} dto.MeetingResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/meetings/{id} [get]
func (c *MeetingController) GetMeeting(ctx echo.Context) error {
	meetingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	result, appErr := c.MeetingService.GetMeetingByID(ctx.Request().Context(), meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary Delete a meeting
// @Tags Meeting
// @Security BearerAuth
// @Param id path string true "Meeting ID"
// @Failure 403 {object} controller.ErrorResponse
// @Router /private/meetings/{id} [delete]
func (c *MeetingController) DeleteMeeting(ctx echo.Context) error {
	userID := middleware.GetUserID(ctx)
	if userID == uuid.Nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	meetingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid meeting ID")
	}

	if appErr := c.MeetingService.DeleteMeeting(ctx.Request().Context(), meetingID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Meeting deleted successfully")
}
