package controller

import (
	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/modules/beacon/dto"
	"beacon-attendance/modules/beacon/service"
	"beacon-attendance/modules/beacon/validator"

	"github.com/labstack/echo/v4"
)

type BeaconController struct {
	controller.BaseController
	BeaconService service.BeaconServiceInterface
}

func NewBeaconController(svc service.BeaconServiceInterface) *BeaconController {
	return &BeaconController{
		BaseController: controller.NewBaseController(),
		BeaconService:  svc,
	}
}

// ListBeacons handles GET /beacons and GET /meetings/available-beacons
// @Summary List registered beacons
// @Tags Beacon
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.BeaconResponse
// @Router /private/beacons [get]
func (c *BeaconController) ListBeacons(ctx echo.Context) error {
	result, appErr := c.BeaconService.List(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetBeacon handles GET /beacons/:id
// @Summary Get a beacon
// @Tags Beacon
// @Security BearerAuth
// @Produce json
// @Param id path string true "Beacon ID"
// @Success 200 {object} dto.BeaconResponse
// @Failure 404 {object} controller.ErrorResponse
// @Router /private/beacons/{id} [get]
func (c *BeaconController) GetBeacon(ctx echo.Context) error {
	result, appErr := c.BeaconService.Get(ctx.Request().Context(), ctx.Param("id"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// CreateBeacon handles POST /beacons
// @Summary Register a beacon (admin)
// @Tags Beacon
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBeaconRequest true "Beacon"
// @Success 201 {object} dto.BeaconResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /private/beacons [post]
func (c *BeaconController) CreateBeacon(ctx echo.Context) error {
	var req dto.CreateBeaconRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateCreateBeaconRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	result, appErr := c.BeaconService.Create(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.CreatedResponse(ctx, result, "Beacon created")
}

// UpdateBeacon handles PUT /beacons/:id
// @Summary Update a beacon (admin)
// @Tags Beacon
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Beacon ID"
// @Param request body dto.UpdateBeaconRequest true "Changes"
// @Success 200 {object} dto.BeaconResponse
// @Router /private/beacons/{id} [put]
func (c *BeaconController) UpdateBeacon(ctx echo.Context) error {
	var req dto.UpdateBeaconRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body")
	}
	if result := validator.ValidateUpdateBeaconRequest(&req); result.HasError() {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request data", result)
	}

	result, appErr := c.BeaconService.Update(ctx.Request().Context(), ctx.Param("id"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Beacon updated")
}

// DeleteBeacon handles DELETE /beacons/:id
// @Summary Delete a beacon (admin)
// @Tags Beacon
// @Security BearerAuth
// @Param id path string true "Beacon ID"
// @Success 200
// @Router /private/beacons/{id} [delete]
func (c *BeaconController) DeleteBeacon(ctx echo.Context) error {
	if appErr := c.BeaconService.Delete(ctx.Request().Context(), ctx.Param("id")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Beacon deleted")
}
