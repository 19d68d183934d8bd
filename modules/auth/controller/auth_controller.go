package controller

import (
	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/middleware"
	"beacon-attendance/core/params"
	"beacon-attendance/core/utils"
	"beacon-attendance/modules/auth/dto"
	"beacon-attendance/modules/auth/service"
	"beacon-attendance/modules/auth/validator"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	controller.BaseController
	AuthService service.AuthServiceInterface
}

func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		BaseController: controller.NewBaseController(),
		AuthService:    authService,
	}
}

// Register handles POST /auth/register
// @Summary Register a user
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 409 {object} controller.ErrorResponse
// @Router /auth/register [post]
func (controller *AuthController) Register(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.RegisterRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateRegisterRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	user, appErr := controller.AuthService.Register(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.CreatedResponse(c, user, "Register success")
}

// Login handles POST /auth/login
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} controller.ErrorResponse
// @Failure 429 {object} controller.ErrorResponse
// @Router /auth/login [post]
func (controller *AuthController) Login(c echo.Context) error {
	ctx := c.Request().Context()

	requestData := new(dto.LoginRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateLoginRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	loginResponse, appErr := controller.AuthService.Login(ctx, requestData)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, loginResponse, "Login success")
}

// Logout handles POST /private/auth/logout
// @Summary Revoke the current token
// @Tags Auth
// @Security BearerAuth
// @Success 200
// @Router /private/auth/logout [post]
func (controller *AuthController) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	token, err := utils.GetTokenFromHeader(c)
	if err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}
	claims, ok := middleware.GetTokenData(c)
	if !ok || claims.ExpiresAt == nil {
		return controller.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	if appErr := controller.AuthService.Logout(ctx, token, claims.ExpiresAt.Time); appErr != nil {
		logger.Error("AuthController:Logout:Error:", appErr)
		return controller.ErrorResponse(c, appErr)
	}

	return controller.SuccessResponse(c, nil, "Logout success")
}

// Me handles GET /private/auth/me
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Router /private/auth/me [get]
func (controller *AuthController) Me(c echo.Context) error {
	user, appErr := controller.AuthService.Me(c.Request().Context(), middleware.GetUserID(c))
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, user, "Success")
}

// GetUsers handles GET /private/users
// @Summary List users
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Name or email"
// @Success 200 {object} map[string]interface{}
// @Router /private/users [get]
func (controller *AuthController) GetUsers(c echo.Context) error {
	queryParams := params.NewQueryParams(c)
	result, appErr := controller.AuthService.GetUsers(c.Request().Context(), *queryParams)
	if appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, result, "Success")
}

// RegisterDevice handles PUT /private/auth/device
// @Summary Register the push device of the current user
// @Tags Auth
// @Security BearerAuth
// @Accept json
// @Param request body dto.RegisterDeviceRequest true "Device"
// @Success 200
// @Router /private/auth/device [put]
func (controller *AuthController) RegisterDevice(c echo.Context) error {
	requestData := new(dto.RegisterDeviceRequest)
	if err := c.Bind(requestData); err != nil {
		return controller.BadRequest(errors.ErrInvalidRequestData, "Invalid request data")
	}

	validationResult := validator.ValidateRegisterDeviceRequest(requestData)
	if validationResult.HasError() {
		return controller.BadRequest(errors.ErrInvalidInput, "Invalid request data", validationResult)
	}

	userID := middleware.GetUserID(c)
	if appErr := controller.AuthService.RegisterDevice(c.Request().Context(), userID, &requestData.PlayerID); appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, nil, "Device registered")
}

// RemoveDevice handles DELETE /private/auth/device
// @Summary Stop push reminders for the current user
// @Tags Auth
// @Security BearerAuth
// @Success 200
// @Router /private/auth/device [delete]
func (controller *AuthController) RemoveDevice(c echo.Context) error {
	userID := middleware.GetUserID(c)
	if appErr := controller.AuthService.RegisterDevice(c.Request().Context(), userID, nil); appErr != nil {
		return controller.ErrorResponse(c, appErr)
	}
	return controller.SuccessResponse(c, nil, "Device removed")
}
