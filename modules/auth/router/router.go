package router

import (
	"beacon-attendance/core/middleware"
	"beacon-attendance/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	AuthController *controller.AuthController
}

func NewAuthRouter(authController *controller.AuthController) *AuthRouter {
	return &AuthRouter{AuthController: authController}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	authRoutes := v1.Group("/auth")
	authRoutes.POST("/register", r.AuthController.Register)
	authRoutes.POST("/login", r.AuthController.Login)

	privateRoutes := v1.Group("/private", mw.AuthMiddleware())
	privateRoutes.POST("/auth/logout", r.AuthController.Logout)
	privateRoutes.GET("/auth/me", r.AuthController.Me)
	privateRoutes.PUT("/auth/device", r.AuthController.RegisterDevice)
	privateRoutes.DELETE("/auth/device", r.AuthController.RemoveDevice)
	privateRoutes.GET("/users", r.AuthController.GetUsers)
}
