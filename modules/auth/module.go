package auth

import (
	"time"

	"beacon-attendance/core/cache"
	"beacon-attendance/core/database"
	"beacon-attendance/core/middleware"
	"beacon-attendance/core/utils"
	"beacon-attendance/modules/auth/controller"
	"beacon-attendance/modules/auth/repository"
	"beacon-attendance/modules/auth/router"
	"beacon-attendance/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, signer *utils.TokenSigner, mw *middleware.Middleware, loc *time.Location) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, c, signer, loc)
	authController := controller.NewAuthController(authService)

	router.NewAuthRouter(authController).Setup(e, mw)
}
