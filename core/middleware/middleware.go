package middleware

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"beacon-attendance/core/cache"
	"beacon-attendance/core/constants"
	"beacon-attendance/core/controller"
	"beacon-attendance/core/errors"
	"beacon-attendance/core/logger"
	"beacon-attendance/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Middleware struct {
	cache  cache.Cache
	signer *utils.TokenSigner
}

func NewMiddleware(c cache.Cache, signer *utils.TokenSigner) *Middleware {
	return &Middleware{cache: c, signer: signer}
}

// AuthMiddleware validates the bearer token and stores its claims under
// constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c)
			if err != nil {
				return unauthorized(c, errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			claims, err := m.signer.Parse(token)
			if err != nil {
				if stderrors.Is(err, jwt.ErrTokenExpired) {
					return unauthorized(c, errors.ErrTokenExpired, "Token expired")
				}
				return unauthorized(c, errors.ErrInvalidTokenFormat, "Invalid token")
			}
			if claims.Scope != constants.ScopeTokenAccess {
				return unauthorized(c, errors.ErrInvalidTokenFormat, "Invalid token scope")
			}

			if m.cache != nil {
				revoked, err := m.cache.IsTokenBlacklisted(c.Request().Context(), token)
				if err != nil {
					logger.Error("Middleware:AuthMiddleware:IsTokenBlacklisted", err)
					return c.JSON(http.StatusInternalServerError,
						controller.NewErrorBody(errors.ErrInternalServer, "Failed to verify token"))
				}
				if revoked {
					return unauthorized(c, errors.ErrUnauthorized, "Token revoked")
				}
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// AdminMiddleware must run after AuthMiddleware.
func (m *Middleware) AdminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := GetTokenData(c)
			if !ok {
				return unauthorized(c, errors.ErrUnauthorized, "Unauthorized")
			}
			if !claims.IsAdmin {
				return c.JSON(http.StatusForbidden,
					controller.NewErrorBody(errors.ErrForbidden, "Admin privileges required"))
			}
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, code errors.ErrorCode, msg string) error {
	return c.JSON(http.StatusUnauthorized, controller.NewErrorBody(code, msg))
}

// GetTokenData returns the claims placed in the context by AuthMiddleware.
func GetTokenData(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user id, or uuid.Nil.
func GetUserID(c echo.Context) uuid.UUID {
	claims, ok := GetTokenData(c)
	if !ok {
		return uuid.Nil
	}
	return claims.UserID
}

// Setup registers the global middleware chain.
func Setup(e *echo.Echo) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator:        utils.GenerateID,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(constants.ContextRequestID, id)
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.ContextTimeout(constants.DefaultRequestTimeout))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Logger().LogAttrs(c.Request().Context(), level, "HTTP:Request",
				slog.String("request_id", v.RequestID),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.Any("error", v.Error),
			)
			return nil
		},
	}))
}
