package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/pkg/contextkeys"
	apperrors "submission-portal/pkg/errors"
	"submission-portal/pkg/service"
	"submission-portal/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth пускает дальше только запросы с валидным access-токеном проверяющего.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusUnauthorized, apperrors.ErrEmptyAuthHeader.Error(), nil, nil), m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusUnauthorized, apperrors.ErrInvalidAuthHeader.Error(), nil, nil), m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusUnauthorized, apperrors.ErrInvalidToken.Error(), err, nil), m.logger)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.NewHttpError(
				http.StatusUnauthorized, apperrors.ErrTokenIsNotAccess.Error(), nil, nil), m.logger)
		}

		newCtx := context.WithValue(c.Request().Context(), contextkeys.ReviewerIDKey, claims.ReviewerID)
		c.SetRequest(c.Request().WithContext(newCtx))

		return next(c)
	}
}
