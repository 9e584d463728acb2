package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/controllers"
	"submission-portal/internal/services"
)

func registerAuthRoutes(api *echo.Group, svc services.AuthServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewAuthController(svc, logger)
	api.POST("/auth/login", ctrl.Login)
}
