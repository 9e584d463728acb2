package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/controllers"
	"submission-portal/internal/services"
	"submission-portal/pkg/middleware"
)

func registerReportRoutes(
	api *echo.Group,
	svc services.ReportServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	ctrl := controllers.NewReportController(svc, logger)
	api.GET("/reports/submissions", ctrl.GetReport, authMW.Auth)
}
