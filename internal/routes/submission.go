package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/controllers"
	"submission-portal/internal/services"
	"submission-portal/pkg/middleware"
)

func registerSubmissionRoutes(
	api *echo.Group,
	svc services.SubmissionServiceInterface,
	authMW *middleware.AuthMiddleware,
	logger *zap.Logger,
) {
	ctrl := controllers.NewSubmissionController(svc, logger)

	// Подача форм — публичная (студенческая) часть портала.
	api.POST("/forms/:type", ctrl.CreateSubmission)
	api.GET("/submissions/:id", ctrl.GetSubmission)

	// Просмотр очереди и решения — только для проверяющих.
	api.GET("/submissions/pending", ctrl.ListPending, authMW.Auth)
	api.PATCH("/submissions/:id/approve", ctrl.ApproveSubmission, authMW.Auth)
	api.PATCH("/submissions/:id/reject", ctrl.RejectSubmission, authMW.Auth)
}
