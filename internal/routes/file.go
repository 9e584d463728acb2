package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/controllers"
	"submission-portal/pkg/blobstore"
)

func registerFileRoutes(e *echo.Echo, store blobstore.BlobStorageInterface, logger *zap.Logger) {
	ctrl := controllers.NewFileController(store, logger)
	e.GET("/file/:id", ctrl.GetFile)
}
