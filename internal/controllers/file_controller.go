package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/pkg/blobstore"
	apperrors "submission-portal/pkg/errors"
	"submission-portal/pkg/utils"
)

type FileController struct {
	store  blobstore.BlobStorageInterface
	logger *zap.Logger
}

func NewFileController(store blobstore.BlobStorageInterface, logger *zap.Logger) *FileController {
	return &FileController{store: store, logger: logger}
}

// GetFile отдаёт тело файла с сохранённым Content-Type, inline.
// 400 — не uuid, 404 — неизвестный id, 503 — хранилище ещё не готово.
func (ctrl *FileController) GetFile(c echo.Context) error {
	if ctrl.store == nil {
		return utils.ErrorResponse(c, apperrors.ErrStoreNotReady, ctrl.logger)
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return utils.ErrorResponse(c, apperrors.ErrMalformedID, ctrl.logger)
	}

	body, info, err := ctrl.store.Open(c.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	defer body.Close()

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", info.FileName))
	return c.Stream(http.StatusOK, info.ContentType, body)
}
