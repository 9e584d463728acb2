package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "submission-portal/pkg/errors"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	response := &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку доменного слоя в HTTP-ответ.
// Внутренние причины (ошибки БД, хранилища) пишутся в лог и не уходят клиенту.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": validationErr.Error(),
		})
	}

	var uploadErr *apperrors.UploadError
	if errors.As(err, &uploadErr) {
		logger.Error("Сбой загрузки вложений", zap.Error(uploadErr.Err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": "Не удалось сохранить вложения, попробуйте позже",
		})
	}

	var persistErr *apperrors.PersistError
	if errors.As(err, &persistErr) {
		logger.Error("Сбой сохранения записи формы", zap.Error(persistErr.Err))
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": "Не удалось сохранить заявку, попробуйте позже",
		})
	}

	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrBlobNotFound) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"status":  false,
			"message": "Данные не найдены",
		})
	}

	if errors.Is(err, apperrors.ErrMalformedID) {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": apperrors.ErrMalformedID.Error(),
		})
	}

	if errors.Is(err, apperrors.ErrStoreNotReady) {
		logger.Warn("Обращение к файловому хранилищу до его инициализации")
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  false,
			"message": apperrors.ErrStoreNotReady.Error(),
		})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"status":  false,
		"message": "Внутренняя ошибка сервера",
	})
}
