package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"submission-portal/internal/dto"
	"submission-portal/internal/services"
	apperrors "submission-portal/pkg/errors"
	"submission-portal/pkg/utils"
)

type SubmissionController struct {
	service services.SubmissionServiceInterface
	logger  *zap.Logger
}

func NewSubmissionController(service services.SubmissionServiceInterface, logger *zap.Logger) *SubmissionController {
	return &SubmissionController{service: service, logger: logger}
}

// CreateSubmission принимает multipart-заявку: скалярные поля формы
// плюс файлы по именованным ролям (guideSignature, bills и т.д.).
func (ctrl *SubmissionController) CreateSubmission(c echo.Context) error {
	formType := c.Param("type")

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, apperrors.NewHttpError(
			http.StatusBadRequest, "Ожидается multipart-форма", err, nil), ctrl.logger)
	}

	fields := scalarFields(form)
	id, err := ctrl.service.Submit(c.Request().Context(), formType, fields, form.File)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	ctrl.logger.Info("заявка принята",
		zap.String("formType", formType), zap.String("formId", id))

	return utils.SuccessResponse(c, dto.SubmissionCreatedDTO{FormID: id},
		"Заявка успешно подана", http.StatusCreated)
}

func (ctrl *SubmissionController) GetSubmission(c echo.Context) error {
	view, err := ctrl.service.GetOne(c.Request().Context(), c.Param("id"))
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, view, "Заявка найдена", http.StatusOK)
}

func (ctrl *SubmissionController) ListPending(c echo.Context) error {
	views, err := ctrl.service.ListPending(c.Request().Context())
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, views, "Ожидающие заявки", http.StatusOK)
}

func (ctrl *SubmissionController) ApproveSubmission(c echo.Context) error {
	if err := ctrl.service.Approve(c.Request().Context(), c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Заявка одобрена", http.StatusOK)
}

func (ctrl *SubmissionController) RejectSubmission(c echo.Context) error {
	if err := ctrl.service.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	return utils.SuccessResponse(c, nil, "Заявка отклонена", http.StatusOK)
}

// scalarFields сводит текстовые поля multipart-формы к карте
// "имя — первое значение".
func scalarFields(form *multipart.Form) map[string]string {
	fields := make(map[string]string, len(form.Value))
	for name, values := range form.Value {
		if len(values) > 0 {
			fields[name] = values[0]
		}
	}
	return fields
}
