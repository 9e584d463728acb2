package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"submission-portal/internal/dto"
	"submission-portal/internal/services"
	"submission-portal/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) GetReport(ctx echo.Context) error {
	status := ctx.QueryParam("status")
	format := strings.ToLower(ctx.QueryParam("format"))

	rows, err := c.reportService.GetReport(ctx.Request().Context(), status)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}
	return utils.SuccessResponse(ctx, rows, "Отчет успешно сформирован", http.StatusOK)
}

var reportHeaders = []string{
	"ID заявки", "Форма", "Заявитель", "Тема", "Кафедра", "Руководитель",
	"Статус", "Дата подачи", "Вложений", "Получатель платежа", "Номер счёта", "IFSC",
}

func rowToSlice(item dto.ReportRowDTO) []interface{} {
	return []interface{}{
		item.FormID, item.FormType, item.Applicant, item.Topic, item.Branch, item.Guide,
		item.Status, item.SubmittedAt, item.AttachmentCount,
		item.BankAccountName.String, item.BankAccountNumber.String, item.IfscCode.String,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.ReportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Отчет по заявкам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := rowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "C", "F", 25)
	f.SetColWidth(sheet, "D", "D", 40)
	f.SetColWidth(sheet, "J", "K", 25)

	fileName := fmt.Sprintf("submissions_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
