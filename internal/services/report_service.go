package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"go.uber.org/zap"

	"submission-portal/internal/dto"
	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/internal/repositories"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, status string) ([]dto.ReportRowDTO, error)
}

type ReportService struct {
	repos  map[forms.FormType]repositories.SubmissionRepositoryInterface
	logger *zap.Logger
}

func NewReportService(
	repos map[forms.FormType]repositories.SubmissionRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{repos: repos, logger: logger}
}

// GetReport собирает строки сводного отчёта по всем вариантам форм.
// status == "" означает «все статусы».
func (s *ReportService) GetReport(ctx context.Context, status string) ([]dto.ReportRowDTO, error) {
	rows := make([]dto.ReportRowDTO, 0)

	for _, variant := range forms.Variants() {
		repo, ok := s.repos[variant.Type]
		if !ok {
			continue
		}

		var subs []entities.Submission
		var err error
		if status == "" {
			subs, err = repo.FindAll(ctx)
		} else {
			subs, err = repo.FindByStatus(ctx, status)
		}
		if err != nil {
			return nil, err
		}

		for i := range subs {
			rows = append(rows, buildReportRow(variant, &subs[i]))
		}
	}

	return rows, nil
}

func buildReportRow(variant *forms.Variant, sub *entities.Submission) dto.ReportRowDTO {
	common := variant.Reconcile(sub.Data)

	attachmentCount := 0
	for _, role := range variant.Roles {
		attachmentCount += len(blobIDsOf(sub.Data[role.Name]))
	}

	return dto.ReportRowDTO{
		FormID:            sub.ID,
		FormType:          string(variant.Type),
		Applicant:         common.Applicant,
		Topic:             common.Topic,
		Branch:            common.Branch,
		Guide:             common.Guide,
		Status:            sub.Status,
		SubmittedAt:       sub.CreatedAt.Format("2006-01-02 15:04:05"),
		AttachmentCount:   attachmentCount,
		BankAccountName:   nullableField(sub.Data, "bankAccountName"),
		BankAccountNumber: nullableField(sub.Data, "bankAccountNumber"),
		IfscCode:          nullableField(sub.Data, "ifscCode"),
	}
}

func nullableField(data map[string]interface{}, key string) null.String {
	if s, ok := data[key].(string); ok && s != "" {
		return null.StringFrom(s)
	}
	return null.String{}
}
