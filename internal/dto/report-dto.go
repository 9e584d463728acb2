package dto

import "github.com/aarondl/null/v8"

// ReportRowDTO — строка сводного отчёта по заявкам всех вариантов.
// Банковские реквизиты обязательны не во всех формах, поэтому nullable.
type ReportRowDTO struct {
	FormID            string      `json:"formId"`
	FormType          string      `json:"formType"`
	Applicant         string      `json:"applicant"`
	Topic             string      `json:"topic"`
	Branch            string      `json:"branch"`
	Guide             string      `json:"guide"`
	Status            string      `json:"status"`
	SubmittedAt       string      `json:"submittedAt"`
	AttachmentCount   int         `json:"attachmentCount"`
	BankAccountName   null.String `json:"bankAccountName"`
	BankAccountNumber null.String `json:"bankAccountNumber"`
	IfscCode          null.String `json:"ifscCode"`
}
