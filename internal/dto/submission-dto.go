package dto

// AttachmentDTO — разрешённый дескриптор вложения для витрины проверяющего.
type AttachmentDTO struct {
	ID          string `json:"id"`
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	URL         string `json:"url"`
}

// NormalizedSubmissionDTO — приведённое к общей форме представление заявки.
// В Attachments присутствует ключ для каждой роли схемы варианта:
// nil-элемент означает, что файл недоступен (битая или удалённая ссылка),
// пустой список — что необязательная роль не была заполнена.
type NormalizedSubmissionDTO struct {
	ID          string                      `json:"id"`
	FormType    string                      `json:"formType"`
	FormTitle   string                      `json:"formTitle"`
	Applicant   string                      `json:"applicant"`
	Topic       string                      `json:"topic"`
	Guide       string                      `json:"guide"`
	Branch      string                      `json:"branch"`
	Status      string                      `json:"status"`
	SubmittedAt string                      `json:"submittedAt"`
	Attachments map[string][]*AttachmentDTO `json:"attachments"`
}

type SubmissionCreatedDTO struct {
	FormID string `json:"formId"`
}
