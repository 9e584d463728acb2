package forms

// FormType — метка одного из восьми вариантов формы.
type FormType string

const (
	UG1  FormType = "UG1"
	UG2  FormType = "UG2"
	UG3A FormType = "UG3A"
	UG3B FormType = "UG3B"
	PG1  FormType = "PG1"
	PG2A FormType = "PG2A"
	PG2B FormType = "PG2B"
	R1   FormType = "R1"
)

// AttachmentRole — назначение вложения внутри схемы варианта.
// Class ссылается на config.UploadClasses, порядок объявления ролей
// определяет порядок проверки (валидация останавливается на первом нарушении).
type AttachmentRole struct {
	Name     string
	Class    string
	Required bool
	Multi    bool
}

// CommonFields — общая витрина полей для проверяющего,
// сведённая из несовместимых схем вариантов.
type CommonFields struct {
	Applicant string
	Topic     string
	Guide     string
	Branch    string
}

// Variant — полная схема одного варианта формы: правила приёма файлов,
// обязательные скалярные поля и функция сведения полей.
type Variant struct {
	Type           FormType
	Table          string
	Title          string
	RequiredFields []string
	Roles          []AttachmentRole
	Reconcile      func(data map[string]interface{}) CommonFields
}

var bankFields = []string{"bankAccountName", "bankAccountNumber", "ifscCode"}

// registry — закрытый набор вариантов. Новый вариант добавляется
// одной записью, существующие не трогаются.
var registry = []*Variant{
	{
		Type:           UG1,
		Table:          "form_ug1",
		Title:          "UG: финансирование проекта",
		RequiredFields: []string{"applicantName", "branch", "guideName", "projectTitle", "academicYear"},
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "groupLeaderSignature", Class: "signature", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           UG2,
		Table:          "form_ug2",
		Title:          "UG: возмещение расходов по проекту",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "projectTitle"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "groupLeaderSignature", Class: "signature", Required: true},
			{Name: "bills", Class: "bills", Required: true, Multi: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           UG3A,
		Table:          "form_ug3a",
		Title:          "UG: доклад на конференции",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "paperTitle", "conferenceName"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "registrationReceipt", Class: "receipt", Required: true},
			{Name: "paperCopy", Class: "paper", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           UG3B,
		Table:          "form_ug3b",
		Title:          "UG: участие в конкурсе проектов",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "projectTitle", "competitionName"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "registrationReceipt", Class: "receipt", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           PG1,
		Table:          "form_pg1",
		Title:          "PG: финансирование проекта",
		RequiredFields: []string{"applicantName", "branch", "guideName", "projectTitle", "academicYear"},
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "groupLeaderSignature", Class: "signature", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           PG2A,
		Table:          "form_pg2a",
		Title:          "PG: публикация статьи",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "paperTitle", "journalName"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "registrationReceipt", Class: "receipt", Required: true},
			{Name: "paperCopy", Class: "paper", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           PG2B,
		Table:          "form_pg2b",
		Title:          "PG: доклад на конференции",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "paperTitle", "conferenceName"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "groupLeaderSignature", Class: "signature", Required: true},
			{Name: "paperCopy", Class: "paper", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
	{
		Type:           R1,
		Table:          "form_r1",
		Title:          "Преподаватели: публикация исследования",
		RequiredFields: append([]string{"applicantName", "branch", "guideName", "paperTitle", "publicationName"}, bankFields...),
		Roles: []AttachmentRole{
			{Name: "guideSignature", Class: "signature", Required: true},
			{Name: "registrationReceipt", Class: "receipt", Required: true},
			{Name: "paperCopy", Class: "paper", Required: true},
			{Name: "additionalDocuments", Class: "documents", Multi: true},
		},
		Reconcile: reconcileCommon,
	},
}

// Variants возвращает все варианты в порядке объявления.
func Variants() []*Variant {
	return registry
}

// Lookup находит вариант по метке формы.
func Lookup(formType string) (*Variant, bool) {
	for _, v := range registry {
		if string(v.Type) == formType {
			return v, true
		}
	}
	return nil, false
}
