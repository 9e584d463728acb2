package forms

// UntitledTopic подставляется, когда ни одно из полей-кандидатов темы не заполнено.
const UntitledTopic = "Untitled Project"

var (
	topicChain     = []string{"projectTitle", "paperTitle", "topic"}
	applicantChain = []string{"applicantName", "studentName", "facultyName"}
	guideChain     = []string{"guideName", "supervisorName"}
	branchChain    = []string{"branch", "department"}
)

// reconcileCommon сводит сырые поля записи к общей витрине.
// Каждое общее поле берётся из первого непустого кандидата своей цепочки.
func reconcileCommon(data map[string]interface{}) CommonFields {
	topic := firstNonEmpty(data, topicChain)
	if topic == "" {
		topic = UntitledTopic
	}
	return CommonFields{
		Applicant: firstNonEmpty(data, applicantChain),
		Topic:     topic,
		Guide:     firstNonEmpty(data, guideChain),
		Branch:    firstNonEmpty(data, branchChain),
	}
}

func firstNonEmpty(data map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if raw, ok := data[key]; ok {
			if s, ok := raw.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
