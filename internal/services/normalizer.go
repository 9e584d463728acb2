package services

import (
	"context"

	"go.uber.org/zap"

	"submission-portal/internal/dto"
	"submission-portal/internal/entities"
	"submission-portal/internal/forms"
	"submission-portal/pkg/blobstore"
)

// NormalizerInterface строит витрину заявки для проверяющего:
// общие поля по цепочкам соответствий варианта, ссылки на блобы —
// в извлекаемые дескрипторы.
type NormalizerInterface interface {
	Normalize(ctx context.Context, variant *forms.Variant, sub *entities.Submission) *dto.NormalizedSubmissionDTO
}

type Normalizer struct {
	store  blobstore.BlobStorageInterface
	logger *zap.Logger
}

func NewNormalizer(store blobstore.BlobStorageInterface, logger *zap.Logger) NormalizerInterface {
	return &Normalizer{store: store, logger: logger}
}

// Normalize никогда не падает из-за одного вложения: недоступный блоб
// превращается в nil-маркер, остальная витрина строится дальше.
func (n *Normalizer) Normalize(ctx context.Context, variant *forms.Variant, sub *entities.Submission) *dto.NormalizedSubmissionDTO {
	common := variant.Reconcile(sub.Data)

	attachments := make(map[string][]*dto.AttachmentDTO, len(variant.Roles))
	for _, role := range variant.Roles {
		ids := blobIDsOf(sub.Data[role.Name])
		resolved := make([]*dto.AttachmentDTO, 0, len(ids))
		for _, id := range ids {
			resolved = append(resolved, n.resolve(ctx, id))
		}
		attachments[role.Name] = resolved
	}

	return &dto.NormalizedSubmissionDTO{
		ID:          sub.ID,
		FormType:    string(variant.Type),
		FormTitle:   variant.Title,
		Applicant:   common.Applicant,
		Topic:       common.Topic,
		Guide:       common.Guide,
		Branch:      common.Branch,
		Status:      sub.Status,
		SubmittedAt: sub.CreatedAt.Format("2006-01-02 15:04:05"),
		Attachments: attachments,
	}
}

func (n *Normalizer) resolve(ctx context.Context, id string) *dto.AttachmentDTO {
	info, err := n.store.Stat(ctx, id)
	if err != nil {
		n.logger.Warn("вложение недоступно, отдаём маркер отсутствия",
			zap.String("blobID", id), zap.Error(err))
		return nil
	}
	return &dto.AttachmentDTO{
		ID:          info.ID,
		FileName:    info.FileName,
		ContentType: info.ContentType,
		Size:        info.Size,
		URL:         "/file/" + info.ID,
	}
}

// blobIDsOf извлекает ссылки роли из сырой записи: одиночный id либо список.
// После json.Unmarshal список приходит как []interface{}.
func blobIDsOf(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []string:
		return v
	case []interface{}:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				ids = append(ids, s)
			}
		}
		return ids
	default:
		return nil
	}
}
