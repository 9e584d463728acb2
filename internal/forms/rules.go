package forms

import (
	"io"
	"mime/multipart"
	"net/http"
	"slices"

	"submission-portal/config"
	apperrors "submission-portal/pkg/errors"
)

// ValidatedFile — принятый файл вместе с типом, определённым по содержимому.
// Дальше по конвейеру используется именно этот тип, а не заявленный клиентом.
type ValidatedFile struct {
	Header      *multipart.FileHeader
	ContentType string
}

// ValidateFields проверяет наличие обязательных скалярных полей варианта.
func ValidateFields(fields map[string]string, v *Variant) error {
	for _, name := range v.RequiredFields {
		if fields[name] == "" {
			return apperrors.NewValidationError(name, "обязательное поле не заполнено")
		}
	}
	return nil
}

// ValidateFiles проверяет набор загруженных файлов против схемы варианта.
// Роли проверяются в порядке объявления, возвращается первое нарушение.
// Никаких записей в хранилище на этом этапе не происходит.
func ValidateFiles(files map[string][]*multipart.FileHeader, v *Variant) (map[string][]ValidatedFile, error) {
	accepted := make(map[string][]ValidatedFile, len(v.Roles))

	for _, role := range v.Roles {
		rule, ok := config.UploadClasses[role.Class]
		if !ok {
			return nil, apperrors.NewValidationError(role.Name, "неизвестный класс вложения '%s'", role.Class)
		}

		group := files[role.Name]

		if role.Multi {
			validated, err := validateGroup(role, rule, group)
			if err != nil {
				return nil, err
			}
			if len(validated) > 0 {
				accepted[role.Name] = validated
			}
			continue
		}

		switch len(group) {
		case 0:
			if role.Required {
				return nil, apperrors.NewValidationError(role.Name, "файл обязателен")
			}
		case 1:
			vf, err := validateSingle(role, rule, group[0])
			if err != nil {
				return nil, err
			}
			accepted[role.Name] = []ValidatedFile{vf}
		default:
			return nil, apperrors.NewValidationError(role.Name, "ожидается один файл, передано %d", len(group))
		}
	}

	return accepted, nil
}

func validateSingle(role AttachmentRole, rule config.UploadRule, fh *multipart.FileHeader) (ValidatedFile, error) {
	if err := checkSize(role, fh, rule.MaxSizeMB); err != nil {
		return ValidatedFile{}, err
	}
	mimeType, err := sniffContentType(fh)
	if err != nil {
		return ValidatedFile{}, apperrors.NewValidationError(role.Name, "не удалось прочитать файл '%s'", fh.Filename)
	}
	if !slices.Contains(rule.AllowedMimeTypes, mimeType) {
		return ValidatedFile{}, apperrors.NewValidationError(role.Name, "недопустимый тип файла: %s", mimeType)
	}
	return ValidatedFile{Header: fh, ContentType: mimeType}, nil
}

// validateGroup применяет квоту набора. Решение принимается один раз по
// итоговому набору файлов заявки и не зависит от их порядка:
// единственный архив проверяется по архивным правилам, иначе каждый файл
// обязан пройти обычные правила класса, а количество — уложиться в MaxFiles.
func validateGroup(role AttachmentRole, rule config.UploadRule, group []*multipart.FileHeader) ([]ValidatedFile, error) {
	if len(group) == 0 {
		if role.Required {
			return nil, apperrors.NewValidationError(role.Name, "требуется хотя бы один файл")
		}
		return nil, nil
	}

	if len(rule.ArchiveMimeTypes) > 0 && len(group) == 1 {
		mimeType, err := sniffContentType(group[0])
		if err != nil {
			return nil, apperrors.NewValidationError(role.Name, "не удалось прочитать файл '%s'", group[0].Filename)
		}
		if slices.Contains(rule.ArchiveMimeTypes, mimeType) {
			if err := checkSize(role, group[0], rule.ArchiveMaxSizeMB); err != nil {
				return nil, err
			}
			return []ValidatedFile{{Header: group[0], ContentType: mimeType}}, nil
		}
		// не архив — файл пойдёт по обычным правилам класса ниже
	}

	if rule.MaxFiles > 0 && len(group) > rule.MaxFiles {
		if len(rule.ArchiveMimeTypes) > 0 {
			return nil, apperrors.NewValidationError(role.Name,
				"передано %d файлов: допускается не более %d PDF либо один ZIP-архив", len(group), rule.MaxFiles)
		}
		return nil, apperrors.NewValidationError(role.Name,
			"передано %d файлов: допускается не более %d", len(group), rule.MaxFiles)
	}

	validated := make([]ValidatedFile, 0, len(group))
	for _, fh := range group {
		vf, err := validateSingle(role, rule, fh)
		if err != nil {
			return nil, err
		}
		validated = append(validated, vf)
	}
	return validated, nil
}

func checkSize(role AttachmentRole, fh *multipart.FileHeader, maxSizeMB int64) error {
	if maxSizeMB <= 0 {
		return nil
	}
	maxSizeBytes := maxSizeMB * 1024 * 1024
	if fh.Size > maxSizeBytes {
		return apperrors.NewValidationError(role.Name,
			"размер файла '%s' (%d KB) превышает лимит в %d MB", fh.Filename, fh.Size/1024, maxSizeMB)
	}
	return nil
}

// sniffContentType определяет тип по содержимому (magic numbers),
// заявленному клиентом заголовку не доверяем.
func sniffContentType(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	return http.DetectContentType(buffer[:n]), nil
}
