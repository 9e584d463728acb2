package config

// UploadRule описывает правила приёма файлов для одного класса вложений.
type UploadRule struct {
	AllowedMimeTypes []string
	MaxSizeMB        int64

	// Для наборов с квотой "N PDF или один архив":
	// MaxFiles — верхняя граница количества PDF,
	// ArchiveMimeTypes/ArchiveMaxSizeMB — правила для единственного архива.
	MaxFiles         int
	ArchiveMimeTypes []string
	ArchiveMaxSizeMB int64
}

var UploadClasses = map[string]UploadRule{
	// Скан подписи (руководителя, старосты группы и т.д.)
	"signature": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/jpg"},
		MaxSizeMB:        5,
	},
	// Квитанция об оплате / регистрации
	"receipt": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/jpg", "application/pdf"},
		MaxSizeMB:        5,
	},
	// Копия статьи или доклада
	"paper": {
		AllowedMimeTypes: []string{"application/pdf"},
		MaxSizeMB:        10,
	},
	// Пакет дополнительных документов: до 5 PDF по 5 MB,
	// либо ровно один ZIP до 25 MB. Квота оценивается целиком
	// по итоговому набору файлов заявки, не по одному файлу.
	"documents": {
		AllowedMimeTypes: []string{"application/pdf"},
		MaxSizeMB:        5,
		MaxFiles:         5,
		ArchiveMimeTypes: []string{"application/zip", "application/x-zip-compressed"},
		ArchiveMaxSizeMB: 25,
	},
	// Счета и чеки на возмещение, до 10 штук
	"bills": {
		AllowedMimeTypes: []string{"image/jpeg", "image/png", "image/jpg", "application/pdf"},
		MaxSizeMB:        5,
		MaxFiles:         10,
	},
}
