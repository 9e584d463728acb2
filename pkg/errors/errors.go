package errors

import "fmt"

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenNotYetValid     = fmt.Errorf("токен ещё не активен")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Файловое хранилище
	ErrBlobNotFound  = fmt.Errorf("файл не найден в хранилище")
	ErrStoreNotReady = fmt.Errorf("файловое хранилище ещё не инициализировано")
	ErrMalformedID   = fmt.Errorf("некорректный идентификатор")
)

// HttpError несёт код ответа и сообщение для клиента; внутренняя причина
// остаётся в Err и попадает только в логи.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error, context map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Context: context,
	}
}

// ValidationError — нарушение правил приёма файлов или обязательных полей формы.
// Side effects на этом этапе ещё не произошли, заявителю можно вернуть 400.
type ValidationError struct {
	Role    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("поле '%s': %s", e.Role, e.Message)
	}
	return e.Message
}

func NewValidationError(role, format string, args ...interface{}) error {
	return &ValidationError{Role: role, Message: fmt.Sprintf(format, args...)}
}

// UploadError — сбой записи в хранилище в середине пакета загрузок.
// К моменту возврата компенсирующее удаление уже выполнено.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("не удалось загрузить вложения: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

func NewUploadError(err error) error { return &UploadError{Err: err} }

// PersistError — сбой записи метаданных после успешной загрузки всех файлов.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("не удалось сохранить запись формы: %v", e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func NewPersistError(err error) error { return &PersistError{Err: err} }
