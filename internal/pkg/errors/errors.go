package errors

import "errors"

// Общие ошибки приложения. Сервисы оборачивают их через fmt.Errorf("%w: ...")
// а обработчики сопоставляют со статусом HTTP через errors.Is.
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется, когда токен отсутствует или учетные данные неверны.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")
)
