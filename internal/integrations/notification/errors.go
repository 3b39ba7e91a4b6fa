package notification

import "errors"

var (
	// ErrInternal возвращается при ошибках создания или выполнения запроса
	ErrInternal = errors.New("notification.client: internal error")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса уведомлений
	ErrInvalidResponse = errors.New("notification.client: invalid response")
)
