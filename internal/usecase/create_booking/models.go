package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание бронирования
type Request struct {
	SessionID      uuid.UUID  // ID занятия
	MemberID       uuid.UUID  // ID участника
	SubscriptionID *uuid.UUID // Явно выбранный абонемент (опционально)
	TenantID       uuid.UUID  // ID клуба для событий вебхуков
	Notes          *string    // Дополнительные заметки (опционально)
	BookedBy       *uuid.UUID // Сотрудник, оформивший запись (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID               uuid.UUID  // ID созданного бронирования
	SessionID        uuid.UUID  // ID занятия
	MemberID         uuid.UUID  // ID участника
	SubscriptionID   *uuid.UUID // Привязанный абонемент
	Status           string     // Статус: confirmed или waitlisted
	WaitlistPosition *int       // Позиция в листе ожидания (только для waitlisted)
	Notes            *string    // Заметки
	BookedBy         *uuid.UUID // Сотрудник, оформивший запись

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
