package check_in_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на чек-ин участника
type Request struct {
	BookingID uuid.UUID // ID бронирования
	TenantID  uuid.UUID // ID клуба для событий вебхуков
}

// Response модель ответа с отмеченным бронированием
type Response struct {
	ID             uuid.UUID  // ID бронирования
	SessionID      uuid.UUID  // ID занятия
	MemberID       uuid.UUID  // ID участника
	SubscriptionID *uuid.UUID // Привязанный абонемент
	Status         string     // Статус: checked_in
	ClassDeducted  bool       // Занятие списано с абонемента
	CheckedInAt    *time.Time // Время чек-ина

	UpdatedAt time.Time // Время обновления
}
