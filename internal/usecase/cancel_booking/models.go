package cancel_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID uuid.UUID // ID бронирования
	TenantID  uuid.UUID // ID клуба для событий вебхуков

	// RequestingUserID пользователь, запросивший отмену.
	// nil означает доверенный внутренний вызов без проверки прав
	RequestingUserID *uuid.UUID

	Reason *string // Причина отмены (опционально)
}

// Response модель ответа с отмененным бронированием
type Response struct {
	ID                 uuid.UUID  // ID бронирования
	SessionID          uuid.UUID  // ID занятия
	MemberID           uuid.UUID  // ID участника
	Status             string     // Статус: cancelled
	CancellationReason *string    // Причина отмены
	CancelledAt        *time.Time // Время отмены

	// LateCancellation отмена позже дедлайна класса, основание для
	// применения штрафной политики вызывающей стороной
	LateCancellation bool

	// ClassRefunded списанное занятие возвращено на абонемент
	ClassRefunded bool

	UpdatedAt time.Time // Время обновления
}
