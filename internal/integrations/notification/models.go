package notification

import "github.com/google/uuid"

// Типы уведомлений, шаблоны и двуязычный контент - зона ответственности
// сервиса уведомлений; отсюда уходят только идентификаторы и данные занятия
const (
	typeBookingConfirmation = "booking_confirmation"
	typeWaitlistAdded       = "waitlist_added"
	typeBookingCancellation = "booking_cancellation"
	typeWaitlistPromotion   = "waitlist_promotion"
)

// Request запрос на отправку уведомления участнику
type Request struct {
	Type     string    `json:"type"`
	MemberID uuid.UUID `json:"memberId"`

	SessionID   uuid.UUID `json:"sessionId"`
	ClassNameEN string    `json:"classNameEn"`
	ClassNameAR string    `json:"classNameAr,omitempty"`
	SessionDate string    `json:"sessionDate"` // "2025-10-15"
	StartTime   string    `json:"startTime"`   // "10:00"

	// WaitlistPosition заполняется только для waitlist_added
	WaitlistPosition *int `json:"waitlistPosition,omitempty"`
}
