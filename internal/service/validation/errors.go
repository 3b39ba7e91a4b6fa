package validation

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда абонемент не найден
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionNotOwned возвращается, когда абонемент принадлежит другому участнику
	ErrSubscriptionNotOwned = errors.New("subscription does not belong to member")

	// ErrSubscriptionNotActive возвращается, когда абонемент не активен
	ErrSubscriptionNotActive = errors.New("subscription is not active")

	// ErrNoActiveSubscription возвращается, когда у участника нет активного абонемента
	ErrNoActiveSubscription = errors.New("member does not have an active subscription")

	// ErrNoClassesRemaining возвращается, когда на абонементе не осталось занятий
	ErrNoClassesRemaining = errors.New("no classes remaining on subscription")

	// ErrOverlappingBooking возвращается при пересечении с другим бронированием участника
	ErrOverlappingBooking = errors.New("member has an overlapping booking")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("validation service: internal error")
)
