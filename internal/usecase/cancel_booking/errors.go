package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("cancel_booking: session not found")

	// ErrAccessDenied возвращается, когда пользователь пытается отменить
	// чужое бронирование без соответствующего права
	ErrAccessDenied = errors.New("cancel_booking: you can only cancel your own bookings")

	// ErrCannotCancel возвращается, когда бронирование уже в терминальном
	// статусе и не может быть отменено
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
