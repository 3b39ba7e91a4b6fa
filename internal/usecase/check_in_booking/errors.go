package check_in_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_in_booking: booking not found")

	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("check_in_booking: session not found")

	// ErrCannotCheckIn возвращается, когда чек-ин недопустим для текущего
	// статуса бронирования: отметить можно только подтвержденное
	ErrCannotCheckIn = errors.New("check_in_booking: only confirmed bookings can be checked in")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in_booking: internal error")
)
