package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotMarkNoShow возвращается, когда неявку нельзя зафиксировать
	// для текущего статуса бронирования
	ErrCannotMarkNoShow = errors.New("only confirmed bookings can be marked as no-show")

	// ErrNotDeletable возвращается при попытке удалить активное бронирование
	ErrNotDeletable = errors.New("only cancelled or no-show bookings can be deleted")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings service: internal error")
)
