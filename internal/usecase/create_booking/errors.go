package create_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда занятие не найдено
	ErrSessionNotFound = errors.New("create_booking: session not found")

	// ErrGymClassNotFound возвращается, когда класс занятия не найден
	ErrGymClassNotFound = errors.New("create_booking: gym class not found")

	// ErrMemberNotFound возвращается, когда участник не найден
	ErrMemberNotFound = errors.New("create_booking: member not found")

	// ErrSessionNotBookable возвращается, когда занятие отменено или завершено
	ErrSessionNotBookable = errors.New("create_booking: session is not open for booking")

	// ErrDuplicateBooking возвращается, когда у участника уже есть активное
	// бронирование на это занятие
	ErrDuplicateBooking = errors.New("create_booking: member already has an active booking for this session")

	// ErrValidationFailed возвращается при непройденной проверке допуска,
	// причина добавляется в текст ошибки
	ErrValidationFailed = errors.New("create_booking: booking validation failed")

	// ErrSessionFull возвращается, когда заняты все места и лист ожидания
	ErrSessionFull = errors.New("create_booking: session is full and waitlist is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
