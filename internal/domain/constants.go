package domain

// Default class policy values
const (
	DefaultMaxCapacity               = 20
	DefaultMaxWaitlistSize           = 5
	DefaultCancellationDeadlineHours = 2
	DefaultAdvanceBookingDays        = 7
	DefaultSessionDurationMinutes    = 60
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses список статусов, при которых бронирование занимает
// место или позицию в листе ожидания
// Используется для проверки уникальности (session, member) и при выборке конфликтов
var ActiveBookingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusWaitlisted,
}

// TerminalBookingStatuses список конечных статусов бронирования
// Только такие бронирования можно физически удалять
var TerminalBookingStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}
