package domain

// BookingWithSession объединяет активное бронирование с его занятием и классом
// Используется при проверке пересечений по времени за один день
type BookingWithSession struct {
	Booking  *Booking
	Session  *Session
	GymClass *GymClass
}
