package check_in_booking

import (
	"context"

	checkInBooking "github.com/m04kA/GymClassService/internal/usecase/check_in_booking"
)

type CheckInBookingUseCase interface {
	Execute(ctx context.Context, req *checkInBooking.Request) (*checkInBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
