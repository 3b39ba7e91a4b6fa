package cancel_booking

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingID is required", ErrInvalidInput)
	}

	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.RequestingUserID != nil && *req.RequestingUserID == uuid.Nil {
		return fmt.Errorf("%w: requestingUserID must not be empty", ErrInvalidInput)
	}

	return nil
}
