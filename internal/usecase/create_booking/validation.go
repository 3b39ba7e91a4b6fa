package create_booking

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SessionID == uuid.Nil {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	if req.MemberID == uuid.Nil {
		return fmt.Errorf("%w: memberID is required", ErrInvalidInput)
	}

	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenantID is required", ErrInvalidInput)
	}

	if req.SubscriptionID != nil && *req.SubscriptionID == uuid.Nil {
		return fmt.Errorf("%w: subscriptionID must not be empty", ErrInvalidInput)
	}

	return nil
}
