package permissions

import "errors"

var (
	ErrInternal        = errors.New("permissions.client: internal error")
	ErrInvalidResponse = errors.New("permissions.client: invalid response from permissions service")
)
