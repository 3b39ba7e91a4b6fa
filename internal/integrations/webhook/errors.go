package webhook

import "errors"

var (
	ErrInternal        = errors.New("webhook.publisher: internal error")
	ErrInvalidResponse = errors.New("webhook.publisher: invalid response from webhook dispatcher")
)
