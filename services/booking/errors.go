package booking

import "fmt"

const (
	CodeValidation        = "validationError"
	CodeSlotUnavailable   = "slotUnavailable"
	CodeNotFound          = "notFound"
	CodePaymentIncomplete = "paymentIncomplete"
)

type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(format string, args ...any) error {
	return &BookingError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func newNotFoundError(id string) error {
	return &BookingError{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", id)}
}
