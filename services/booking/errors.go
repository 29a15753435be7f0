package booking

import "fmt"

// BookingError carries a stable code so handlers can map service failures
// onto the right HTTP status.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeNotFound     = "notFound"
	CodeInvalidInput = "invalidInput"
	CodeConflict     = "conflict"
)

func newNotFound(format string, args ...interface{}) *BookingError {
	return &BookingError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func newInvalidInput(format string, args ...interface{}) *BookingError {
	return &BookingError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func newConflict(format string, args ...interface{}) *BookingError {
	return &BookingError{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}
