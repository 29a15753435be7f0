package billing

import "fmt"

// BillingError carries a stable code alongside the message so handlers can
// map failures to the right status class.
type BillingError struct {
	Code    string
	Message string
}

func (e *BillingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidAmount = "invalidAmount"
	CodeInvalidDate   = "invalidDate"
)

func NewInvalidAmount(msg string) error {
	return &BillingError{Code: CodeInvalidAmount, Message: msg}
}

func NewInvalidDate(msg string) error {
	return &BillingError{Code: CodeInvalidDate, Message: msg}
}
