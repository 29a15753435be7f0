package models

import "time"

// Activity event types derived from booking field state.
const (
	ActivityInquiryReceived = "inquiry_received"
	ActivityBookingCreated  = "booking_created"
	ActivityContractSent    = "contract_sent"
	ActivityContractSigned  = "contract_signed"
	ActivityPaymentReceived = "payment_received"
	ActivityReminderSent    = "reminder_sent"
)

// ActivityEvent is one entry in the derived activity timeline. There is no
// stored event log; events are reconstructed from booking snapshots on read.
type ActivityEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	ClientID    string    `json:"client_id,omitempty"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
