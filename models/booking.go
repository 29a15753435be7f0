package models

import "time"

// Booking lifecycle status values.
const (
	BookingStatusInquiry        = "inquiry"
	BookingStatusDraft          = "draft"
	BookingStatusContractSent   = "contract-sent"
	BookingStatusProposalSent   = "proposal-sent"
	BookingStatusContractSigned = "contract-signed"
	BookingStatusPaymentPending = "payment-pending"
	BookingStatusCompleted      = "completed"
)

// Payment status values. The enum overlaps with the deposit field and the
// milestone array; services/billing reconciles the three representations.
const (
	PaymentStatusPending        = "pending"
	PaymentStatusPartial        = "partial"
	PaymentStatusPaid           = "paid"
	PaymentStatusOverdue        = "overdue"
	PaymentStatusPendingDeposit = "pending-deposit"
	PaymentStatusDepositPaid    = "deposit-paid"
)

// Booking represents a client engagement from inquiry through completion.
type Booking struct {
	ID             string `bson:"id" json:"id"`                           // Unique booking identifier (UUID)
	PhotographerID string `bson:"photographer_id" json:"photographer_id"` // Owning photographer
	ClientID       string `bson:"client_id" json:"client_id"`             // Counterparty client
	PackageName    string `bson:"package_name,omitempty" json:"package_name,omitempty"`
	EventDate      string `bson:"event_date" json:"event_date"` // Event date in "YYYY-MM-DD" format
	Status         string `bson:"status" json:"status"`

	// Financials.
	TotalPrice        float64       `bson:"total_price" json:"total_price"`
	DepositAmount     *float64      `bson:"deposit_amount,omitempty" json:"deposit_amount,omitempty"`
	PaymentStatus     string        `bson:"payment_status" json:"payment_status"`
	PaymentMilestones MilestoneList `bson:"payment_milestones,omitempty" json:"payment_milestones,omitempty"`
	PaymentDueDate    string        `bson:"payment_due_date,omitempty" json:"payment_due_date,omitempty"` // "YYYY-MM-DD"

	// Contract.
	ContractText     string     `bson:"contract_text,omitempty" json:"contract_text,omitempty"`
	ContractSignedAt *time.Time `bson:"contract_signed_at,omitempty" json:"contract_signed_at,omitempty"`

	// PortalToken is an opaque bearer capability granting the client
	// unauthenticated access to this booking only.
	PortalToken string `bson:"portal_token" json:"-"`

	// Reminder bookkeeping. LastReminderSent guards the rolling pre-due
	// reminder window; ReminderSentAt is the one-shot post-event nudge flag.
	LastReminderSent *time.Time `bson:"last_reminder_sent,omitempty" json:"last_reminder_sent,omitempty"`
	ReminderSentAt   *time.Time `bson:"reminder_sent_at,omitempty" json:"reminder_sent_at,omitempty"`
	ReminderCount    int        `bson:"reminder_count" json:"reminder_count"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DepositOrZero returns the deposit amount, defaulting to 0 when unset.
func (b *Booking) DepositOrZero() float64 {
	if b.DepositAmount == nil {
		return 0
	}
	return *b.DepositAmount
}
