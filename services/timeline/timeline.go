package timeline

import (
	"fmt"
	"sort"
	"time"

	"shotfolio/models"
)

// RecentBookingWindow is how far back a non-inquiry booking still shows a
// "booking created" entry.
const RecentBookingWindow = 7 * 24 * time.Hour

// Build reconstructs the activity feed from raw booking field state. There
// is no stored event log; every call derives the same events from the same
// snapshot. Events are returned most recent first.
func Build(bookings []models.Booking, now time.Time) []models.ActivityEvent {
	var events []models.ActivityEvent

	for _, b := range bookings {
		events = append(events, derive(b, now)...)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	return events
}

func derive(b models.Booking, now time.Time) []models.ActivityEvent {
	var events []models.ActivityEvent

	add := func(eventType, description string, amount float64, ts time.Time) {
		events = append(events, models.ActivityEvent{
			Type:        eventType,
			BookingID:   b.ID,
			ClientID:    b.ClientID,
			Description: description,
			Amount:      amount,
			Timestamp:   ts,
		})
	}

	switch {
	case b.Status == models.BookingStatusInquiry:
		add(models.ActivityInquiryReceived, "New inquiry received", 0, b.CreatedAt)
	case b.Status != models.BookingStatusDraft && now.Sub(b.CreatedAt) <= RecentBookingWindow:
		add(models.ActivityBookingCreated, "Booking created", 0, b.CreatedAt)
	}

	if b.Status == models.BookingStatusContractSent || b.Status == models.BookingStatusProposalSent {
		ts := b.UpdatedAt
		if ts.IsZero() {
			ts = b.CreatedAt
		}
		add(models.ActivityContractSent, "Contract sent for signature", 0, ts)
	}

	if b.ContractSignedAt != nil {
		add(models.ActivityContractSigned, "Contract signed", 0, *b.ContractSignedAt)
	}

	for _, m := range b.PaymentMilestones {
		if m.PaidAt != nil {
			add(models.ActivityPaymentReceived,
				fmt.Sprintf("Payment received: %s (%.2f)", m.Name, m.Amount),
				m.Amount, *m.PaidAt)
		}
	}

	if b.LastReminderSent != nil {
		add(models.ActivityReminderSent, "Payment reminder sent", 0, *b.LastReminderSent)
	}

	return events
}
