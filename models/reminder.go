package models

// Reminder outcome results. Skips and failures carry a reason suffix,
// e.g. "skipped:no-email" or "failed:smtp timeout".
const (
	OutcomeSent    = "sent"
	OutcomeSkipped = "skipped"
	OutcomeFailed  = "failed"
)

// ReminderOutcome records what happened to one booking during a sweep.
type ReminderOutcome struct {
	BookingID string `json:"booking_id"`
	Result    string `json:"result"`
}

// SweepSummary is the aggregate result of one reminder sweep. A sweep is
// best effort: per-booking failures are recorded here, never raised.
type SweepSummary struct {
	Sent     int               `json:"sent"`
	Skipped  int               `json:"skipped"`
	Failed   int               `json:"failed"`
	Outcomes []ReminderOutcome `json:"outcomes"`
}

// AddSent records a successful send.
func (s *SweepSummary) AddSent(bookingID string) {
	s.Sent++
	s.Outcomes = append(s.Outcomes, ReminderOutcome{BookingID: bookingID, Result: OutcomeSent})
}

// AddSkipped records a booking excluded from the sweep with a reason.
func (s *SweepSummary) AddSkipped(bookingID, reason string) {
	s.Skipped++
	s.Outcomes = append(s.Outcomes, ReminderOutcome{BookingID: bookingID, Result: OutcomeSkipped + ":" + reason})
}

// AddFailed records a per-booking delivery failure.
func (s *SweepSummary) AddFailed(bookingID string, err error) {
	s.Failed++
	s.Outcomes = append(s.Outcomes, ReminderOutcome{BookingID: bookingID, Result: OutcomeFailed + ":" + err.Error()})
}
