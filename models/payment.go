package models

// CheckoutSession is returned to the portal after a checkout session is
// created with the payment processor. Amounts are the rounded values the
// processor was actually instructed to charge.
type CheckoutSession struct {
	SessionID   string  `json:"session_id"`
	URL         string  `json:"url"`
	BookingID   string  `json:"booking_id"`
	MilestoneID string  `json:"milestone_id"`
	GrossAmount float64 `json:"gross_amount"`
	FeeAmount   float64 `json:"fee_amount"`
}
