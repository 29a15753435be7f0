package payment

import (
	"context"
	"fmt"
	"time"

	"shotfolio/models"
	"shotfolio/services/billing"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// PaymentError carries a stable code so handlers can map failures onto the
// right status class.
type PaymentError struct {
	Code    string
	Message string
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeInvalidInput    = "invalidInput"
	CodeNotFound        = "notFound"
	CodeUpstreamFailure = "upstreamFailure"
)

// BookingStore is the slice of the booking repository checkout needs.
type BookingStore interface {
	GetByID(id string) (*models.Booking, error)
	UpdateSetDocument(id string, fields map[string]interface{}) error
}

// PhotographerStore resolves the connected account receiving the payout.
type PhotographerStore interface {
	GetByID(id string) (*models.Photographer, error)
}

// CheckoutService sizes fee-inclusive charges and creates checkout
// sessions against the photographer's connected account.
type CheckoutService struct {
	Bookings      BookingStore
	Photographers PhotographerStore
	FeeRate       decimal.Decimal
	Currency      string
	PortalBaseURL string
	Logger        *zap.Logger
}

// CreateMilestoneCheckout builds a checkout session for one pending
// milestone. The client is charged the fee-inclusive gross amount so the
// photographer nets exactly the milestone amount after the platform fee.
func (s *CheckoutService) CreateMilestoneCheckout(ctx context.Context, booking *models.Booking, milestoneID string) (*models.CheckoutSession, error) {
	milestone := findMilestone(booking, milestoneID)
	if milestone == nil {
		return nil, &PaymentError{Code: CodeNotFound, Message: fmt.Sprintf("milestone %s not found on booking %s", milestoneID, booking.ID)}
	}
	if milestone.Status == models.MilestoneStatusPaid {
		return nil, &PaymentError{Code: CodeInvalidInput, Message: fmt.Sprintf("milestone %s is already paid", milestoneID)}
	}

	photographer, err := s.Photographers.GetByID(booking.PhotographerID)
	if err != nil {
		return nil, &PaymentError{Code: CodeNotFound, Message: fmt.Sprintf("photographer %s not found", booking.PhotographerID)}
	}
	if photographer.StripeAccountID == "" {
		return nil, &PaymentError{Code: CodeInvalidInput, Message: "photographer has not connected a payout account"}
	}

	charge, err := billing.ComputeGrossCharge(decimal.NewFromFloat(milestone.Amount), s.FeeRate)
	if err != nil {
		return nil, &PaymentError{Code: CodeInvalidInput, Message: err.Error()}
	}

	params := s.buildSessionParams(booking, milestone, photographer, charge)

	sess, err := session.New(params)
	if err != nil {
		s.Logger.Error("Failed to create checkout session",
			zap.String("bookingID", booking.ID),
			zap.String("milestoneID", milestoneID),
			zap.Error(err))
		return nil, &PaymentError{Code: CodeUpstreamFailure, Message: err.Error()}
	}

	return &models.CheckoutSession{
		SessionID:   sess.ID,
		URL:         sess.URL,
		BookingID:   booking.ID,
		MilestoneID: milestone.ID,
		GrossAmount: float64(charge.GrossMinorUnits()) / 100,
		FeeAmount:   float64(charge.FeeMinorUnits()) / 100,
	}, nil
}

// buildSessionParams converts amounts to minor units at this boundary only;
// everything upstream stays unrounded.
func (s *CheckoutService) buildSessionParams(booking *models.Booking, milestone *models.Milestone, photographer *models.Photographer, charge billing.GrossCharge) *stripe.CheckoutSessionParams {
	portalURL := fmt.Sprintf("%s/%s", s.PortalBaseURL, booking.PortalToken)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.Currency),
					UnitAmount: stripe.Int64(charge.GrossMinorUnits()),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%s — %s", booking.PackageName, milestone.Name)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			ApplicationFeeAmount: stripe.Int64(charge.FeeMinorUnits()),
			TransferData: &stripe.CheckoutSessionPaymentIntentDataTransferDataParams{
				Destination: stripe.String(photographer.StripeAccountID),
			},
		},
		SuccessURL: stripe.String(portalURL + "?payment=success"),
		CancelURL:  stripe.String(portalURL + "?payment=cancelled"),
	}
	params.AddMetadata("booking_id", booking.ID)
	params.AddMetadata("milestone_id", milestone.ID)
	return params
}

// HandleCheckoutCompleted settles the milestone a finished checkout session
// points at. Safe to replay: a milestone already marked paid is left alone.
func (s *CheckoutService) HandleCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	bookingID := sess.Metadata["booking_id"]
	milestoneID := sess.Metadata["milestone_id"]
	if bookingID == "" || milestoneID == "" {
		return &PaymentError{Code: CodeInvalidInput, Message: "checkout session metadata is missing booking or milestone id"}
	}

	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return &PaymentError{Code: CodeNotFound, Message: fmt.Sprintf("booking %s not found", bookingID)}
	}

	paymentRef := sess.ID
	if sess.PaymentIntent != nil {
		paymentRef = sess.PaymentIntent.ID
	}

	now := time.Now()
	updated := false
	for i := range booking.PaymentMilestones {
		m := &booking.PaymentMilestones[i]
		if m.ID != milestoneID {
			continue
		}
		if m.Status == models.MilestoneStatusPaid {
			s.Logger.Info("Milestone already settled, ignoring replayed event",
				zap.String("bookingID", bookingID),
				zap.String("milestoneID", milestoneID))
			return nil
		}
		m.Status = models.MilestoneStatusPaid
		m.PaidAt = &now
		m.PaymentRef = paymentRef
		updated = true
		break
	}
	if !updated {
		return &PaymentError{Code: CodeNotFound, Message: fmt.Sprintf("milestone %s not found on booking %s", milestoneID, bookingID)}
	}

	fields := map[string]interface{}{
		"payment_milestones": booking.PaymentMilestones,
		"payment_status":     billing.NextPaymentStatus(*booking),
	}
	if err := s.Bookings.UpdateSetDocument(bookingID, fields); err != nil {
		return fmt.Errorf("failed to persist milestone settlement: %w", err)
	}

	s.Logger.Info("Milestone settled",
		zap.String("bookingID", bookingID),
		zap.String("milestoneID", milestoneID),
		zap.String("paymentRef", paymentRef))
	return nil
}

func findMilestone(b *models.Booking, milestoneID string) *models.Milestone {
	for i := range b.PaymentMilestones {
		if b.PaymentMilestones[i].ID == milestoneID {
			return &b.PaymentMilestones[i]
		}
	}
	return nil
}
