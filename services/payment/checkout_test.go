package payment

import (
	"context"
	"testing"
	"time"

	"shotfolio/models"
	"shotfolio/services/billing"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v76"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingStoreMock struct {
	getByIDFn           func(id string) (*models.Booking, error)
	updateSetDocumentFn func(id string, fields map[string]interface{}) error
}

func (m *bookingStoreMock) GetByID(id string) (*models.Booking, error) {
	return m.getByIDFn(id)
}

func (m *bookingStoreMock) UpdateSetDocument(id string, fields map[string]interface{}) error {
	return m.updateSetDocumentFn(id, fields)
}

type photographerStoreMock struct {
	getByIDFn func(id string) (*models.Photographer, error)
}

func (m *photographerStoreMock) GetByID(id string) (*models.Photographer, error) {
	return m.getByIDFn(id)
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:             "bk-1",
		PhotographerID: "ph-1",
		ClientID:       "cl-1",
		PackageName:    "Gold Wedding Package",
		EventDate:      "2025-06-01",
		TotalPrice:     2000,
		PortalToken:    "tok-abc",
		PaymentStatus:  models.PaymentStatusPending,
		PaymentMilestones: models.MilestoneList{
			{ID: "ms-1", Name: models.MilestoneNameDeposit, Amount: 500, DueDate: "2025-05-01", Status: models.MilestoneStatusPending},
			{ID: "ms-2", Name: models.MilestoneNameFinal, Amount: 1500, DueDate: "2025-05-02", Status: models.MilestoneStatusPending},
		},
	}
}

func TestBuildSessionParams_MinorUnitsAndRouting(t *testing.T) {
	svc := &CheckoutService{
		FeeRate:       decimal.NewFromFloat(0.035),
		Currency:      "usd",
		PortalBaseURL: "https://app.shotfolio.io/portal",
		Logger:        zap.NewNop(),
	}
	booking := testBooking()
	milestone := &booking.PaymentMilestones[0]
	photographer := &models.Photographer{ID: "ph-1", StripeAccountID: "acct_123"}

	charge, err := billing.ComputeGrossCharge(decimal.NewFromFloat(milestone.Amount), svc.FeeRate)
	require.NoError(t, err)

	params := svc.buildSessionParams(booking, milestone, photographer, charge)

	// 500 net at 3.5% grosses up to 518.13; the fee is the 18.13 difference.
	require.Len(t, params.LineItems, 1)
	require.Equal(t, int64(51813), *params.LineItems[0].PriceData.UnitAmount)
	require.Equal(t, int64(1813), *params.PaymentIntentData.ApplicationFeeAmount)
	require.Equal(t, "acct_123", *params.PaymentIntentData.TransferData.Destination)
	require.Equal(t, "usd", *params.LineItems[0].PriceData.Currency)
	require.Contains(t, *params.LineItems[0].PriceData.ProductData.Name, "Gold Wedding Package")
	require.Contains(t, *params.LineItems[0].PriceData.ProductData.Name, models.MilestoneNameDeposit)

	require.Equal(t, "bk-1", params.Metadata["booking_id"])
	require.Equal(t, "ms-1", params.Metadata["milestone_id"])

	require.Equal(t, "https://app.shotfolio.io/portal/tok-abc?payment=success", *params.SuccessURL)
	require.Equal(t, "https://app.shotfolio.io/portal/tok-abc?payment=cancelled", *params.CancelURL)
}

func TestCreateMilestoneCheckout_RejectsPaidMilestone(t *testing.T) {
	paidAt := time.Now()
	booking := testBooking()
	booking.PaymentMilestones[0].Status = models.MilestoneStatusPaid
	booking.PaymentMilestones[0].PaidAt = &paidAt

	svc := &CheckoutService{
		Photographers: &photographerStoreMock{
			getByIDFn: func(id string) (*models.Photographer, error) {
				return &models.Photographer{ID: id, StripeAccountID: "acct_123"}, nil
			},
		},
		FeeRate: decimal.NewFromFloat(0.035),
		Logger:  zap.NewNop(),
	}

	_, err := svc.CreateMilestoneCheckout(context.Background(), booking, "ms-1")
	var perr *PaymentError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeInvalidInput, perr.Code)
}

func TestCreateMilestoneCheckout_RejectsUnconnectedPhotographer(t *testing.T) {
	svc := &CheckoutService{
		Photographers: &photographerStoreMock{
			getByIDFn: func(id string) (*models.Photographer, error) {
				return &models.Photographer{ID: id}, nil
			},
		},
		FeeRate: decimal.NewFromFloat(0.035),
		Logger:  zap.NewNop(),
	}

	_, err := svc.CreateMilestoneCheckout(context.Background(), testBooking(), "ms-2")
	var perr *PaymentError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeInvalidInput, perr.Code)
}

func TestHandleCheckoutCompleted_SettlesMilestone(t *testing.T) {
	booking := testBooking()
	var persisted map[string]interface{}

	svc := &CheckoutService{
		Bookings: &bookingStoreMock{
			getByIDFn: func(id string) (*models.Booking, error) {
				require.Equal(t, "bk-1", id)
				return booking, nil
			},
			updateSetDocumentFn: func(id string, fields map[string]interface{}) error {
				persisted = fields
				return nil
			},
		},
		Logger: zap.NewNop(),
	}

	sess := &stripe.CheckoutSession{
		ID:            "cs_test_1",
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_test_1"},
		Metadata:      map[string]string{"booking_id": "bk-1", "milestone_id": "ms-1"},
	}
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), sess))

	require.NotNil(t, persisted)
	milestones, ok := persisted["payment_milestones"].(models.MilestoneList)
	require.True(t, ok)
	require.Equal(t, models.MilestoneStatusPaid, milestones[0].Status)
	require.NotNil(t, milestones[0].PaidAt)
	require.Equal(t, "pi_test_1", milestones[0].PaymentRef)
	require.Equal(t, models.MilestoneStatusPending, milestones[1].Status)

	// Only the deposit is settled, so the booking moves to deposit-paid.
	require.Equal(t, models.PaymentStatusDepositPaid, persisted["payment_status"])
}

func TestHandleCheckoutCompleted_ReplayedEventIsNoop(t *testing.T) {
	paidAt := time.Now()
	booking := testBooking()
	booking.PaymentMilestones[0].Status = models.MilestoneStatusPaid
	booking.PaymentMilestones[0].PaidAt = &paidAt
	booking.PaymentMilestones[0].PaymentRef = "pi_original"

	updates := 0
	svc := &CheckoutService{
		Bookings: &bookingStoreMock{
			getByIDFn: func(id string) (*models.Booking, error) { return booking, nil },
			updateSetDocumentFn: func(id string, fields map[string]interface{}) error {
				updates++
				return nil
			},
		},
		Logger: zap.NewNop(),
	}

	sess := &stripe.CheckoutSession{
		ID:       "cs_test_replay",
		Metadata: map[string]string{"booking_id": "bk-1", "milestone_id": "ms-1"},
	}
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), sess))
	require.Zero(t, updates)
	require.Equal(t, "pi_original", booking.PaymentMilestones[0].PaymentRef)
}

func TestHandleCheckoutCompleted_MissingMetadata(t *testing.T) {
	svc := &CheckoutService{Logger: zap.NewNop()}

	sess := &stripe.CheckoutSession{ID: "cs_test_bare", Metadata: map[string]string{}}
	err := svc.HandleCheckoutCompleted(context.Background(), sess)

	var perr *PaymentError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, CodeInvalidInput, perr.Code)
}

func TestHandleCheckoutCompleted_FallsBackToSessionRef(t *testing.T) {
	booking := testBooking()
	var persisted map[string]interface{}

	svc := &CheckoutService{
		Bookings: &bookingStoreMock{
			getByIDFn: func(id string) (*models.Booking, error) { return booking, nil },
			updateSetDocumentFn: func(id string, fields map[string]interface{}) error {
				persisted = fields
				return nil
			},
		},
		Logger: zap.NewNop(),
	}

	sess := &stripe.CheckoutSession{
		ID:       "cs_test_2",
		Metadata: map[string]string{"booking_id": "bk-1", "milestone_id": "ms-2"},
	}
	require.NoError(t, svc.HandleCheckoutCompleted(context.Background(), sess))

	milestones := persisted["payment_milestones"].(models.MilestoneList)
	require.Equal(t, "cs_test_2", milestones[1].PaymentRef)
}
