package booking

import (
	"context"
	"testing"
	"time"

	bookingRepo "shotfolio/database/repository/booking"
	clientRepo "shotfolio/database/repository/client"
	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/models"
	"shotfolio/services/notification"

	"github.com/stretchr/testify/require"
)

// The mocks embed the repository interfaces so each test only fills in the
// methods it expects to be called.

type bookingRepoMock struct {
	bookingRepo.BookingRepository
	createFn            func(b *models.Booking) error
	getByIDForOwnerFn   func(id, photographerID string) (*models.Booking, error)
	updateSetDocumentFn func(id string, fields map[string]interface{}) error
}

func (m *bookingRepoMock) Create(b *models.Booking) error { return m.createFn(b) }
func (m *bookingRepoMock) GetByIDForOwner(id, photographerID string) (*models.Booking, error) {
	return m.getByIDForOwnerFn(id, photographerID)
}
func (m *bookingRepoMock) UpdateSetDocument(id string, fields map[string]interface{}) error {
	return m.updateSetDocumentFn(id, fields)
}

type clientRepoMock struct {
	clientRepo.ClientRepository
	getByIDForOwnerFn func(id, photographerID string) (*models.Client, error)
}

func (m *clientRepoMock) GetByIDForOwner(id, photographerID string) (*models.Client, error) {
	return m.getByIDForOwnerFn(id, photographerID)
}

type photographerRepoMock struct {
	photographerRepo.PhotographerRepository
	getByIDFn func(id string) (*models.Photographer, error)
}

func (m *photographerRepoMock) GetByID(id string) (*models.Photographer, error) {
	return m.getByIDFn(id)
}

type mailerMock struct {
	sent []notification.EmailMessage
}

func (m *mailerMock) Send(_ context.Context, msg notification.EmailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

var testNow = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

func ownedClient(id, photographerID string) (*models.Client, error) {
	if photographerID != "ph-1" {
		return nil, clientRepo.ErrNotFound
	}
	return &models.Client{ID: id, PhotographerID: photographerID, Name: "Dana", Email: "dana@example.com"}, nil
}

func TestCreate_GeneratesMilestonePlan(t *testing.T) {
	var created *models.Booking
	svc := &DefaultBookingService{
		Repo: &bookingRepoMock{createFn: func(b *models.Booking) error {
			created = b
			return nil
		}},
		Clients:       &clientRepoMock{getByIDForOwnerFn: ownedClient},
		DepositRate:   0.25,
		PortalBaseURL: "https://app.shotfolio.io/portal",
		Now:           func() time.Time { return testNow },
	}

	b, err := svc.Create("ph-1", CreateBookingInput{
		ClientID:   "cl-1",
		EventDate:  "2025-08-15",
		TotalPrice: 2000,
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	require.Equal(t, models.BookingStatusDraft, b.Status)
	require.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	require.NotEmpty(t, b.PortalToken)

	// No explicit deposit: defaults to 25% of the total.
	require.NotNil(t, b.DepositAmount)
	require.Equal(t, 500.0, *b.DepositAmount)

	require.Len(t, b.PaymentMilestones, 2)
	require.Equal(t, models.MilestoneNameDeposit, b.PaymentMilestones[0].Name)
	require.Equal(t, 500.0, b.PaymentMilestones[0].Amount)
	require.Equal(t, "2025-05-01", b.PaymentMilestones[0].DueDate)
	require.Equal(t, models.MilestoneNameFinal, b.PaymentMilestones[1].Name)
	require.Equal(t, 1500.0, b.PaymentMilestones[1].Amount)
	require.Equal(t, "2025-07-16", b.PaymentMilestones[1].DueDate)

	// The booking-level due date tracks the final installment.
	require.Equal(t, "2025-07-16", b.PaymentDueDate)
}

func TestCreate_ExplicitDepositIsKept(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:        &bookingRepoMock{createFn: func(b *models.Booking) error { return nil }},
		Clients:     &clientRepoMock{getByIDForOwnerFn: ownedClient},
		DepositRate: 0.25,
		Now:         func() time.Time { return testNow },
	}

	deposit := 300.0
	b, err := svc.Create("ph-1", CreateBookingInput{
		ClientID:      "cl-1",
		EventDate:     "2025-08-15",
		TotalPrice:    2000,
		DepositAmount: &deposit,
	})
	require.NoError(t, err)
	require.Equal(t, 300.0, b.PaymentMilestones[0].Amount)
	require.Equal(t, 1700.0, b.PaymentMilestones[1].Amount)
}

func TestCreate_ZeroPriceInquirySkipsMilestones(t *testing.T) {
	svc := &DefaultBookingService{
		Repo:    &bookingRepoMock{createFn: func(b *models.Booking) error { return nil }},
		Clients: &clientRepoMock{getByIDForOwnerFn: ownedClient},
		Now:     func() time.Time { return testNow },
	}

	b, err := svc.Create("ph-1", CreateBookingInput{
		ClientID:  "cl-1",
		EventDate: "2025-08-15",
		Status:    models.BookingStatusInquiry,
	})
	require.NoError(t, err)
	require.Empty(t, b.PaymentMilestones)
	require.Nil(t, b.DepositAmount)
	require.Equal(t, models.BookingStatusInquiry, b.Status)
}

func TestCreate_ClientOwnedByAnotherPhotographer(t *testing.T) {
	svc := &DefaultBookingService{
		Clients: &clientRepoMock{getByIDForOwnerFn: ownedClient},
		Now:     func() time.Time { return testNow },
	}

	_, err := svc.Create("ph-2", CreateBookingInput{
		ClientID:   "cl-1",
		EventDate:  "2025-08-15",
		TotalPrice: 1000,
	})
	var berr *BookingError
	require.ErrorAs(t, err, &berr)
	require.Equal(t, CodeNotFound, berr.Code)
}

func TestCreate_InvalidEventDate(t *testing.T) {
	svc := &DefaultBookingService{
		Clients: &clientRepoMock{getByIDForOwnerFn: ownedClient},
		Now:     func() time.Time { return testNow },
	}

	_, err := svc.Create("ph-1", CreateBookingInput{
		ClientID:   "cl-1",
		EventDate:  "15/08/2025",
		TotalPrice: 1000,
	})
	var berr *BookingError
	require.ErrorAs(t, err, &berr)
	require.Equal(t, CodeInvalidInput, berr.Code)
}

func TestUpdateStatus_SigningStampsTime(t *testing.T) {
	stored := &models.Booking{ID: "bk-1", PhotographerID: "ph-1", Status: models.BookingStatusContractSent}
	var fields map[string]interface{}

	svc := &DefaultBookingService{
		Repo: &bookingRepoMock{
			getByIDForOwnerFn: func(id, photographerID string) (*models.Booking, error) {
				return stored, nil
			},
			updateSetDocumentFn: func(id string, f map[string]interface{}) error {
				fields = f
				return nil
			},
		},
		Now: func() time.Time { return testNow },
	}

	_, err := svc.UpdateStatus("ph-1", "bk-1", models.BookingStatusContractSigned)
	require.NoError(t, err)
	require.Equal(t, models.BookingStatusContractSigned, fields["status"])
	require.Equal(t, testNow, fields["contract_signed_at"])
}

func TestSendContract_RequiresContractText(t *testing.T) {
	svc := &DefaultBookingService{
		Repo: &bookingRepoMock{
			getByIDForOwnerFn: func(id, photographerID string) (*models.Booking, error) {
				return &models.Booking{ID: id, PhotographerID: photographerID}, nil
			},
		},
		Now: func() time.Time { return testNow },
	}

	_, err := svc.SendContract(context.Background(), "ph-1", "bk-1")
	var berr *BookingError
	require.ErrorAs(t, err, &berr)
	require.Equal(t, CodeConflict, berr.Code)
}

func TestSendContract_EmailsPortalLinkAndUpdatesStatus(t *testing.T) {
	stored := &models.Booking{
		ID:             "bk-1",
		PhotographerID: "ph-1",
		ClientID:       "cl-1",
		Status:         models.BookingStatusDraft,
		ContractText:   "Agreement between the parties...",
		PortalToken:    "tok-abc",
	}
	mailer := &mailerMock{}
	var fields map[string]interface{}

	svc := &DefaultBookingService{
		Repo: &bookingRepoMock{
			getByIDForOwnerFn: func(id, photographerID string) (*models.Booking, error) {
				return stored, nil
			},
			updateSetDocumentFn: func(id string, f map[string]interface{}) error {
				fields = f
				return nil
			},
		},
		Clients: &clientRepoMock{getByIDForOwnerFn: ownedClient},
		Photographers: &photographerRepoMock{getByIDFn: func(id string) (*models.Photographer, error) {
			return &models.Photographer{ID: id, Name: "Alex", BusinessName: "Alex Light Studio"}, nil
		}},
		Mailer:        mailer,
		PortalBaseURL: "https://app.shotfolio.io/portal",
		Now:           func() time.Time { return testNow },
	}

	_, err := svc.SendContract(context.Background(), "ph-1", "bk-1")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	require.Equal(t, "dana@example.com", mailer.sent[0].To)
	require.Contains(t, mailer.sent[0].TextBody, "https://app.shotfolio.io/portal/tok-abc")
	require.Contains(t, mailer.sent[0].Subject, "Alex Light Studio")

	require.Equal(t, models.BookingStatusContractSent, fields["status"])
}
