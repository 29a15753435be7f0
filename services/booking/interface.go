package booking

import (
	"context"
	"time"

	bookingRepo "shotfolio/database/repository/booking"
	clientRepo "shotfolio/database/repository/client"
	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/models"
	"shotfolio/services/notification"
)

// CreateBookingInput is the payload for opening a new booking.
type CreateBookingInput struct {
	ClientID      string   `json:"client_id" binding:"required"`
	PackageName   string   `json:"package_name"`
	EventDate     string   `json:"event_date" binding:"required"`
	Status        string   `json:"status"`
	TotalPrice    float64  `json:"total_price"`
	DepositAmount *float64 `json:"deposit_amount"`
}

// BookingDetail is the photographer-facing view of a single booking with the
// reconciled payment position attached.
type BookingDetail struct {
	Booking    models.Booking         `json:"booking"`
	Client     *models.Client         `json:"client,omitempty"`
	AmountPaid float64                `json:"amount_paid"`
	BalanceDue float64                `json:"balance_due"`
	PortalURL  string                 `json:"portal_url"`
	Timeline   []models.ActivityEvent `json:"timeline,omitempty"`
}

// BookingService defines the booking lifecycle operations exposed to
// photographer-facing handlers.
type BookingService interface {
	Create(photographerID string, input CreateBookingInput) (*models.Booking, error)
	GetDetail(photographerID, id string) (*BookingDetail, error)
	List(photographerID string) ([]models.Booking, error)
	UpdateStatus(photographerID, id, status string) (*models.Booking, error)
	SaveContract(photographerID, id, contractText string) (*models.Booking, error)
	SendContract(ctx context.Context, photographerID, id string) (*models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo          bookingRepo.BookingRepository
	Clients       clientRepo.ClientRepository
	Photographers photographerRepo.PhotographerRepository
	Mailer        notification.Mailer
	DepositRate   float64
	PortalBaseURL string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
