package bookingRepo

import (
	"time"

	"shotfolio/models"
)

// BookingRepository defines methods for booking data access. All reads that
// serve photographer-facing endpoints are owner-scoped so one tenant can
// never observe another tenant's bookings.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// Update replaces an existing booking record.
	Update(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByIDForOwner retrieves a booking only if owned by the photographer.
	GetByIDForOwner(id, photographerID string) (*models.Booking, error)
	// GetByPortalToken retrieves the single booking matching a portal token.
	GetByPortalToken(token string) (*models.Booking, error)
	// ListByPhotographer retrieves all bookings owned by a photographer.
	ListByPhotographer(photographerID string) ([]models.Booking, error)
	// ListPendingDueOn retrieves bookings awaiting payment whose payment due
	// date equals the given "YYYY-MM-DD" date.
	ListPendingDueOn(dueDate string) ([]models.Booking, error)
	// ListByEventDate retrieves bookings whose event date equals the given
	// "YYYY-MM-DD" date.
	ListByEventDate(eventDate string) ([]models.Booking, error)
	// StampPreDueReminder records a pre-due reminder send. The update only
	// matches when no reminder was recorded within the past 24 hours, so
	// overlapping sweeps cannot double-stamp. Returns whether it applied.
	StampPreDueReminder(id string, sentAt time.Time) (bool, error)
	// StampPostEventNudge records the one-shot post-event nudge. The update
	// only matches while reminder_sent_at is still unset. Returns whether it
	// applied.
	StampPostEventNudge(id string, sentAt time.Time) (bool, error)
	// UpdateSetDocument applies a partial $set update to a booking.
	UpdateSetDocument(id string, fields map[string]interface{}) error
}
