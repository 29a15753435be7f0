package reminder

import (
	"context"
	"time"

	"shotfolio/models"
)

// BookingStore is the slice of the booking repository the sweeps need.
type BookingStore interface {
	ListPendingDueOn(dueDate string) ([]models.Booking, error)
	ListByEventDate(eventDate string) ([]models.Booking, error)
	StampPreDueReminder(id string, sentAt time.Time) (bool, error)
	StampPostEventNudge(id string, sentAt time.Time) (bool, error)
}

// ClientStore resolves reminder recipients.
type ClientStore interface {
	GetByID(id string) (*models.Client, error)
}

// PhotographerStore resolves the owning photographer's reminder settings.
type PhotographerStore interface {
	GetByID(id string) (*models.Photographer, error)
}

// ReminderEngine runs the two scheduled reminder sweeps. Each sweep is a
// stateless batch pass triggered by an external cron capability; the engine
// itself never schedules anything.
type ReminderEngine interface {
	RunPreDueSweep(ctx context.Context) (models.SweepSummary, error)
	RunPostEventSweep(ctx context.Context) (models.SweepSummary, error)
}
