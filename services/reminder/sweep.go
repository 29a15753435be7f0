package reminder

import (
	"context"
	"fmt"
	"time"

	"shotfolio/models"
	"shotfolio/services/billing"
	"shotfolio/services/notification"

	"go.uber.org/zap"
)

// PreDueLeadDays is how many days before the payment due date the pre-due
// reminder fires.
const PreDueLeadDays = 3

// ResendWindow is the minimum gap between two pre-due reminders for the
// same booking.
const ResendWindow = 24 * time.Hour

// sendTimeout bounds each individual email call so one slow delivery cannot
// stall the rest of the batch.
const sendTimeout = 10 * time.Second

// DefaultReminderEngine is the production sweep implementation. Bookings
// are processed sequentially with per-item failure isolation; a sweep
// always produces a summary and only errors when the batch query itself
// fails.
type DefaultReminderEngine struct {
	Bookings      BookingStore
	Clients       ClientStore
	Photographers PhotographerStore
	Mailer        notification.Mailer
	Logger        *zap.Logger
	PortalBaseURL string

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func (e *DefaultReminderEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *DefaultReminderEngine) portalURL(b models.Booking) string {
	return fmt.Sprintf("%s/%s", e.PortalBaseURL, b.PortalToken)
}

// RunPreDueSweep reminds clients whose payment falls due exactly three days
// from today. The timestamp is stamped only after a confirmed dispatch, via
// a conditional update, so immediately re-running the sweep sends nothing:
// eligibility rechecks the 24-hour window against the stamped value.
//
// Note the eligibility windows of the two sweeps differ deliberately: this
// one is a rolling 24-hour guard, the post-event nudge is strictly one-shot.
func (e *DefaultReminderEngine) RunPreDueSweep(ctx context.Context) (models.SweepSummary, error) {
	var summary models.SweepSummary
	now := e.now()

	targetDate := now.AddDate(0, 0, PreDueLeadDays).Format(billing.DateLayout)
	bookings, err := e.Bookings.ListPendingDueOn(targetDate)
	if err != nil {
		return summary, fmt.Errorf("pre-due sweep query failed: %w", err)
	}

	e.Logger.Info("Running pre-due reminder sweep",
		zap.String("dueDate", targetDate),
		zap.Int("candidates", len(bookings)))

	for _, b := range bookings {
		if b.LastReminderSent != nil && now.Sub(*b.LastReminderSent) < ResendWindow {
			summary.AddSkipped(b.ID, "recently-reminded")
			continue
		}

		client, err := e.Clients.GetByID(b.ClientID)
		if err != nil {
			summary.AddFailed(b.ID, fmt.Errorf("client lookup: %w", err))
			continue
		}
		if client.Email == "" {
			summary.AddFailed(b.ID, fmt.Errorf("client %s has no email", client.ID))
			continue
		}

		bal := billing.ComputeBalance(b)
		msg := notification.PaymentReminderEmail(
			client.Email, client.Name,
			bal.DisplayBalanceDueFloat(), b.PaymentDueDate, e.portalURL(b))

		if err := e.send(ctx, msg); err != nil {
			e.Logger.Warn("Pre-due reminder send failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			summary.AddFailed(b.ID, err)
			continue
		}

		applied, err := e.Bookings.StampPreDueReminder(b.ID, now)
		if err != nil {
			e.Logger.Error("Failed to stamp pre-due reminder",
				zap.String("bookingID", b.ID), zap.Error(err))
		} else if !applied {
			e.Logger.Warn("Pre-due reminder stamp lost a race, another sweep already recorded it",
				zap.String("bookingID", b.ID))
		}
		summary.AddSent(b.ID)
	}

	e.Logger.Info("Pre-due reminder sweep finished",
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

// RunPostEventSweep nudges clients whose event was yesterday and who still
// owe a balance. Unlike the pre-due reminder this is strictly one-shot:
// once reminder_sent_at is stamped the booking is excluded forever.
func (e *DefaultReminderEngine) RunPostEventSweep(ctx context.Context) (models.SweepSummary, error) {
	var summary models.SweepSummary
	now := e.now()

	yesterday := now.AddDate(0, 0, -1).Format(billing.DateLayout)
	bookings, err := e.Bookings.ListByEventDate(yesterday)
	if err != nil {
		return summary, fmt.Errorf("post-event sweep query failed: %w", err)
	}

	e.Logger.Info("Running post-event nudge sweep",
		zap.String("eventDate", yesterday),
		zap.Int("candidates", len(bookings)))

	for _, b := range bookings {
		if !isActiveEngagement(b) {
			summary.AddSkipped(b.ID, "not-active")
			continue
		}
		if b.ReminderSentAt != nil {
			summary.AddSkipped(b.ID, "already-sent")
			continue
		}

		photographer, err := e.Photographers.GetByID(b.PhotographerID)
		if err != nil {
			summary.AddFailed(b.ID, fmt.Errorf("photographer lookup: %w", err))
			continue
		}
		if !photographer.AutoRemindersEnabled {
			summary.AddSkipped(b.ID, "reminders-disabled")
			continue
		}

		bal := billing.ComputeBalance(b)
		if !bal.BalanceDue.IsPositive() {
			summary.AddSkipped(b.ID, "no-balance")
			continue
		}

		client, err := e.Clients.GetByID(b.ClientID)
		if err != nil {
			summary.AddFailed(b.ID, fmt.Errorf("client lookup: %w", err))
			continue
		}
		if client.Email == "" {
			summary.AddFailed(b.ID, fmt.Errorf("client %s has no email", client.ID))
			continue
		}

		msg := notification.PostEventNudgeEmail(
			client.Email, client.Name,
			bal.DisplayBalanceDueFloat(), e.portalURL(b))

		if err := e.send(ctx, msg); err != nil {
			e.Logger.Warn("Post-event nudge send failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			summary.AddFailed(b.ID, err)
			continue
		}

		applied, err := e.Bookings.StampPostEventNudge(b.ID, now)
		if err != nil {
			e.Logger.Error("Failed to stamp post-event nudge",
				zap.String("bookingID", b.ID), zap.Error(err))
		} else if !applied {
			e.Logger.Warn("Post-event nudge stamp lost a race, another sweep already recorded it",
				zap.String("bookingID", b.ID))
		}
		summary.AddSent(b.ID)
	}

	e.Logger.Info("Post-event nudge sweep finished",
		zap.Int("sent", summary.Sent),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed))
	return summary, nil
}

func (e *DefaultReminderEngine) send(ctx context.Context, msg notification.EmailMessage) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	return e.Mailer.Send(sendCtx, msg)
}

// isActiveEngagement reports whether the booking is a signed/active
// engagement worth nudging.
func isActiveEngagement(b models.Booking) bool {
	if b.ContractSignedAt != nil {
		return true
	}
	switch b.Status {
	case models.BookingStatusContractSigned,
		models.BookingStatusPaymentPending,
		models.BookingStatusCompleted:
		return true
	}
	return false
}
