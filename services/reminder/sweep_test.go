package reminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"shotfolio/models"
	"shotfolio/services/notification"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type bookingStoreMock struct {
	pendingFn   func(dueDate string) ([]models.Booking, error)
	eventFn     func(eventDate string) ([]models.Booking, error)
	stampPreFn  func(id string, sentAt time.Time) (bool, error)
	stampPostFn func(id string, sentAt time.Time) (bool, error)
}

func (m *bookingStoreMock) ListPendingDueOn(dueDate string) ([]models.Booking, error) {
	return m.pendingFn(dueDate)
}
func (m *bookingStoreMock) ListByEventDate(eventDate string) ([]models.Booking, error) {
	return m.eventFn(eventDate)
}
func (m *bookingStoreMock) StampPreDueReminder(id string, sentAt time.Time) (bool, error) {
	if m.stampPreFn == nil {
		return true, nil
	}
	return m.stampPreFn(id, sentAt)
}
func (m *bookingStoreMock) StampPostEventNudge(id string, sentAt time.Time) (bool, error) {
	if m.stampPostFn == nil {
		return true, nil
	}
	return m.stampPostFn(id, sentAt)
}

type clientStoreMock struct {
	clients map[string]*models.Client
}

func (m *clientStoreMock) GetByID(id string) (*models.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, errors.New("client not found")
}

type photographerStoreMock struct {
	photographers map[string]*models.Photographer
}

func (m *photographerStoreMock) GetByID(id string) (*models.Photographer, error) {
	if p, ok := m.photographers[id]; ok {
		return p, nil
	}
	return nil, errors.New("photographer not found")
}

type mailerMock struct {
	sent  []notification.EmailMessage
	errFn func(msg notification.EmailMessage) error
}

func (m *mailerMock) Send(ctx context.Context, msg notification.EmailMessage) error {
	if m.errFn != nil {
		if err := m.errFn(msg); err != nil {
			return err
		}
	}
	m.sent = append(m.sent, msg)
	return nil
}

var testNow = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

func newEngine(bookings *bookingStoreMock, clients *clientStoreMock, photographers *photographerStoreMock, mailer *mailerMock) *DefaultReminderEngine {
	return &DefaultReminderEngine{
		Bookings:      bookings,
		Clients:       clients,
		Photographers: photographers,
		Mailer:        mailer,
		Logger:        zap.NewNop(),
		PortalBaseURL: "https://portal.test",
		Now:           func() time.Time { return testNow },
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func pendingBooking(id string) models.Booking {
	return models.Booking{
		ID:             id,
		PhotographerID: "p1",
		ClientID:       "c1",
		TotalPrice:     2000,
		PaymentStatus:  models.PaymentStatusPending,
		PaymentDueDate: "2025-05-04",
		PortalToken:    "tok-" + id,
	}
}

func TestPreDueSweep_SendsAndStamps(t *testing.T) {
	var queriedDate string
	var stamped []string

	bookings := &bookingStoreMock{
		pendingFn: func(dueDate string) ([]models.Booking, error) {
			queriedDate = dueDate
			return []models.Booking{pendingBooking("b1")}, nil
		},
		stampPreFn: func(id string, sentAt time.Time) (bool, error) {
			stamped = append(stamped, id)
			require.Equal(t, testNow, sentAt)
			return true, nil
		},
	}
	clients := &clientStoreMock{clients: map[string]*models.Client{
		"c1": {ID: "c1", Name: "Ava", Email: "ava@example.com"},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, clients, &photographerStoreMock{}, mailer)
	summary, err := e.RunPreDueSweep(context.Background())
	require.NoError(t, err)

	// Due date window: exactly 3 calendar days out, date-only.
	require.Equal(t, "2025-05-04", queriedDate)
	require.Equal(t, 1, summary.Sent)
	require.Equal(t, []string{"b1"}, stamped)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "ava@example.com", mailer.sent[0].To)
	require.Contains(t, mailer.sent[0].TextBody, "https://portal.test/tok-b1")
}

func TestPreDueSweep_DeduplicatesWithin24Hours(t *testing.T) {
	b := pendingBooking("b1")
	b.LastReminderSent = timePtr(testNow.Add(-2 * time.Hour))

	bookings := &bookingStoreMock{
		pendingFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
	}
	mailer := &mailerMock{}

	e := newEngine(bookings, &clientStoreMock{}, &photographerStoreMock{}, mailer)
	summary, err := e.RunPreDueSweep(context.Background())
	require.NoError(t, err)

	require.Equal(t, 0, summary.Sent)
	require.Equal(t, 1, summary.Skipped)
	require.Empty(t, mailer.sent)
	require.Equal(t, "skipped:recently-reminded", summary.Outcomes[0].Result)
}

func TestPreDueSweep_StaleReminderResends(t *testing.T) {
	b := pendingBooking("b1")
	b.LastReminderSent = timePtr(testNow.Add(-25 * time.Hour))

	bookings := &bookingStoreMock{
		pendingFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
	}
	clients := &clientStoreMock{clients: map[string]*models.Client{
		"c1": {ID: "c1", Name: "Ava", Email: "ava@example.com"},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, clients, &photographerStoreMock{}, mailer)
	summary, err := e.RunPreDueSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Sent)
}

func TestPreDueSweep_FailureIsolation(t *testing.T) {
	b1 := pendingBooking("b1") // client has no email
	b2 := pendingBooking("b2") // transport error
	b2.ClientID = "c2"
	b3 := pendingBooking("b3") // fine
	b3.ClientID = "c3"

	bookings := &bookingStoreMock{
		pendingFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b1, b2, b3}, nil
		},
	}
	clients := &clientStoreMock{clients: map[string]*models.Client{
		"c1": {ID: "c1", Name: "NoMail"},
		"c2": {ID: "c2", Name: "Bob", Email: "bob@example.com"},
		"c3": {ID: "c3", Name: "Cara", Email: "cara@example.com"},
	}}
	mailer := &mailerMock{
		errFn: func(msg notification.EmailMessage) error {
			if msg.To == "bob@example.com" {
				return errors.New("smtp timeout")
			}
			return nil
		},
	}

	e := newEngine(bookings, clients, &photographerStoreMock{}, mailer)
	summary, err := e.RunPreDueSweep(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Sent)
	require.Equal(t, 2, summary.Failed)
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "cara@example.com", mailer.sent[0].To)
}

func eventBooking(id string) models.Booking {
	signed := testNow.AddDate(0, 0, -10)
	return models.Booking{
		ID:               id,
		PhotographerID:   "p1",
		ClientID:         "c1",
		TotalPrice:       2000,
		PaymentStatus:    models.PaymentStatusDepositPaid,
		DepositAmount:    floatPtr(500),
		Status:           models.BookingStatusContractSigned,
		ContractSignedAt: &signed,
		EventDate:        "2025-04-30",
		PortalToken:      "tok-" + id,
	}
}

func floatPtr(f float64) *float64 { return &f }

func TestPostEventSweep_SendsAndStamps(t *testing.T) {
	var queriedDate string
	var stamped []string

	bookings := &bookingStoreMock{
		eventFn: func(eventDate string) ([]models.Booking, error) {
			queriedDate = eventDate
			return []models.Booking{eventBooking("b1")}, nil
		},
		stampPostFn: func(id string, sentAt time.Time) (bool, error) {
			stamped = append(stamped, id)
			return true, nil
		},
	}
	clients := &clientStoreMock{clients: map[string]*models.Client{
		"c1": {ID: "c1", Name: "Ava", Email: "ava@example.com"},
	}}
	photographers := &photographerStoreMock{photographers: map[string]*models.Photographer{
		"p1": {ID: "p1", AutoRemindersEnabled: true},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, clients, photographers, mailer)
	summary, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)

	// Date-only match against yesterday.
	require.Equal(t, "2025-04-30", queriedDate)
	require.Equal(t, 1, summary.Sent)
	require.Equal(t, []string{"b1"}, stamped)
	require.Len(t, mailer.sent, 1)
}

func TestPostEventSweep_OneShot(t *testing.T) {
	b := eventBooking("b1")
	b.ReminderSentAt = timePtr(testNow.AddDate(0, 0, -1))

	bookings := &bookingStoreMock{
		eventFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
	}
	photographers := &photographerStoreMock{photographers: map[string]*models.Photographer{
		"p1": {ID: "p1", AutoRemindersEnabled: true},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, &clientStoreMock{}, photographers, mailer)
	summary, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)

	// Excluded regardless of outstanding balance.
	require.Equal(t, 0, summary.Sent)
	require.Equal(t, "skipped:already-sent", summary.Outcomes[0].Result)
	require.Empty(t, mailer.sent)
}

func TestPostEventSweep_SkipsWhenRemindersDisabled(t *testing.T) {
	bookings := &bookingStoreMock{
		eventFn: func(string) ([]models.Booking, error) {
			return []models.Booking{eventBooking("b1")}, nil
		},
	}
	photographers := &photographerStoreMock{photographers: map[string]*models.Photographer{
		"p1": {ID: "p1", AutoRemindersEnabled: false},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, &clientStoreMock{}, photographers, mailer)
	summary, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, "skipped:reminders-disabled", summary.Outcomes[0].Result)
	require.Empty(t, mailer.sent)
}

func TestPostEventSweep_SkipsZeroBalance(t *testing.T) {
	b := eventBooking("b1")
	b.PaymentStatus = models.PaymentStatusPaid

	bookings := &bookingStoreMock{
		eventFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
	}
	photographers := &photographerStoreMock{photographers: map[string]*models.Photographer{
		"p1": {ID: "p1", AutoRemindersEnabled: true},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, &clientStoreMock{}, photographers, mailer)
	summary, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, "skipped:no-balance", summary.Outcomes[0].Result)
	require.Empty(t, mailer.sent)
}

func TestPostEventSweep_SkipsInactiveEngagement(t *testing.T) {
	b := eventBooking("b1")
	b.Status = models.BookingStatusInquiry
	b.ContractSignedAt = nil

	bookings := &bookingStoreMock{
		eventFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
	}
	mailer := &mailerMock{}

	e := newEngine(bookings, &clientStoreMock{}, &photographerStoreMock{}, mailer)
	summary, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, "skipped:not-active", summary.Outcomes[0].Result)
	require.Empty(t, mailer.sent)
}

func TestPostEventSweep_RerunAfterStampSendsNothing(t *testing.T) {
	// Simulate the state the first sweep leaves behind and re-run.
	b := eventBooking("b1")

	bookings := &bookingStoreMock{
		eventFn: func(string) ([]models.Booking, error) {
			return []models.Booking{b}, nil
		},
		stampPostFn: func(id string, sentAt time.Time) (bool, error) {
			stamp := sentAt
			b.ReminderSentAt = &stamp
			return true, nil
		},
	}

	clients := &clientStoreMock{clients: map[string]*models.Client{
		"c1": {ID: "c1", Name: "Ava", Email: "ava@example.com"},
	}}
	photographers := &photographerStoreMock{photographers: map[string]*models.Photographer{
		"p1": {ID: "p1", AutoRemindersEnabled: true},
	}}
	mailer := &mailerMock{}

	e := newEngine(bookings, clients, photographers, mailer)

	first, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.Sent)

	second, err := e.RunPostEventSweep(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, second.Sent)
	require.Len(t, mailer.sent, 1)
}
