package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "shotfolio/database/repository/booking"
	clientRepo "shotfolio/database/repository/client"
	"shotfolio/models"
	"shotfolio/services/billing"
	"shotfolio/services/notification"
	"shotfolio/services/timeline"
	"shotfolio/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var validStatuses = map[string]bool{
	models.BookingStatusInquiry:        true,
	models.BookingStatusDraft:          true,
	models.BookingStatusContractSent:   true,
	models.BookingStatusProposalSent:   true,
	models.BookingStatusContractSigned: true,
	models.BookingStatusPaymentPending: true,
	models.BookingStatusCompleted:      true,
}

// Create opens a new booking for one of the photographer's clients. When a
// total price is set, the standard two-installment plan is generated up
// front and the payment due date tracks the final installment.
func (s *DefaultBookingService) Create(photographerID string, input CreateBookingInput) (*models.Booking, error) {
	if input.Status != "" && !validStatuses[input.Status] {
		return nil, newInvalidInput("unknown booking status %q", input.Status)
	}
	if input.TotalPrice < 0 {
		return nil, newInvalidInput("total price must not be negative")
	}

	client, err := s.Clients.GetByIDForOwner(input.ClientID, photographerID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrNotFound) {
			return nil, newNotFound("client %s not found", input.ClientID)
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	now := s.now()
	status := input.Status
	if status == "" {
		status = models.BookingStatusDraft
	}

	b := models.Booking{
		ID:             uuid.New().String(),
		PhotographerID: photographerID,
		ClientID:       client.ID,
		PackageName:    input.PackageName,
		EventDate:      input.EventDate,
		Status:         status,
		TotalPrice:     input.TotalPrice,
		PaymentStatus:  models.PaymentStatusPending,
		PortalToken:    uuid.New().String(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if input.TotalPrice > 0 {
		deposit := input.DepositAmount
		if deposit == nil {
			d := billing.DefaultDepositAmount(input.TotalPrice, s.DepositRate)
			deposit = &d
		}
		milestones, err := billing.GenerateStandardMilestones(input.TotalPrice, *deposit, input.EventDate, now)
		if err != nil {
			var berr *billing.BillingError
			if errors.As(err, &berr) {
				return nil, newInvalidInput("%s", berr.Message)
			}
			return nil, err
		}
		b.DepositAmount = deposit
		b.PaymentMilestones = milestones
		b.PaymentDueDate = milestones[len(milestones)-1].DueDate
	} else if _, err := time.Parse(billing.DateLayout, input.EventDate); err != nil {
		return nil, newInvalidInput("event date %q is not a valid YYYY-MM-DD date", input.EventDate)
	}

	if err := s.Repo.Create(&b); err != nil {
		utils.GetLogger().Error("Failed to create booking",
			zap.String("photographerID", photographerID), zap.Error(err))
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &b, nil
}

// GetDetail returns a booking with its reconciled payment position.
func (s *DefaultBookingService) GetDetail(photographerID, id string) (*BookingDetail, error) {
	b, err := s.getOwned(id, photographerID)
	if err != nil {
		return nil, err
	}

	bal := billing.ComputeBalance(*b)
	detail := &BookingDetail{
		Booking:    *b,
		AmountPaid: bal.PaidFloat(),
		BalanceDue: bal.DisplayBalanceDueFloat(),
		PortalURL:  fmt.Sprintf("%s/%s", s.PortalBaseURL, b.PortalToken),
		Timeline:   timeline.Build([]models.Booking{*b}, s.now()),
	}

	if client, err := s.Clients.GetByIDForOwner(b.ClientID, photographerID); err == nil {
		detail.Client = client
	}
	return detail, nil
}

// List returns all of the photographer's bookings.
func (s *DefaultBookingService) List(photographerID string) ([]models.Booking, error) {
	return s.Repo.ListByPhotographer(photographerID)
}

// UpdateStatus moves a booking through its lifecycle. Reaching
// contract-signed stamps the signing time if the portal has not already
// recorded one.
func (s *DefaultBookingService) UpdateStatus(photographerID, id, status string) (*models.Booking, error) {
	if !validStatuses[status] {
		return nil, newInvalidInput("unknown booking status %q", status)
	}

	b, err := s.getOwned(id, photographerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == models.BookingStatusContractSigned && b.ContractSignedAt == nil {
		fields["contract_signed_at"] = now
	}

	if err := s.Repo.UpdateSetDocument(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return s.getOwned(id, photographerID)
}

// SaveContract stores contract text on the booking without sending it.
func (s *DefaultBookingService) SaveContract(photographerID, id, contractText string) (*models.Booking, error) {
	if contractText == "" {
		return nil, newInvalidInput("contract text must not be empty")
	}
	if _, err := s.getOwned(id, photographerID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"contract_text": contractText,
		"updated_at":    s.now(),
	}
	if err := s.Repo.UpdateSetDocument(id, fields); err != nil {
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}
	return s.getOwned(id, photographerID)
}

// SendContract emails the client their portal link and moves the booking to
// contract-sent. The booking must already carry contract text.
func (s *DefaultBookingService) SendContract(ctx context.Context, photographerID, id string) (*models.Booking, error) {
	b, err := s.getOwned(id, photographerID)
	if err != nil {
		return nil, err
	}
	if b.ContractText == "" {
		return nil, newConflict("booking %s has no contract to send", id)
	}
	if b.ContractSignedAt != nil {
		return nil, newConflict("contract on booking %s is already signed", id)
	}

	client, err := s.Clients.GetByIDForOwner(b.ClientID, photographerID)
	if err != nil {
		return nil, newNotFound("client %s not found", b.ClientID)
	}
	if client.Email == "" {
		return nil, newInvalidInput("client %s has no email address", client.ID)
	}

	photographer, err := s.Photographers.GetByID(photographerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up photographer: %w", err)
	}
	fromName := photographer.BusinessName
	if fromName == "" {
		fromName = photographer.Name
	}

	portalURL := fmt.Sprintf("%s/%s", s.PortalBaseURL, b.PortalToken)
	msg := notification.ContractSentEmail(client.Email, client.Name, fromName, portalURL)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		utils.GetLogger().Error("Failed to send contract email",
			zap.String("bookingID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to send contract email: %w", err)
	}

	fields := map[string]interface{}{
		"status":     models.BookingStatusContractSent,
		"updated_at": s.now(),
	}
	if err := s.Repo.UpdateSetDocument(id, fields); err != nil {
		return nil, fmt.Errorf("failed to update booking after send: %w", err)
	}
	return s.getOwned(id, photographerID)
}

func (s *DefaultBookingService) getOwned(id, photographerID string) (*models.Booking, error) {
	b, err := s.Repo.GetByIDForOwner(id, photographerID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, newNotFound("booking %s not found", id)
		}
		return nil, fmt.Errorf("failed to look up booking: %w", err)
	}
	return b, nil
}
