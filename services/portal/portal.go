package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "shotfolio/database/repository/booking"
	clientRepo "shotfolio/database/repository/client"
	photographerRepo "shotfolio/database/repository/photographer"
	"shotfolio/models"
	"shotfolio/services/billing"
	"shotfolio/services/payment"
	"shotfolio/services/timeline"
	"shotfolio/utils"

	"go.uber.org/zap"
)

// PortalError carries a stable code so handlers can map failures onto the
// right HTTP status.
type PortalError struct {
	Code    string
	Message string
}

func (e *PortalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	CodeNotFound = "notFound"
	CodeConflict = "conflict"
)

// PortalView is the client-facing projection of a booking. It deliberately
// omits internal identifiers beyond what the portal page needs.
type PortalView struct {
	BookingID        string                 `json:"booking_id"`
	PhotographerName string                 `json:"photographer_name"`
	ClientName       string                 `json:"client_name"`
	PackageName      string                 `json:"package_name,omitempty"`
	EventDate        string                 `json:"event_date"`
	Status           string                 `json:"status"`
	TotalPrice       float64                `json:"total_price"`
	AmountPaid       float64                `json:"amount_paid"`
	BalanceDue       float64                `json:"balance_due"`
	Milestones       models.MilestoneList   `json:"milestones,omitempty"`
	ContractText     string                 `json:"contract_text,omitempty"`
	ContractSignedAt *time.Time             `json:"contract_signed_at,omitempty"`
	Timeline         []models.ActivityEvent `json:"timeline,omitempty"`
}

// PortalService serves the unauthenticated client portal. Every operation
// is keyed by the booking's opaque portal token.
type PortalService interface {
	GetView(ctx context.Context, token string) (*PortalView, error)
	SignContract(ctx context.Context, token string) (*PortalView, error)
	CreateCheckout(ctx context.Context, token, milestoneID string) (*models.CheckoutSession, error)
	Invalidate(ctx context.Context, token string)
}

// DefaultPortalService is the production implementation. Views are cached
// in Redis under the portal token; any mutation invalidates the entry.
type DefaultPortalService struct {
	Bookings      bookingRepo.BookingRepository
	Clients       clientRepo.ClientRepository
	Photographers photographerRepo.PhotographerRepository
	Checkout      *payment.CheckoutService
}

// GetView resolves a portal token to its client-facing booking view.
func (s *DefaultPortalService) GetView(ctx context.Context, token string) (*PortalView, error) {
	cacheKey := utils.PortalCachePrefix + token
	cache := utils.GetPortalCacheClient()

	if data, err := cache.Get(ctx, cacheKey).Result(); err == nil {
		var view PortalView
		if err := json.Unmarshal([]byte(data), &view); err == nil {
			return &view, nil
		}
		// A corrupt entry is dropped and rebuilt from the database.
		cache.Del(ctx, cacheKey)
	}

	view, err := s.buildView(token)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(view); err == nil {
		if err := cache.Set(ctx, cacheKey, data, utils.PortalCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("Failed to cache portal view", zap.Error(err))
		}
	}
	return view, nil
}

// SignContract records the client's acceptance of the contract. Signing is
// idempotent in effect but a second attempt is reported as a conflict so the
// portal can show the right message.
func (s *DefaultPortalService) SignContract(ctx context.Context, token string) (*PortalView, error) {
	b, err := s.byToken(token)
	if err != nil {
		return nil, err
	}
	if b.ContractText == "" {
		return nil, &PortalError{Code: CodeConflict, Message: "no contract is attached to this booking"}
	}
	if b.ContractSignedAt != nil {
		return nil, &PortalError{Code: CodeConflict, Message: "this contract has already been signed"}
	}

	now := time.Now()
	fields := map[string]interface{}{
		"contract_signed_at": now,
		"status":             models.BookingStatusContractSigned,
		"updated_at":         now,
	}
	if err := s.Bookings.UpdateSetDocument(b.ID, fields); err != nil {
		return nil, fmt.Errorf("failed to record contract signature: %w", err)
	}

	utils.GetLogger().Info("Contract signed via portal", zap.String("bookingID", b.ID))
	s.Invalidate(ctx, token)
	return s.buildView(token)
}

// CreateCheckout starts a payment for one milestone on the booking behind
// the token.
func (s *DefaultPortalService) CreateCheckout(ctx context.Context, token, milestoneID string) (*models.CheckoutSession, error) {
	b, err := s.byToken(token)
	if err != nil {
		return nil, err
	}
	sess, err := s.Checkout.CreateMilestoneCheckout(ctx, b, milestoneID)
	if err != nil {
		return nil, err
	}
	// The view is stale the moment the webhook settles the milestone;
	// dropping it now keeps the window small.
	s.Invalidate(ctx, token)
	return sess, nil
}

// Invalidate drops the cached view for a token. Used after any mutation,
// including webhook settlements arriving outside the portal.
func (s *DefaultPortalService) Invalidate(ctx context.Context, token string) {
	if err := utils.GetPortalCacheClient().Del(ctx, utils.PortalCachePrefix+token).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate portal cache",
			zap.String("token", token), zap.Error(err))
	}
}

func (s *DefaultPortalService) byToken(token string) (*models.Booking, error) {
	b, err := s.Bookings.GetByPortalToken(token)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &PortalError{Code: CodeNotFound, Message: "no booking matches this link"}
		}
		return nil, fmt.Errorf("failed to resolve portal token: %w", err)
	}
	return b, nil
}

func (s *DefaultPortalService) buildView(token string) (*PortalView, error) {
	b, err := s.byToken(token)
	if err != nil {
		return nil, err
	}

	bal := billing.ComputeBalance(*b)
	view := &PortalView{
		BookingID:        b.ID,
		PackageName:      b.PackageName,
		EventDate:        b.EventDate,
		Status:           b.Status,
		TotalPrice:       b.TotalPrice,
		AmountPaid:       bal.PaidFloat(),
		BalanceDue:       bal.DisplayBalanceDueFloat(),
		Milestones:       b.PaymentMilestones,
		ContractText:     b.ContractText,
		ContractSignedAt: b.ContractSignedAt,
		Timeline:         timeline.Build([]models.Booking{*b}, time.Now()),
	}

	if client, err := s.Clients.GetByID(b.ClientID); err == nil {
		view.ClientName = client.Name
	}
	if p, err := s.Photographers.GetByID(b.PhotographerID); err == nil {
		view.PhotographerName = p.BusinessName
		if view.PhotographerName == "" {
			view.PhotographerName = p.Name
		}
	}
	return view, nil
}
