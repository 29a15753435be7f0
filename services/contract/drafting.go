package contract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shotfolio/models"

	"go.uber.org/zap"
)

// DraftingError marks an upstream generation failure so handlers can report
// it as retryable instead of a caller mistake.
type DraftingError struct {
	Code    string
	Message string
}

func (e *DraftingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const CodeUpstreamFailure = "upstreamFailure"

// DraftingService assembles drafting prompts from booking facts and returns
// generated contract text. Persisting and sending the draft is the
// handler's job.
type DraftingService struct {
	Generator TextGenerator
	Logger    *zap.Logger
}

// Draft generates contract text for a booking.
func (s *DraftingService) Draft(ctx context.Context, booking *models.Booking, client *models.Client, photographer *models.Photographer, req models.ContractDraftRequest) (string, error) {
	prompt := buildPrompt(booking, client, photographer, req)

	text, err := s.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.Logger.Error("Contract draft generation failed",
			zap.String("bookingID", booking.ID), zap.Error(err))
		return "", &DraftingError{Code: CodeUpstreamFailure, Message: err.Error()}
	}
	return strings.TrimSpace(text), nil
}

func buildPrompt(b *models.Booking, c *models.Client, p *models.Photographer, req models.ContractDraftRequest) string {
	var sb strings.Builder

	sb.WriteString("Draft a professional photography services contract in plain language.\n\n")
	sb.WriteString(fmt.Sprintf("Photographer: %s", p.Name))
	if p.BusinessName != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", p.BusinessName))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Client: %s\n", c.Name))
	if b.PackageName != "" {
		sb.WriteString(fmt.Sprintf("Package: %s\n", b.PackageName))
	}
	sb.WriteString(fmt.Sprintf("Event date: %s\n", b.EventDate))
	sb.WriteString(fmt.Sprintf("Total price: %.2f\n", b.TotalPrice))
	if b.DepositAmount != nil {
		sb.WriteString(fmt.Sprintf("Deposit due at signing: %.2f\n", *b.DepositAmount))
	}
	for _, m := range b.PaymentMilestones {
		sb.WriteString(fmt.Sprintf("Installment: %s of %.2f due %s\n", m.Name, m.Amount, m.DueDate))
	}
	if req.CancellationFee != "" {
		sb.WriteString(fmt.Sprintf("Cancellation fee: %s\n", req.CancellationFee))
	}
	if req.ExtraTerms != "" {
		sb.WriteString(fmt.Sprintf("\nAdditional terms requested by the photographer:\n%s\n", req.ExtraTerms))
	}
	sb.WriteString(fmt.Sprintf("\nToday's date: %s\n", time.Now().Format("2006-01-02")))
	sb.WriteString("\nInclude sections for scope of work, payment schedule, image delivery, usage rights, cancellation, and liability. Do not invent amounts or dates beyond those given.")

	return sb.String()
}
