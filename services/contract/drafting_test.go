package contract

import (
	"context"
	"errors"
	"testing"

	"shotfolio/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type generatorMock struct {
	prompt string
	reply  string
	err    error
}

func (g *generatorMock) GenerateContent(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.reply, g.err
}

func draftFixtures() (*models.Booking, *models.Client, *models.Photographer) {
	deposit := 500.0
	b := &models.Booking{
		ID:            "bk-1",
		PackageName:   "Gold Wedding Package",
		EventDate:     "2025-08-15",
		TotalPrice:    2000,
		DepositAmount: &deposit,
		PaymentMilestones: models.MilestoneList{
			{Name: models.MilestoneNameDeposit, Amount: 500, DueDate: "2025-05-01"},
			{Name: models.MilestoneNameFinal, Amount: 1500, DueDate: "2025-07-16"},
		},
	}
	c := &models.Client{ID: "cl-1", Name: "Dana"}
	p := &models.Photographer{ID: "ph-1", Name: "Alex", BusinessName: "Alex Light Studio"}
	return b, c, p
}

func TestDraft_PromptCarriesBookingFacts(t *testing.T) {
	gen := &generatorMock{reply: "  PHOTOGRAPHY SERVICES AGREEMENT...  "}
	svc := &DraftingService{Generator: gen, Logger: zap.NewNop()}
	b, c, p := draftFixtures()

	text, err := svc.Draft(context.Background(), b, c, p, models.ContractDraftRequest{
		BookingID:       "bk-1",
		ExtraTerms:      "Second shooter included.",
		CancellationFee: "25% of the total",
	})
	require.NoError(t, err)
	require.Equal(t, "PHOTOGRAPHY SERVICES AGREEMENT...", text)

	require.Contains(t, gen.prompt, "Alex Light Studio")
	require.Contains(t, gen.prompt, "Dana")
	require.Contains(t, gen.prompt, "Gold Wedding Package")
	require.Contains(t, gen.prompt, "2025-08-15")
	require.Contains(t, gen.prompt, "2000.00")
	require.Contains(t, gen.prompt, "Deposit of 500.00 due 2025-05-01")
	require.Contains(t, gen.prompt, "Final Payment of 1500.00 due 2025-07-16")
	require.Contains(t, gen.prompt, "25% of the total")
	require.Contains(t, gen.prompt, "Second shooter included.")
}

func TestDraft_UpstreamFailure(t *testing.T) {
	gen := &generatorMock{err: errors.New("backend unavailable")}
	svc := &DraftingService{Generator: gen, Logger: zap.NewNop()}
	b, c, p := draftFixtures()

	_, err := svc.Draft(context.Background(), b, c, p, models.ContractDraftRequest{BookingID: "bk-1"})

	var derr *DraftingError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, CodeUpstreamFailure, derr.Code)
}
