package billing

import (
	"fmt"
	"time"

	"shotfolio/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the date-only format used across booking and milestone dates.
const DateLayout = "2006-01-02"

// FinalPaymentLeadDays is how many days before the event the final
// installment falls due.
const FinalPaymentLeadDays = 30

// GenerateStandardMilestones derives the standard two-installment plan:
// a Deposit due today and a Final Payment due 30 days before the event.
// The two amounts always sum to totalPrice exactly. A final due date that
// already lies in the past is kept as-is; the reminder sweeps treat past
// due dates as immediately eligible.
func GenerateStandardMilestones(totalPrice, depositAmount float64, eventDate string, now time.Time) ([]models.Milestone, error) {
	if totalPrice < 0 {
		return nil, NewInvalidAmount("total price must not be negative")
	}
	if depositAmount < 0 || depositAmount > totalPrice {
		return nil, NewInvalidAmount(fmt.Sprintf("deposit %.2f out of range [0, %.2f]", depositAmount, totalPrice))
	}
	event, err := time.Parse(DateLayout, eventDate)
	if err != nil {
		return nil, NewInvalidDate(fmt.Sprintf("event date %q is not a valid YYYY-MM-DD date", eventDate))
	}

	total := decimal.NewFromFloat(totalPrice)
	deposit := decimal.NewFromFloat(depositAmount)
	final, _ := total.Sub(deposit).Float64()

	return []models.Milestone{
		{
			ID:      uuid.New().String(),
			Name:    models.MilestoneNameDeposit,
			Amount:  depositAmount,
			DueDate: now.Format(DateLayout),
			Status:  models.MilestoneStatusPending,
		},
		{
			ID:      uuid.New().String(),
			Name:    models.MilestoneNameFinal,
			Amount:  final,
			DueDate: event.AddDate(0, 0, -FinalPaymentLeadDays).Format(DateLayout),
			Status:  models.MilestoneStatusPending,
		},
	}, nil
}

// DefaultDepositAmount computes the deposit for a total price at the given
// rate, rounded half-up to 2 decimal places.
func DefaultDepositAmount(totalPrice, depositRate float64) float64 {
	d := decimal.NewFromFloat(totalPrice).
		Mul(decimal.NewFromFloat(depositRate)).
		Round(2)
	f, _ := d.Float64()
	return f
}
