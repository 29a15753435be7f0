package billing

import (
	"shotfolio/models"

	"github.com/shopspring/decimal"
)

// Balance is the reconciled payment position of a booking. BalanceDue keeps
// its raw sign for auditing; use DisplayBalanceDue for anything user-facing.
type Balance struct {
	Paid       decimal.Decimal
	BalanceDue decimal.Decimal
}

// DisplayBalanceDue floors the balance at zero; an overpaid booking is
// never shown with a negative amount due.
func (b Balance) DisplayBalanceDue() decimal.Decimal {
	if b.BalanceDue.IsNegative() {
		return decimal.Zero
	}
	return b.BalanceDue
}

// PaidFloat returns the paid amount as a float for response payloads.
func (b Balance) PaidFloat() float64 {
	f, _ := b.Paid.Float64()
	return f
}

// DisplayBalanceDueFloat returns the floored balance as a float.
func (b Balance) DisplayBalanceDueFloat() float64 {
	f, _ := b.DisplayBalanceDue().Float64()
	return f
}

// ComputeBalance reconciles the three overlapping payment records on a
// booking: the payment_status flag, the deposit field, and the milestone
// array. The precedence is deliberate and must not be "cleaned up":
//
//  1. A deposit-paid status contributes the deposit amount, unless a
//     milestone named "Deposit" is itself already marked paid (the deposit
//     would otherwise be counted twice).
//  2. Every paid milestone contributes its amount.
//  3. A paid status whose itemized sum falls short of the total wins over
//     the math: rows that predate itemized tracking carry only the flag,
//     so the booking is treated as fully paid.
//
// Pure and total: no I/O, no errors. Malformed milestone payloads decode to
// an empty list upstream (models.MilestoneList) and unknown entries are
// simply skipped here.
func ComputeBalance(b models.Booking) Balance {
	paid := decimal.Zero
	total := decimal.NewFromFloat(b.TotalPrice)

	if b.PaymentStatus == models.PaymentStatusDepositPaid && !hasPaidDepositMilestone(b.PaymentMilestones) {
		paid = paid.Add(decimal.NewFromFloat(b.DepositOrZero()))
	}

	for _, m := range b.PaymentMilestones {
		if m.Status == models.MilestoneStatusPaid {
			paid = paid.Add(decimal.NewFromFloat(m.Amount))
		}
	}

	balance := total.Sub(paid)

	if b.PaymentStatus == models.PaymentStatusPaid && paid.LessThan(total) {
		paid = total
		balance = decimal.Zero
	}

	return Balance{Paid: paid, BalanceDue: balance}
}

func hasPaidDepositMilestone(milestones models.MilestoneList) bool {
	for _, m := range milestones {
		if m.Name == models.MilestoneNameDeposit && m.Status == models.MilestoneStatusPaid {
			return true
		}
	}
	return false
}

// NextPaymentStatus derives the status flag after a milestone settlement,
// keeping the flag consistent with the itemized records it coexists with.
func NextPaymentStatus(b models.Booking) string {
	if len(b.PaymentMilestones) == 0 {
		return b.PaymentStatus
	}
	paidCount := 0
	depositPaid := false
	for _, m := range b.PaymentMilestones {
		if m.Status == models.MilestoneStatusPaid {
			paidCount++
			if m.Name == models.MilestoneNameDeposit {
				depositPaid = true
			}
		}
	}
	switch {
	case paidCount == len(b.PaymentMilestones):
		return models.PaymentStatusPaid
	case paidCount == 0:
		return b.PaymentStatus
	case depositPaid && paidCount == 1:
		return models.PaymentStatusDepositPaid
	default:
		return models.PaymentStatusPartial
	}
}
