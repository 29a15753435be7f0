package billing

import (
	"github.com/shopspring/decimal"
)

// GrossCharge is a fee-inclusive charge: the payer is charged Gross so that
// after the platform deducts Fee, the photographer nets exactly the amount
// the charge was computed from. Values stay unrounded; rounding happens only
// when converting to processor minor units.
type GrossCharge struct {
	Gross decimal.Decimal
	Fee   decimal.Decimal
}

// ComputeGrossCharge inverts "fee deducted from gross": gross = net/(1-rate),
// fee = gross - net. Note this is not net*(1+rate) — that would undercharge
// the payer and the photographer would net less than intended.
func ComputeGrossCharge(net, feeRate decimal.Decimal) (GrossCharge, error) {
	if net.IsNegative() {
		return GrossCharge{}, NewInvalidAmount("net amount must not be negative")
	}
	if feeRate.IsNegative() || feeRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return GrossCharge{}, NewInvalidAmount("fee rate must be in [0, 1)")
	}

	gross := net.Div(decimal.NewFromInt(1).Sub(feeRate))
	return GrossCharge{
		Gross: gross,
		Fee:   gross.Sub(net),
	}, nil
}

// GrossMinorUnits rounds the gross amount to 2 decimals and returns it in
// processor minor units (cents).
func (g GrossCharge) GrossMinorUnits() int64 {
	return toMinorUnits(g.Gross)
}

// FeeMinorUnits rounds the fee amount to 2 decimals and returns it in
// processor minor units (cents).
func (g GrossCharge) FeeMinorUnits() int64 {
	return toMinorUnits(g.Fee)
}

func toMinorUnits(d decimal.Decimal) int64 {
	return d.Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}
