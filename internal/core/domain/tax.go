package domain

import (
	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	maxCorporateTaxRate   = decimal.RequireFromString("0.55")
	maxConsumptionTaxRate = decimal.RequireFromString("0.2")
)

// TaxPolicy carries the corporate tax rate, the informational consumption tax
// rate and the dividend payout ratio applied to positive net income.
type TaxPolicy struct {
	CorporateTaxRate    decimal.Decimal `json:"corporate_tax_rate"`
	ConsumptionTaxRate  decimal.Decimal `json:"consumption_tax_rate"`
	DividendPayoutRatio decimal.Decimal `json:"dividend_payout_ratio"`
}

// DefaultTaxPolicy returns 30% corporate tax, 10% consumption tax and no
// dividend payout.
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{
		CorporateTaxRate:    decimal.RequireFromString("0.30"),
		ConsumptionTaxRate:  decimal.RequireFromString("0.10"),
		DividendPayoutRatio: decimal.Zero,
	}
}

// Validate checks every rate against its allowed range.
func (t TaxPolicy) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	if t.CorporateTaxRate.IsNegative() || t.CorporateTaxRate.GreaterThan(maxCorporateTaxRate) {
		verr.Add("corporate_tax_rate", "corporate tax rate must be between 0 and 0.55")
	}
	if t.ConsumptionTaxRate.IsNegative() || t.ConsumptionTaxRate.GreaterThan(maxConsumptionTaxRate) {
		verr.Add("consumption_tax_rate", "consumption tax rate must be between 0 and 0.20")
	}
	if t.DividendPayoutRatio.IsNegative() || t.DividendPayoutRatio.GreaterThan(decimal.NewFromInt(1)) {
		verr.Add("dividend_payout_ratio", "dividend payout ratio must be between 0 and 1")
	}
	return verr
}

// EffectiveTax applies the corporate rate to positive ordinary income. Losses
// carry no tax and no carryforward is modeled.
func (t TaxPolicy) EffectiveTax(ordinaryIncome decimal.Decimal) decimal.Decimal {
	if !ordinaryIncome.IsPositive() {
		return decimal.Zero
	}
	return ordinaryIncome.Mul(t.CorporateTaxRate)
}

// ProjectedDividend applies the payout ratio to positive net income.
func (t TaxPolicy) ProjectedDividend(netIncome decimal.Decimal) decimal.Decimal {
	if !netIncome.IsPositive() {
		return decimal.Zero
	}
	return netIncome.Mul(t.DividendPayoutRatio)
}
