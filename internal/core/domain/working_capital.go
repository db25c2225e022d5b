package domain

import (
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

var maxTurnoverDays = decimal.NewFromInt(365)

// WorkingCapitalAssumptions expresses operational working capital in turnover
// days, from which monthly receivable/inventory/payable balances are derived.
type WorkingCapitalAssumptions struct {
	ReceivableDays decimal.Decimal `json:"receivable_days"`
	InventoryDays  decimal.Decimal `json:"inventory_days"`
	PayableDays    decimal.Decimal `json:"payable_days"`
}

// DefaultWorkingCapital returns the standard 45/30/35-day assumptions.
func DefaultWorkingCapital() WorkingCapitalAssumptions {
	return WorkingCapitalAssumptions{
		ReceivableDays: decimal.NewFromInt(45),
		InventoryDays:  decimal.NewFromInt(30),
		PayableDays:    decimal.NewFromInt(35),
	}
}

// Validate checks every turnover-day figure lies in [0,365].
func (w WorkingCapitalAssumptions) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	for field, value := range map[string]decimal.Decimal{
		"receivable_days": w.ReceivableDays,
		"inventory_days":  w.InventoryDays,
		"payable_days":    w.PayableDays,
	} {
		if value.IsNegative() || value.GreaterThan(maxTurnoverDays) {
			verr.Add(field, fmt.Sprintf("%s must be between 0 and 365", field))
		}
	}
	return verr
}
