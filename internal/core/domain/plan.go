package domain

import (
	"github.com/shopspring/decimal"
)

// CostMethod tags how a cost item's value is interpreted.
type CostMethod string

const (
	CostMethodRate   CostMethod = "rate"
	CostMethodAmount CostMethod = "amount"
)

// RateBase selects what a rate-method cost item multiplies against.
type RateBase string

const (
	RateBaseSales RateBase = "sales"
	RateBaseGross RateBase = "gross"
	RateBaseFixed RateBase = "fixed"
)

// CostItem is the flattened cost configuration for one line-item code: either
// a flat annual amount or a rate applied to sales, gross profit or nothing.
type CostItem struct {
	Method CostMethod      `json:"method"`
	Value  decimal.Decimal `json:"value"`
	Base   RateBase        `json:"rate_base"`
}

var fteFloor = decimal.RequireFromString("0.0001")

// PlanConfig holds the calculation settings for the contribution model. Items
// may be mutated through SetRate/SetAmount/AddAmount during setup; once a
// compute pass starts the config must be treated as read-only. Clone before
// handing it to concurrent sweeps.
type PlanConfig struct {
	BaseSales            decimal.Decimal
	FTE                  decimal.Decimal
	Unit                 string
	Currency             string
	FiscalYearStartMonth int
	ForecastYears        int
	Items                map[string]CostItem

	SalesPlan      *SalesPlan
	CostPlan       *CostPlan
	CapexPlan      *CapexPlan
	LoanSchedule   *LoanSchedule
	TaxPolicy      *TaxPolicy
	WorkingCapital *WorkingCapitalAssumptions
}

// NewPlanConfig constructs a config, clamping FTE to a small positive floor
// and normalizing the fiscal settings.
func NewPlanConfig(baseSales, fte decimal.Decimal, unit, currency string, fiscalYearStartMonth, forecastYears int) *PlanConfig {
	if !fte.IsPositive() {
		fte = fteFloor
	}
	if currency == "" {
		currency = "JPY"
	}
	if fiscalYearStartMonth < 1 || fiscalYearStartMonth > MonthsPerYear {
		fiscalYearStartMonth = 1
	}
	if forecastYears < 1 {
		forecastYears = 1
	}
	return &PlanConfig{
		BaseSales:            baseSales,
		FTE:                  fte,
		Unit:                 unit,
		Currency:             currency,
		FiscalYearStartMonth: fiscalYearStartMonth,
		ForecastYears:        forecastYears,
		Items:                make(map[string]CostItem),
	}
}

// SetRate configures code as a rate against the given base.
func (p *PlanConfig) SetRate(code string, rate decimal.Decimal, base RateBase) {
	if base == "" {
		base = RateBaseSales
	}
	p.Items[code] = CostItem{Method: CostMethodRate, Value: rate, Base: base}
}

// SetAmount configures code as a flat annual amount.
func (p *PlanConfig) SetAmount(code string, amount decimal.Decimal) {
	p.Items[code] = CostItem{Method: CostMethodAmount, Value: amount, Base: RateBaseFixed}
}

// AddAmount adds to an existing amount item, or creates one.
func (p *PlanConfig) AddAmount(code string, amount decimal.Decimal) {
	if existing, ok := p.Items[code]; ok && existing.Method == CostMethodAmount {
		existing.Value = existing.Value.Add(amount)
		p.Items[code] = existing
		return
	}
	p.SetAmount(code, amount)
}

// Clone deep-copies the item map so sweeps can perturb a config without
// sharing mutable state. The attached typed plans are shared (read-only).
func (p *PlanConfig) Clone() *PlanConfig {
	cloned := *p
	cloned.Items = make(map[string]CostItem, len(p.Items))
	for code, item := range p.Items {
		cloned.Items[code] = item
	}
	return &cloned
}

// HasStatementInputs reports whether every typed plan needed for full
// statement construction is attached.
func (p *PlanConfig) HasStatementInputs() bool {
	return p.SalesPlan != nil && p.CostPlan != nil && p.CapexPlan != nil &&
		p.LoanSchedule != nil && p.TaxPolicy != nil && p.WorkingCapital != nil
}
