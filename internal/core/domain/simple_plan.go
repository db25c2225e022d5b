package domain

import "github.com/shopspring/decimal"

// SimplePlan is the coarse single-sheet plan used for quick what-if
// comparisons: one sales figure, one gross-profit rate and four operating
// expense buckets.
type SimplePlan struct {
	Sales     decimal.Decimal `json:"sales"`
	GPRate    decimal.Decimal `json:"gp_rate"`
	OpexH     decimal.Decimal `json:"opex_h"`
	OpexFixed decimal.Decimal `json:"opex_fixed"`
	OpexDep   decimal.Decimal `json:"opex_dep"`
	OpexOther decimal.Decimal `json:"opex_oth"`
}

// OpexTotal sums the four expense buckets.
func (p SimplePlan) OpexTotal() decimal.Decimal {
	return p.OpexH.Add(p.OpexFixed).Add(p.OpexDep).Add(p.OpexOther)
}

// WithSales returns a copy with a different sales figure.
func (p SimplePlan) WithSales(sales decimal.Decimal) SimplePlan {
	p.Sales = sales
	return p
}

// WithGPRate returns a copy with a different gross-profit rate.
func (p SimplePlan) WithGPRate(rate decimal.Decimal) SimplePlan {
	p.GPRate = rate
	return p
}

// SimplePlanResult is the evaluated simple plan.
type SimplePlanResult struct {
	Plan  SimplePlan      `json:"plan"`
	Gross decimal.Decimal `json:"gross"`
	Op    decimal.Decimal `json:"op"`
	Ord   decimal.Decimal `json:"ord"`
}

// NonOperating carries the flat non-operating adjustments applied on top of
// a simple plan's operating income.
type NonOperating struct {
	NOIMisc  decimal.Decimal `json:"noi_misc"`
	NOIGrant decimal.Decimal `json:"noi_grant"`
	NOEInt   decimal.Decimal `json:"noe_int"`
	NOEOther decimal.Decimal `json:"noe_oth"`
}

// Income is total non-operating income.
func (n NonOperating) Income() decimal.Decimal {
	return n.NOIMisc.Add(n.NOIGrant)
}

// Expense is total non-operating expense.
func (n NonOperating) Expense() decimal.Decimal {
	return n.NOEInt.Add(n.NOEOther)
}

// BreakEvenMode selects which profit line the break-even solves for.
type BreakEvenMode string

const (
	BreakEvenOnOperating BreakEvenMode = "OP"
	BreakEvenOnOrdinary  BreakEvenMode = "ORD"
)
