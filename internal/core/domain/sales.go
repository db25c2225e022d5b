package domain

import (
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of calendar months in one planning year.
const MonthsPerYear = 12

// MonthlySeries is a 12-month sequence of decimal amounts, index 0 = January.
type MonthlySeries struct {
	Amounts []decimal.Decimal `json:"amounts"`
}

// NewMonthlySeries returns a series of twelve zero amounts.
func NewMonthlySeries() MonthlySeries {
	amounts := make([]decimal.Decimal, MonthsPerYear)
	for i := range amounts {
		amounts[i] = decimal.Zero
	}
	return MonthlySeries{Amounts: amounts}
}

// Validate checks the series holds exactly twelve amounts.
func (s MonthlySeries) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	if len(s.Amounts) != MonthsPerYear {
		verr.Add("amounts", fmt.Sprintf("monthly series must contain exactly %d amounts, got %d", MonthsPerYear, len(s.Amounts)))
	}
	return verr
}

// Total sums all twelve amounts.
func (s MonthlySeries) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s.Amounts {
		total = total.Add(amount)
	}
	return total
}

// ByMonth returns the amount for calendar month 1..12; zero when out of range
// or the series is malformed.
func (s MonthlySeries) ByMonth(month int) decimal.Decimal {
	if month < 1 || month > len(s.Amounts) {
		return decimal.Zero
	}
	return s.Amounts[month-1]
}

// SalesItem is the monthly sales for a specific product sold through a channel.
type SalesItem struct {
	Channel string        `json:"channel"`
	Product string        `json:"product"`
	Monthly MonthlySeries `json:"monthly"`
}

// Validate checks the item's monthly series.
func (i SalesItem) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	verr.Merge("monthly", i.Monthly.Validate())
	return verr
}

// AnnualTotal is the item's full-year sales.
func (i SalesItem) AnnualTotal() decimal.Decimal {
	return i.Monthly.Total()
}

// SalesPlan is sales broken down by channel, product and month.
type SalesPlan struct {
	Items []SalesItem `json:"items"`
}

// Validate checks every item, accumulating indexed field errors.
func (p SalesPlan) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	for idx, item := range p.Items {
		verr.Merge(fmt.Sprintf("items[%d]", idx), item.Validate())
	}
	return verr
}

// TotalByMonth sums sales across all items for each calendar month 1..12.
func (p SalesPlan) TotalByMonth() map[int]decimal.Decimal {
	totals := make(map[int]decimal.Decimal, MonthsPerYear)
	for month := 1; month <= MonthsPerYear; month++ {
		totals[month] = decimal.Zero
	}
	for _, item := range p.Items {
		for month := 1; month <= MonthsPerYear; month++ {
			totals[month] = totals[month].Add(item.Monthly.ByMonth(month))
		}
	}
	return totals
}

// AnnualTotal is the plan's full-year sales across all items.
func (p SalesPlan) AnnualTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.AnnualTotal())
	}
	return total
}

// Channels lists the distinct channels appearing in the plan, sorted.
func (p SalesPlan) Channels() []string {
	return distinctSorted(p.Items, func(i SalesItem) string { return i.Channel })
}

// Products lists the distinct products appearing in the plan, sorted.
func (p SalesPlan) Products() []string {
	return distinctSorted(p.Items, func(i SalesItem) string { return i.Product })
}
