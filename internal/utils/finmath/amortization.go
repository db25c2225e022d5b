// Package finmath holds the period-level financial calculators shared by the
// planning services: loan amortization schedules and capital-asset
// depreciation schedules. All arithmetic runs on decimals; the only float
// excursion is the annuity power factor.
package finmath

import (
	"math"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	twelve          = decimal.NewFromInt(12)
	residualEpsilon = decimal.RequireFromString("0.000001")
)

// LoanEntry is one month of a single loan's schedule. Month is a global month
// index counted from the plan start, so schedules can run past the first year.
type LoanEntry struct {
	Month         int
	Draw          decimal.Decimal
	Interest      decimal.Decimal
	Principal     decimal.Decimal
	EndingBalance decimal.Decimal
}

// ScheduleForLoan expands one borrowing into its month-by-month schedule. The
// full principal is drawn in the first month. During the grace period only
// interest accrues; interest-only loans repay the whole principal in their
// final month even when the grace period covers the entire term. Any residual
// balance left by annuity rounding is folded into the final principal payment.
func ScheduleForLoan(item domain.LoanItem) []LoanEntry {
	termMonths := item.TermMonths
	if termMonths < 1 {
		return nil
	}
	graceMonths := item.GracePeriodMonths
	if graceMonths > termMonths {
		graceMonths = termMonths
	}
	if graceMonths < 0 {
		graceMonths = 0
	}
	repaymentMonths := termMonths - graceMonths

	monthlyRate := item.InterestRate.Div(twelve)
	repayment := item.Repayment()

	entries := make([]LoanEntry, 0, termMonths)
	outstanding := item.Principal
	for offset := 0; offset < termMonths; offset++ {
		entry := LoanEntry{Month: item.StartMonth + offset}
		if offset == 0 {
			entry.Draw = item.Principal
		}
		entry.Interest = outstanding.Mul(monthlyRate)

		principalPayment := decimal.Zero
		if offset >= graceMonths {
			switch repayment {
			case domain.EqualPrincipal:
				if repaymentMonths > 0 {
					principalPayment = item.Principal.Div(decimal.NewFromInt(int64(repaymentMonths)))
				}
			case domain.EqualPayment:
				if repaymentMonths > 0 {
					payment := item.Principal.Mul(annuityFactor(monthlyRate, repaymentMonths))
					principalPayment = payment.Sub(entry.Interest)
					if principalPayment.IsNegative() {
						principalPayment = decimal.Zero
					}
				}
			case domain.InterestOnly:
				if offset == termMonths-1 {
					principalPayment = outstanding
				}
			}
		} else if repayment == domain.InterestOnly && offset == termMonths-1 {
			// A grace period covering the whole term still ends with the
			// balloon repayment.
			principalPayment = outstanding
		}

		if principalPayment.GreaterThan(outstanding) {
			principalPayment = outstanding
		}
		entry.Principal = principalPayment
		entry.EndingBalance = outstanding.Sub(principalPayment)
		entries = append(entries, entry)
		outstanding = entry.EndingBalance
	}

	if len(entries) > 0 {
		last := &entries[len(entries)-1]
		if last.EndingBalance.Abs().GreaterThan(residualEpsilon) {
			last.Principal = last.Principal.Add(last.EndingBalance)
			last.EndingBalance = decimal.Zero
		}
	}
	return entries
}

// annuityFactor is the level-payment factor r / (1 - (1+r)^-n). The power is
// computed in float64 and converted back; the precision loss is far below the
// residual cleanup threshold.
func annuityFactor(monthlyRate decimal.Decimal, repaymentMonths int) decimal.Decimal {
	if monthlyRate.IsZero() {
		return decimal.NewFromInt(1).Div(decimal.NewFromInt(int64(repaymentMonths)))
	}
	rate, _ := monthlyRate.Float64()
	denominator := 1 - math.Pow(1+rate, -float64(repaymentMonths))
	return monthlyRate.Div(decimal.NewFromFloat(denominator))
}

// AggregateLoans merges every loan's schedule into per-month and per-year
// totals. Months with no scheduled activity carry the running balance forward
// so the debt line never has gaps.
func AggregateLoans(schedule domain.LoanSchedule) domain.LoanSummary {
	summary := domain.LoanSummary{
		Monthly: make(map[int]domain.LoanFlows),
		Yearly:  make(map[int]domain.LoanYearTotals),
	}

	maxMonth := 0
	for _, loan := range schedule.Loans {
		for _, entry := range ScheduleForLoan(loan) {
			flows := summary.FlowsAt(entry.Month)
			flows.Draw = flows.Draw.Add(entry.Draw)
			flows.Principal = flows.Principal.Add(entry.Principal)
			flows.Interest = flows.Interest.Add(entry.Interest)
			flows.EndingBalance = flows.EndingBalance.Add(entry.EndingBalance)
			summary.Monthly[entry.Month] = flows
			if entry.Month > maxMonth {
				maxMonth = entry.Month
			}

			year := (entry.Month-1)/domain.MonthsPerYear + 1
			totals := summary.Yearly[year]
			totals.Draw = totals.Draw.Add(entry.Draw)
			totals.Principal = totals.Principal.Add(entry.Principal)
			totals.Interest = totals.Interest.Add(entry.Interest)
			summary.Yearly[year] = totals
		}
	}

	runningBalance := decimal.Zero
	for month := 1; month <= maxMonth; month++ {
		flows, ok := summary.Monthly[month]
		if !ok {
			flows = domain.LoanFlows{
				Draw:          decimal.Zero,
				Principal:     decimal.Zero,
				Interest:      decimal.Zero,
				EndingBalance: runningBalance,
			}
			summary.Monthly[month] = flows
		}
		runningBalance = flows.EndingBalance
	}

	// Debt outstanding at the start of each year, for debt-service figures.
	for year := range summary.Yearly {
		first := (year-1)*domain.MonthsPerYear + 1
		for month := first; month <= year*domain.MonthsPerYear; month++ {
			if flows, ok := summary.Monthly[month]; ok {
				totals := summary.Yearly[year]
				totals.BalanceStart = flows.EndingBalance.Add(flows.Principal)
				summary.Yearly[year] = totals
				break
			}
		}
	}
	return summary
}
