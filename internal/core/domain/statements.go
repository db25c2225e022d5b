package domain

import "github.com/shopspring/decimal"

// Amounts maps a line-item code to its computed decimal amount.
type Amounts map[string]decimal.Decimal

// Get returns the amount for code, or zero when absent.
func (a Amounts) Get(code string) decimal.Decimal {
	if v, ok := a[code]; ok {
		return v
	}
	return decimal.Zero
}

// Clone returns an independent copy of the map.
func (a Amounts) Clone() Amounts {
	cloned := make(Amounts, len(a))
	for code, v := range a {
		cloned[code] = v
	}
	return cloned
}

// CashFlowStatement is one period's cash flow split by activity.
type CashFlowStatement struct {
	Operating decimal.Decimal `json:"operating"`
	Investing decimal.Decimal `json:"investing"`
	Financing decimal.Decimal `json:"financing"`
	Net       decimal.Decimal `json:"net"`
}

// Add accumulates another period's cash flows.
func (c CashFlowStatement) Add(other CashFlowStatement) CashFlowStatement {
	return CashFlowStatement{
		Operating: c.Operating.Add(other.Operating),
		Investing: c.Investing.Add(other.Investing),
		Financing: c.Financing.Add(other.Financing),
		Net:       c.Net.Add(other.Net),
	}
}

// BalanceSheet is one period-end snapshot. BalancingAdjustment is the named
// equity plug applied so TotalAssets always equals TotalLiabilitiesEquity; it
// should stay below one currency unit at full decimal precision.
type BalanceSheet struct {
	Cash                   decimal.Decimal `json:"cash"`
	Receivables            decimal.Decimal `json:"receivables"`
	Inventory              decimal.Decimal `json:"inventory"`
	NetPPE                 decimal.Decimal `json:"net_ppe"`
	Payables               decimal.Decimal `json:"payables"`
	Debt                   decimal.Decimal `json:"debt"`
	Equity                 decimal.Decimal `json:"equity"`
	BalancingAdjustment    decimal.Decimal `json:"balancing_adjustment"`
	TotalAssets            decimal.Decimal `json:"total_assets"`
	TotalLiabilitiesEquity decimal.Decimal `json:"total_liabilities_equity"`
}

// WorkingCapitalBalances are the month-end working-capital components.
type WorkingCapitalBalances struct {
	Receivables decimal.Decimal `json:"accounts_receivable"`
	Inventory   decimal.Decimal `json:"inventory"`
	Payables    decimal.Decimal `json:"accounts_payable"`
}

// LoanFlows are one period's aggregated loan cash movements.
type LoanFlows struct {
	Draw          decimal.Decimal `json:"draw"`
	Principal     decimal.Decimal `json:"principal"`
	Interest      decimal.Decimal `json:"interest"`
	EndingBalance decimal.Decimal `json:"ending_balance"`
}

// LoanYearTotals aggregates a fiscal year's debt service for DSCR figures.
type LoanYearTotals struct {
	Draw         decimal.Decimal `json:"draw"`
	Principal    decimal.Decimal `json:"principal"`
	Interest     decimal.Decimal `json:"interest"`
	BalanceStart decimal.Decimal `json:"balance_start"`
}

// LoanSummary aggregates loan flows across all loans, keyed by global month
// index and by fiscal year.
type LoanSummary struct {
	Monthly map[int]LoanFlows      `json:"monthly"`
	Yearly  map[int]LoanYearTotals `json:"yearly"`
}

// FlowsAt returns the aggregated flows for a global month, zero when none.
func (s LoanSummary) FlowsAt(month int) LoanFlows {
	if f, ok := s.Monthly[month]; ok {
		return f
	}
	return LoanFlows{
		Draw:          decimal.Zero,
		Principal:     decimal.Zero,
		Interest:      decimal.Zero,
		EndingBalance: decimal.Zero,
	}
}

// MonthlyStatement is the full P&L/CF/BS output for one calendar month.
// Statements are produced in month order and immutable after creation.
type MonthlyStatement struct {
	Month          int                    `json:"month"`
	PL             Amounts                `json:"pl"`
	CashFlow       CashFlowStatement      `json:"cash_flow"`
	BalanceSheet   BalanceSheet           `json:"balance_sheet"`
	Taxes          decimal.Decimal        `json:"taxes"`
	NetIncome      decimal.Decimal        `json:"net_income"`
	Dividends      decimal.Decimal        `json:"dividends"`
	WorkingCapital WorkingCapitalBalances `json:"working_capital"`
	Loan           LoanFlows              `json:"loan"`
}

// FinancialStatements combines the monthly detail with annual rollups. The
// monthly slice is rotated to start at FiscalYearStartMonth for display; all
// internal computation runs calendar-indexed.
type FinancialStatements struct {
	Monthly              []MonthlyStatement `json:"monthly"`
	AnnualPL             Amounts            `json:"annual_pl"`
	AnnualCF             CashFlowStatement  `json:"annual_cf"`
	AnnualBS             BalanceSheet       `json:"annual_bs"`
	LoanSummary          LoanSummary        `json:"loan_summary"`
	FiscalYearStartMonth int                `json:"fiscal_year_start_month"`
	ForecastYears        int                `json:"forecast_years"`
}

// ComputeResult is the primary engine output: the annual amounts map plus the
// KPI sentinels and the full statement detail.
type ComputeResult struct {
	Amounts    Amounts              `json:"amounts"`
	BreakEven  Metric               `json:"break_even_sales"`
	LaborShare Metric               `json:"labor_distribution_ratio"`
	Statements *FinancialStatements `json:"-"`
}
