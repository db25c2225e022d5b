package domain

import "github.com/shopspring/decimal"

// MaxHorizonMonths caps the projection length regardless of loan terms or
// capex lives.
const MaxHorizonMonths = 240

// FreeCashFlowBridge breaks annual free cash flow into its build-up steps.
type FreeCashFlowBridge struct {
	OperatingProfit      decimal.Decimal `json:"operating_profit"`
	Taxes                decimal.Decimal `json:"taxes"`
	Depreciation         decimal.Decimal `json:"depreciation"`
	WorkingCapitalChange decimal.Decimal `json:"working_capital_change"`
	Capex                decimal.Decimal `json:"capex"`
	FreeCashFlow         decimal.Decimal `json:"free_cash_flow"`
}

// TimelineMonth is one projected month before the fiscal-year rollup.
type TimelineMonth struct {
	Month        int               `json:"month"`
	Year         int               `json:"year"`
	PL           Amounts           `json:"pl"`
	CashFlow     CashFlowStatement `json:"cash_flow"`
	BalanceSheet BalanceSheet      `json:"balance_sheet"`
}

// LoanScheduleRow is the combined debt activity for one projected month.
// BalanceStart already includes the month's draw, so a loan's first row
// reports the full principal outstanding.
type LoanScheduleRow struct {
	Month        int             `json:"month"`
	Draw         decimal.Decimal `json:"draw"`
	Principal    decimal.Decimal `json:"principal"`
	Interest     decimal.Decimal `json:"interest"`
	BalanceStart decimal.Decimal `json:"balance_start"`
	BalanceEnd   decimal.Decimal `json:"balance_end"`
}

// TimelineYear is one fiscal year of the multi-year projection.
type TimelineYear struct {
	Year         int                `json:"year"`
	PL           Amounts            `json:"pl"`
	CashFlow     CashFlowStatement  `json:"cash_flow"`
	BalanceSheet BalanceSheet       `json:"balance_sheet"`
	Loan         LoanYearTotals     `json:"loan"`
	DSCR         Metric             `json:"dscr"`
	PaybackYears Metric             `json:"payback_years"`
	FreeCashFlow FreeCashFlowBridge `json:"free_cash_flow"`
	EndingCash   decimal.Decimal    `json:"ending_cash"`
}

// Timeline is the multi-year projection: monthly detail, per-year rollups,
// the merged loan schedule, and the horizon actually used after capping.
type Timeline struct {
	Months        []TimelineMonth   `json:"months"`
	Years         []TimelineYear    `json:"years"`
	LoanSchedule  []LoanScheduleRow `json:"loan_schedule"`
	HorizonMonths int               `json:"horizon_months"`
}
