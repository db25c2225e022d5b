package services

import (
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/planfirst/financial_planning_app/internal/utils/finmath"
	"github.com/shopspring/decimal"
)

var (
	twelve          = decimal.NewFromInt(12)
	thirty          = decimal.NewFromInt(30)
	grossTolerance  = decimal.RequireFromString("0.0001")
	grossIterations = 6

	// The annual path iterates the gross fixed point until it settles
	// within grossTolerance; the cap only guards against non-contracting
	// item configurations.
	legacyIterations = 60
)

// statementInput carries everything the monthly builder needs. The plan's
// item map supplies rate/amount definitions; overrides pin individual codes
// for a single run.
type statementInput struct {
	Sales           domain.SalesPlan
	Capex           domain.CapexPlan
	Loans           domain.LoanSchedule
	Tax             domain.TaxPolicy
	Items           map[string]domain.CostItem
	WorkingCapital  domain.WorkingCapitalAssumptions
	BaseSales       decimal.Decimal
	SalesOverride   *decimal.Decimal
	AmountOverrides map[string]decimal.Decimal
	StartMonth      int
	ForecastYears   int
}

// lineAmountMonthly resolves one line item's monthly amount. Flat amounts
// (and fixed-base rates) are annual figures spread over twelve months;
// rate items apply to the month's sales or gross. A rate override replaces
// the computed amount outright.
func lineAmountMonthly(items map[string]domain.CostItem, code string, sales, gross decimal.Decimal, overrides map[string]decimal.Decimal) decimal.Decimal {
	override, hasOverride := overrides[code]

	cfg, ok := items[code]
	if !ok {
		cfg = domain.CostItem{Method: domain.CostMethodAmount, Value: decimal.Zero, Base: domain.RateBaseSales}
	}

	if cfg.Method == domain.CostMethodAmount || cfg.Base == domain.RateBaseFixed {
		target := cfg.Value
		if hasOverride {
			target = override
		}
		return target.Div(twelve)
	}

	if hasOverride {
		return override
	}

	if cfg.Base == domain.RateBaseGross {
		return gross.Mul(cfg.Value)
	}
	return sales.Mul(cfg.Value)
}

// monthlySalesScaled returns the per-calendar-month sales, rescaled so the
// annual total matches the override when one is given.
func monthlySalesScaled(plan domain.SalesPlan, baseSales decimal.Decimal, override *decimal.Decimal) map[int]decimal.Decimal {
	monthly := plan.TotalByMonth()
	if override == nil || !baseSales.IsPositive() {
		return monthly
	}
	scale := override.Div(baseSales)
	for month, amount := range monthly {
		monthly[month] = amount.Mul(scale)
	}
	return monthly
}

// buildFinancialStatements runs the twelve-month engine: per-month P&L with
// iterative gross convergence, loan and depreciation schedules, working
// capital balances, the three cash-flow activities and a balance sheet whose
// equation is closed by a named balancing adjustment.
func buildFinancialStatements(in statementInput) *domain.FinancialStatements {
	monthlySales := monthlySalesScaled(in.Sales, in.BaseSales, in.SalesOverride)
	capexAdditions := finmath.CapexAdditions(in.Capex)
	capexDepreciation := finmath.DepreciationSchedule(in.Capex)
	loanSummary := finmath.AggregateLoans(in.Loans)

	monthly := make([]domain.MonthlyStatement, 0, domain.MonthsPerYear)

	prevCash := decimal.Zero
	prevReceivable := decimal.Zero
	prevInventory := decimal.Zero
	prevPayable := decimal.Zero
	prevEquity := decimal.Zero
	grossPPE := decimal.Zero
	accumulatedDep := decimal.Zero

	for month := 1; month <= domain.MonthsPerYear; month++ {
		sales := monthlySales[month]

		// Gross-linked rates feed back into gross profit, so iterate the
		// guess to a fixed point. Convergence is fast; six rounds suffice.
		grossGuess := sales
		for i := 0; i < grossIterations; i++ {
			cogsTotal := decimal.Zero
			for _, code := range domain.CostCodes {
				amount := lineAmountMonthly(in.Items, code, sales, grossGuess, in.AmountOverrides)
				if amount.IsNegative() {
					amount = decimal.Zero
				}
				cogsTotal = cogsTotal.Add(amount)
			}
			newGross := sales.Sub(cogsTotal)
			if newGross.Sub(grossGuess).Abs().LessThanOrEqual(grossTolerance) {
				grossGuess = newGross
				break
			}
			grossGuess = newGross
		}

		cogsBreakdown := make(map[string]decimal.Decimal, len(domain.CostCodes))
		cogsTotal := decimal.Zero
		for _, code := range domain.CostCodes {
			amount := lineAmountMonthly(in.Items, code, sales, grossGuess, in.AmountOverrides)
			if amount.IsNegative() {
				amount = decimal.Zero
			}
			cogsBreakdown[code] = amount
			cogsTotal = cogsTotal.Add(amount)
		}
		gross := sales.Sub(cogsTotal)

		// Depreciation is additive: manually planned charges plus the capex
		// schedule for this month.
		manualDep := lineAmountMonthly(in.Items, "OPEX_DEP", sales, gross, in.AmountOverrides)
		capexDep := capexDepreciation[month]
		opexBreakdown := make(map[string]decimal.Decimal, len(domain.OpexCodes))
		opexTotal := decimal.Zero
		for _, code := range domain.OpexCodes {
			var amount decimal.Decimal
			if code == "OPEX_DEP" {
				amount = manualDep.Add(capexDep)
			} else {
				amount = lineAmountMonthly(in.Items, code, sales, gross, in.AmountOverrides)
			}
			if amount.IsNegative() {
				amount = decimal.Zero
			}
			opexBreakdown[code] = amount
			opexTotal = opexTotal.Add(amount)
		}

		opIncome := gross.Sub(opexTotal)

		noiBreakdown := make(map[string]decimal.Decimal, len(domain.NOICodes))
		noiTotal := decimal.Zero
		for _, code := range domain.NOICodes {
			amount := lineAmountMonthly(in.Items, code, sales, gross, in.AmountOverrides)
			if amount.IsNegative() {
				amount = decimal.Zero
			}
			noiBreakdown[code] = amount
			noiTotal = noiTotal.Add(amount)
		}

		// Interest is additive too: manual planning plus the loan schedule.
		manualInterest := lineAmountMonthly(in.Items, "NOE_INT", sales, gross, in.AmountOverrides)
		loanData := loanSummary.FlowsAt(month)
		interestTotal := manualInterest.Add(loanData.Interest)

		noeBreakdown := map[string]decimal.Decimal{"NOE_INT": interestTotal}
		noeTotal := interestTotal
		for _, code := range domain.NOECodes {
			if code == "NOE_INT" {
				continue
			}
			amount := lineAmountMonthly(in.Items, code, sales, gross, in.AmountOverrides)
			if amount.IsNegative() {
				amount = decimal.Zero
			}
			noeBreakdown[code] = amount
			noeTotal = noeTotal.Add(amount)
		}

		ordinaryIncome := opIncome.Add(noiTotal).Sub(noeTotal)
		taxes := in.Tax.EffectiveTax(ordinaryIncome)
		netIncome := ordinaryIncome.Sub(taxes)
		dividends := in.Tax.ProjectedDividend(netIncome)

		receivable := sales.Mul(in.WorkingCapital.ReceivableDays).Div(thirty)
		inventory := cogsTotal.Mul(in.WorkingCapital.InventoryDays).Div(thirty)
		payable := cogsTotal.Mul(in.WorkingCapital.PayableDays).Div(thirty)

		deltaWC := receivable.Sub(prevReceivable).
			Add(inventory.Sub(prevInventory)).
			Sub(payable.Sub(prevPayable))
		depreciationTotal := opexBreakdown["OPEX_DEP"]

		operatingCF := netIncome.Add(depreciationTotal).Sub(deltaWC)
		investingCF := capexAdditions[month].Neg()
		financingCF := loanData.Draw.Sub(loanData.Principal).Sub(dividends)
		netCF := operatingCF.Add(investingCF).Add(financingCF)
		cash := prevCash.Add(netCF)

		grossPPE = grossPPE.Add(capexAdditions[month])
		accumulatedDep = accumulatedDep.Add(capexDep)
		netPPE := grossPPE.Sub(accumulatedDep)
		if netPPE.IsNegative() {
			netPPE = decimal.Zero
		}

		assetsTotal := cash.Add(receivable).Add(inventory).Add(netPPE)
		debtBalance := loanData.EndingBalance
		equity := prevEquity.Add(netIncome).Sub(dividends)
		liabilitiesTotal := payable.Add(debtBalance).Add(equity)
		adjustment := assetsTotal.Sub(liabilitiesTotal)
		liabilitiesTotal = liabilitiesTotal.Add(adjustment)

		pl := domain.Amounts{
			"REV":      sales,
			"COGS_TTL": cogsTotal,
			"GROSS":    gross,
			"OPEX_H":   opexBreakdown["OPEX_H"],
			"OPEX_K":   opexBreakdown["OPEX_K"],
			"OPEX_DEP": opexBreakdown["OPEX_DEP"],
			"OPEX_TTL": opexTotal,
			"OP":       opIncome,
			"NOE_INT":  interestTotal,
			"NOE_OTH":  noeBreakdown["NOE_OTH"],
			"ORD":      ordinaryIncome,
			"TAX":      taxes,
			"NET":      netIncome,
			"DIV":      dividends,
		}
		for code, amount := range cogsBreakdown {
			pl[code] = amount
		}
		for code, amount := range noiBreakdown {
			pl[code] = amount
		}

		monthly = append(monthly, domain.MonthlyStatement{
			Month: month,
			PL:    pl,
			CashFlow: domain.CashFlowStatement{
				Operating: operatingCF,
				Investing: investingCF,
				Financing: financingCF,
				Net:       netCF,
			},
			BalanceSheet: domain.BalanceSheet{
				Cash:                   cash,
				Receivables:            receivable,
				Inventory:              inventory,
				NetPPE:                 netPPE,
				Payables:               payable,
				Debt:                   debtBalance,
				Equity:                 equity,
				BalancingAdjustment:    adjustment,
				TotalAssets:            assetsTotal,
				TotalLiabilitiesEquity: liabilitiesTotal,
			},
			Taxes:     taxes,
			NetIncome: netIncome,
			Dividends: dividends,
			WorkingCapital: domain.WorkingCapitalBalances{
				Receivables: receivable,
				Inventory:   inventory,
				Payables:    payable,
			},
			Loan: domain.LoanFlows{
				Draw:          loanData.Draw,
				Principal:     loanData.Principal,
				Interest:      interestTotal,
				EndingBalance: debtBalance,
			},
		})

		prevCash = cash
		prevReceivable = receivable
		prevInventory = inventory
		prevPayable = payable
		// Retained earnings carry the balancing adjustment forward so the
		// following month starts from a closed balance sheet.
		prevEquity = equity.Add(adjustment)
	}

	annualPL := domain.Amounts{}
	for _, stmt := range monthly {
		for code, value := range stmt.PL {
			annualPL[code] = annualPL[code].Add(value)
		}
	}

	annualCF := domain.CashFlowStatement{}
	for _, stmt := range monthly {
		annualCF = annualCF.Add(stmt.CashFlow)
	}

	annualBS := monthly[len(monthly)-1].BalanceSheet

	startMonth := in.StartMonth
	if startMonth < 1 || startMonth > domain.MonthsPerYear {
		startMonth = 1
	}
	forecastYears := in.ForecastYears
	if forecastYears < 1 {
		forecastYears = 1
	}

	return &domain.FinancialStatements{
		Monthly:              rotateToFiscalYear(monthly, startMonth),
		AnnualPL:             annualPL,
		AnnualCF:             annualCF,
		AnnualBS:             annualBS,
		LoanSummary:          loanSummary,
		FiscalYearStartMonth: startMonth,
		ForecastYears:        forecastYears,
	}
}

// rotateToFiscalYear reorders the statements so the fiscal year starts at
// startMonth. Display order only; the computation stays calendar-indexed.
func rotateToFiscalYear(monthly []domain.MonthlyStatement, startMonth int) []domain.MonthlyStatement {
	if startMonth <= 1 || startMonth > domain.MonthsPerYear || len(monthly) != domain.MonthsPerYear {
		return monthly
	}
	rotated := make([]domain.MonthlyStatement, 0, len(monthly))
	rotated = append(rotated, monthly[startMonth-1:]...)
	rotated = append(rotated, monthly[:startMonth-1]...)
	return rotated
}
