package services

import (
	"context"
	"log/slog"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/planfirst/financial_planning_app/internal/utils/finmath"
	"github.com/shopspring/decimal"
)

// timelineService implements the TimelineSvc interface
type timelineService struct {
	BaseService
}

// NewTimelineService creates a new multi-year projection service
func NewTimelineService() portssvc.TimelineSvc {
	return &timelineService{}
}

var _ portssvc.TimelineSvc = (*timelineService)(nil)

// determineHorizon extends the horizon to cover every capex life and loan
// term, with a hard cap so degenerate inputs cannot explode the projection.
func determineHorizon(bundle domain.FinanceBundle, horizonYears int) int {
	maxMonth := domain.MonthsPerYear
	for _, item := range bundle.Capex.Items {
		tail := item.StartMonth + item.UsefulLifeYears*domain.MonthsPerYear - 1
		if tail > maxMonth {
			maxMonth = tail
		}
	}
	for _, loan := range bundle.Loans.Loans {
		tail := loan.StartMonth + loan.TermMonths - 1
		if tail > maxMonth {
			maxMonth = tail
		}
	}
	requested := horizonYears * domain.MonthsPerYear
	if requested < domain.MonthsPerYear {
		requested = domain.MonthsPerYear
	}
	if requested > maxMonth {
		maxMonth = requested
	}
	if maxMonth > domain.MaxHorizonMonths {
		maxMonth = domain.MaxHorizonMonths
	}
	return maxMonth
}

// periodAmounts evaluates the plan's line items for one period: flat amounts
// are scaled by the period fraction, rates apply to the period's sales with
// the usual gross fixed-point iteration.
func periodAmounts(plan *domain.PlanConfig, sales, fraction decimal.Decimal) domain.Amounts {
	amounts := domain.Amounts{"REV": sales}

	lineAmount := func(code string, gross decimal.Decimal) decimal.Decimal {
		cfg, ok := plan.Items[code]
		if !ok {
			return decimal.Zero
		}
		if cfg.Method == domain.CostMethodAmount || cfg.Base == domain.RateBaseFixed {
			return cfg.Value.Mul(fraction)
		}
		if cfg.Base == domain.RateBaseGross {
			return gross.Mul(cfg.Value)
		}
		return sales.Mul(cfg.Value)
	}

	grossGuess := sales
	for i := 0; i < grossIterations; i++ {
		cogs := decimal.Zero
		for _, code := range domain.CostCodes {
			cogs = cogs.Add(clampPositive(lineAmount(code, grossGuess)))
		}
		newGross := sales.Sub(cogs)
		if newGross.Sub(grossGuess).Abs().LessThanOrEqual(grossTolerance) {
			grossGuess = newGross
			break
		}
		grossGuess = newGross
	}

	cogsTotal := decimal.Zero
	for _, code := range domain.CostCodes {
		val := clampPositive(lineAmount(code, grossGuess))
		amounts[code] = val
		cogsTotal = cogsTotal.Add(val)
	}
	amounts["COGS_TTL"] = cogsTotal
	gross := sales.Sub(cogsTotal)
	amounts["GROSS"] = gross

	for _, code := range domain.OpexCodes {
		amounts[code] = clampPositive(lineAmount(code, gross))
	}
	for _, code := range domain.NOICodes {
		amounts[code] = clampPositive(lineAmount(code, gross))
	}
	for _, code := range domain.NOECodes {
		amounts[code] = clampPositive(lineAmount(code, gross))
	}
	return amounts
}

// BuildTimeline projects the bundle month by month over the horizon and
// rolls the months up into fiscal years with debt-service coverage, payback
// and a free-cash-flow bridge per year.
func (s *timelineService) BuildTimeline(ctx context.Context, bundle domain.FinanceBundle, plan *domain.PlanConfig, horizonYears int) (*domain.Timeline, error) {
	if verr := bundle.Validate(); verr.HasErrors() {
		s.LogError(ctx, verr, "Finance bundle failed validation before timeline build")
		return nil, verr
	}

	horizonMonths := determineHorizon(bundle, horizonYears)
	depreciationMap := finmath.DepreciationSchedule(bundle.Capex)
	capexMap := finmath.CapexAdditions(bundle.Capex)
	loanSummary := finmath.AggregateLoans(bundle.Loans)

	salesByMonth := bundle.Sales.TotalByMonth()
	wc := bundle.WorkingCapital
	fraction := one.Div(twelve)

	type yearAccumulator struct {
		pl           domain.Amounts
		cf           domain.CashFlowStatement
		bs           domain.BalanceSheet
		fcf          domain.FreeCashFlowBridge
		endingCash   decimal.Decimal
		monthsInYear int
	}

	yearCount := (horizonMonths + domain.MonthsPerYear - 1) / domain.MonthsPerYear
	years := make([]yearAccumulator, yearCount)
	for i := range years {
		years[i].pl = domain.Amounts{}
	}

	months := make([]domain.TimelineMonth, 0, horizonMonths)
	loanRows := make([]domain.LoanScheduleRow, 0, horizonMonths)

	cash := decimal.Zero
	nwcPrev := decimal.Zero
	netPPE := decimal.Zero

	for monthIndex := 1; monthIndex <= horizonMonths; monthIndex++ {
		calendarMonth := (monthIndex-1)%domain.MonthsPerYear + 1
		yearIndex := (monthIndex-1)/domain.MonthsPerYear + 1

		sales := salesByMonth[calendarMonth]
		amounts := periodAmounts(plan, sales, fraction)

		depreciation := depreciationMap[monthIndex]
		amounts["OPEX_DEP"] = depreciation
		opexTotal := amounts.Get("OPEX_H").Add(amounts.Get("OPEX_K")).Add(depreciation)
		amounts["OPEX_TTL"] = opexTotal
		op := amounts.Get("GROSS").Sub(opexTotal)
		amounts["OP"] = op

		loanData := loanSummary.FlowsAt(monthIndex)
		amounts["NOE_INT"] = loanData.Interest

		noi := amounts.Get("NOI_MISC").Add(amounts.Get("NOI_GRANT")).Add(amounts.Get("NOI_OTH"))
		otherExpense := amounts.Get("NOE_OTH")
		pretax := op.Add(noi).Sub(otherExpense).Sub(loanData.Interest)
		taxable := pretax
		if taxable.IsNegative() {
			taxable = decimal.Zero
		}
		tax := taxable.Mul(bundle.Tax.CorporateTaxRate)
		netIncome := pretax.Sub(tax)
		dividend := bundle.Tax.ProjectedDividend(netIncome)
		amounts["ORD"] = pretax
		amounts["TAX"] = tax
		amounts["NET"] = netIncome
		amounts["DIV"] = dividend

		receivables := sales.Mul(wc.ReceivableDays).Div(thirty)
		cogsTotal := amounts.Get("COGS_TTL")
		inventory := cogsTotal.Mul(wc.InventoryDays).Div(thirty)
		payables := cogsTotal.Mul(wc.PayableDays).Div(thirty)
		nwc := receivables.Add(inventory).Sub(payables)
		deltaNWC := nwc.Sub(nwcPrev)
		nwcPrev = nwc

		operatingCF := op.Add(noi).Sub(otherExpense).Sub(tax).Add(depreciation).Sub(deltaNWC)
		capexOut := capexMap[monthIndex]
		investingCF := capexOut.Neg()
		financingCF := loanData.Principal.Add(loanData.Interest).Neg().Sub(dividend)
		freeCF := operatingCF.Add(investingCF).Add(financingCF)
		cash = cash.Add(freeCF)

		netPPE = netPPE.Add(capexOut).Sub(depreciation)
		if netPPE.IsNegative() {
			netPPE = decimal.Zero
		}

		assetsTotal := cash.Add(receivables).Add(inventory).Add(netPPE)
		debtBalance := loanData.EndingBalance
		liabilities := payables.Add(debtBalance)
		equity := assetsTotal.Sub(liabilities)

		acc := &years[yearIndex-1]
		for code, value := range amounts {
			acc.pl[code] = acc.pl[code].Add(value)
		}
		acc.cf = acc.cf.Add(domain.CashFlowStatement{
			Operating: operatingCF,
			Investing: investingCF,
			Financing: financingCF,
			Net:       freeCF,
		})
		acc.fcf.OperatingProfit = acc.fcf.OperatingProfit.Add(op)
		acc.fcf.Taxes = acc.fcf.Taxes.Add(tax)
		acc.fcf.Depreciation = acc.fcf.Depreciation.Add(depreciation)
		acc.fcf.WorkingCapitalChange = acc.fcf.WorkingCapitalChange.Add(deltaNWC)
		acc.fcf.Capex = acc.fcf.Capex.Add(investingCF)
		acc.fcf.FreeCashFlow = acc.fcf.FreeCashFlow.Add(freeCF)
		acc.bs = domain.BalanceSheet{
			Cash:                   cash,
			Receivables:            receivables,
			Inventory:              inventory,
			NetPPE:                 netPPE,
			Payables:               payables,
			Debt:                   debtBalance,
			Equity:                 equity,
			BalancingAdjustment:    decimal.Zero,
			TotalAssets:            assetsTotal,
			TotalLiabilitiesEquity: liabilities.Add(equity),
		}
		acc.endingCash = cash
		acc.monthsInYear++

		months = append(months, domain.TimelineMonth{
			Month: monthIndex,
			Year:  yearIndex,
			PL:    amounts,
			CashFlow: domain.CashFlowStatement{
				Operating: operatingCF,
				Investing: investingCF,
				Financing: financingCF,
				Net:       freeCF,
			},
			BalanceSheet: acc.bs,
		})
		loanRows = append(loanRows, domain.LoanScheduleRow{
			Month:        monthIndex,
			Draw:         loanData.Draw,
			Principal:    loanData.Principal,
			Interest:     loanData.Interest,
			BalanceStart: loanData.EndingBalance.Add(loanData.Principal),
			BalanceEnd:   loanData.EndingBalance,
		})
	}

	timeline := &domain.Timeline{
		Months:        months,
		Years:         make([]domain.TimelineYear, 0, yearCount),
		LoanSchedule:  loanRows,
		HorizonMonths: horizonMonths,
	}
	for i := range years {
		acc := &years[i]
		yearIndex := i + 1
		loanTotals := loanSummary.Yearly[yearIndex]

		debtService := loanTotals.Interest.Add(loanTotals.Principal)
		dscr := domain.UndefinedMetric()
		if debtService.IsPositive() {
			dscr = domain.FiniteMetric(acc.cf.Operating.Div(debtService))
		}
		payback := domain.UndefinedMetric()
		if acc.cf.Operating.IsPositive() && loanTotals.BalanceStart.IsPositive() {
			payback = domain.FiniteMetric(loanTotals.BalanceStart.Div(acc.cf.Operating))
		}

		timeline.Years = append(timeline.Years, domain.TimelineYear{
			Year:         yearIndex,
			PL:           acc.pl,
			CashFlow:     acc.cf,
			BalanceSheet: acc.bs,
			Loan:         loanTotals,
			DSCR:         dscr,
			PaybackYears: payback,
			FreeCashFlow: acc.fcf,
			EndingCash:   acc.endingCash,
		})
	}

	s.LogInfo(ctx, "Timeline built",
		slog.Int("horizon_months", horizonMonths),
		slog.Int("years", len(timeline.Years)))
	return timeline, nil
}
