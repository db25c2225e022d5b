package services

import (
	"context"
	"log/slog"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var (
	one = decimal.NewFromInt(1)

	// Bisection parameters for the target-sales solver.
	solveEpsilon       = decimal.NewFromInt(1000)
	solveMaxIterations = 60
	bracketGrowth      = decimal.RequireFromString("1.6")
	bracketMaxAttempts = 40
	bracketCeiling     = decimal.RequireFromString("10000000000000")
	bracketSeed        = decimal.NewFromInt(1_000_000)
)

// plannerService implements the PlannerSvc interface
type plannerService struct {
	BaseService
}

// NewPlannerService creates a new planning calculator service
func NewPlannerService() portssvc.PlannerSvc {
	return &plannerService{}
}

// Ensure plannerService implements the PlannerSvc interface
var _ portssvc.PlannerSvc = (*plannerService)(nil)

// PlanFromBundle derives a calculator configuration from the typed finance
// inputs: cost ratios become rate items, fixed costs and non-operating flows
// become amount items, and capex/loan plans contribute their first-year
// depreciation and interest.
func (s *plannerService) PlanFromBundle(ctx context.Context, bundle domain.FinanceBundle, opts domain.PlanOptions) (*domain.PlanConfig, error) {
	if verr := bundle.Validate(); verr.HasErrors() {
		s.LogError(ctx, verr, "Finance bundle failed validation",
			slog.Int("field_errors", len(verr.Fields)))
		return nil, verr
	}

	baseSales := bundle.Sales.AnnualTotal()
	plan := domain.NewPlanConfig(baseSales, opts.FTE, opts.Unit, opts.Currency, opts.FiscalYearStartMonth, opts.ForecastYears)

	sales := bundle.Sales
	costs := bundle.Costs
	capex := bundle.Capex
	loans := bundle.Loans
	tax := bundle.Tax
	plan.SalesPlan = &sales
	plan.CostPlan = &costs
	plan.CapexPlan = &capex
	plan.LoanSchedule = &loans
	plan.TaxPolicy = &tax
	if opts.WorkingCapital != nil {
		wc := *opts.WorkingCapital
		plan.WorkingCapital = &wc
	} else {
		wc := bundle.WorkingCapital
		plan.WorkingCapital = &wc
	}

	for code, ratio := range costs.VariableRatios {
		plan.SetRate(code, ratio, domain.RateBaseSales)
	}
	for code, ratio := range costs.GrossLinkedRatios {
		plan.SetRate(code, ratio, domain.RateBaseGross)
	}
	for code, amount := range costs.FixedCosts {
		plan.AddAmount(code, amount)
	}
	for code, amount := range costs.NonOperatingIncome {
		plan.AddAmount(code, amount)
	}
	for code, amount := range costs.NonOperatingExpenses {
		plan.AddAmount(code, amount)
	}

	if depreciation := capex.AnnualDepreciation(); depreciation.IsPositive() {
		plan.AddAmount("OPEX_DEP", depreciation)
	}
	if interest := loans.AnnualInterest(); interest.IsPositive() {
		plan.AddAmount("NOE_INT", interest)
	}

	s.LogDebug(ctx, "Plan configuration built from finance bundle",
		slog.String("base_sales", baseSales.String()),
		slog.Int("item_count", len(plan.Items)))
	return plan, nil
}

// Compute evaluates the plan. When the plan carries the full statement
// inputs, the annual figures come from the monthly statement engine;
// otherwise a direct annual calculation is used. Either way the result is
// decorated with the break-even and per-capita KPIs.
func (s *plannerService) Compute(ctx context.Context, plan *domain.PlanConfig, opts domain.ComputeOptions) (*domain.ComputeResult, error) {
	overrides := opts.AmountOverrides
	if overrides == nil {
		overrides = map[string]decimal.Decimal{}
	}

	var amounts domain.Amounts
	var statements *domain.FinancialStatements

	if plan.HasStatementInputs() {
		statements = buildFinancialStatements(statementInput{
			Sales:           *plan.SalesPlan,
			Capex:           *plan.CapexPlan,
			Loans:           *plan.LoanSchedule,
			Tax:             *plan.TaxPolicy,
			Items:           plan.Items,
			WorkingCapital:  *plan.WorkingCapital,
			BaseSales:       plan.BaseSales,
			SalesOverride:   opts.SalesOverride,
			AmountOverrides: overrides,
			StartMonth:      plan.FiscalYearStartMonth,
			ForecastYears:   plan.ForecastYears,
		})
		amounts = domain.Amounts{}
		for _, item := range domain.Items {
			amounts[item.Code] = statements.AnnualPL.Get(item.Code)
		}
	} else {
		amounts = s.computeLegacyAmounts(plan, opts.SalesOverride, overrides)
	}

	result := &domain.ComputeResult{
		Amounts:    amounts,
		Statements: statements,
	}
	s.decorateKPIs(plan, result)
	return result, nil
}

// computeLegacyAmounts is the direct annual path used when no typed
// statement inputs are attached.
func (s *plannerService) computeLegacyAmounts(plan *domain.PlanConfig, salesOverride *decimal.Decimal, overrides map[string]decimal.Decimal) domain.Amounts {
	sales := plan.BaseSales
	if salesOverride != nil {
		sales = *salesOverride
	}

	amounts := domain.Amounts{}
	for _, item := range domain.Items {
		amounts[item.Code] = decimal.Zero
	}
	amounts["REV"] = sales

	grossGuess := sales
	for i := 0; i < legacyIterations; i++ {
		cogs := decimal.Zero
		for _, code := range domain.CostCodes {
			cogs = cogs.Add(clampPositive(lineAmountAnnual(plan, code, grossGuess, sales, overrides)))
		}
		newGross := sales.Sub(cogs)
		if newGross.Sub(grossGuess).Abs().LessThan(grossTolerance) {
			grossGuess = newGross
			break
		}
		grossGuess = newGross
	}

	cogsTotal := decimal.Zero
	for _, code := range domain.CostCodes {
		val := clampPositive(lineAmountAnnual(plan, code, grossGuess, sales, overrides))
		amounts[code] = val
		cogsTotal = cogsTotal.Add(val)
	}
	amounts["COGS_TTL"] = cogsTotal
	amounts["GROSS"] = sales.Sub(cogsTotal)

	opexTotal := decimal.Zero
	for _, code := range domain.OpexCodes {
		val := clampPositive(lineAmountAnnual(plan, code, amounts["GROSS"], sales, overrides))
		amounts[code] = val
		opexTotal = opexTotal.Add(val)
	}
	amounts["OPEX_TTL"] = opexTotal
	amounts["OP"] = amounts["GROSS"].Sub(opexTotal)

	for _, code := range append(append([]string{}, domain.NOICodes...), domain.NOECodes...) {
		amounts[code] = clampPositive(lineAmountAnnual(plan, code, amounts["GROSS"], sales, overrides))
	}

	amounts["ORD"] = amounts["OP"].
		Add(amounts["NOI_MISC"]).Add(amounts["NOI_GRANT"]).Add(amounts["NOI_OTH"]).
		Sub(amounts["NOE_INT"]).Sub(amounts["NOE_OTH"])

	return amounts
}

// lineAmountAnnual resolves one line item's annual amount. Overrides win
// outright; gross-based rates apply to the non-negative part of gross.
func lineAmountAnnual(plan *domain.PlanConfig, code string, grossGuess, sales decimal.Decimal, overrides map[string]decimal.Decimal) decimal.Decimal {
	if override, ok := overrides[code]; ok {
		return override
	}
	cfg, ok := plan.Items[code]
	if !ok {
		return decimal.Zero
	}
	if cfg.Method == domain.CostMethodAmount {
		return cfg.Value
	}
	switch cfg.Base {
	case domain.RateBaseGross:
		guess := grossGuess
		if guess.IsNegative() {
			guess = decimal.Zero
		}
		return guess.Mul(cfg.Value)
	case domain.RateBaseFixed:
		return cfg.Value
	default:
		return sales.Mul(cfg.Value)
	}
}

func clampPositive(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}

// decorateKPIs adds break-even sales, per-capita figures and the labor
// distribution ratio to a computed result. Break-even decomposes the plan
// into variable and fixed parts; a non-positive contribution ratio makes the
// break-even infinite, and a zero gross leaves the labor ratio undefined.
func (s *plannerService) decorateKPIs(plan *domain.PlanConfig, result *domain.ComputeResult) {
	amounts := result.Amounts
	sales := amounts.Get("REV")
	gross := amounts.Get("GROSS")

	allCodes := make([]string, 0, len(domain.CostCodes)+len(domain.OpexCodes)+len(domain.NOICodes)+len(domain.NOECodes))
	allCodes = append(allCodes, domain.CostCodes...)
	allCodes = append(allCodes, domain.OpexCodes...)
	allCodes = append(allCodes, domain.NOICodes...)
	allCodes = append(allCodes, domain.NOECodes...)

	variableCost := decimal.Zero
	fixedCost := decimal.Zero
	for _, code := range allCodes {
		cfg, ok := plan.Items[code]
		if !ok {
			continue
		}
		if cfg.Method == domain.CostMethodRate {
			if cfg.Base == domain.RateBaseGross {
				grossRatio := decimal.Zero
				if sales.IsPositive() {
					grossRatio = gross.Div(sales)
				}
				variableCost = variableCost.Add(sales.Mul(cfg.Value.Mul(grossRatio)))
			} else if cfg.Base == domain.RateBaseFixed {
				fixedCost = fixedCost.Add(cfg.Value)
			} else {
				variableCost = variableCost.Add(sales.Mul(cfg.Value))
			}
			continue
		}
		fixedCost = fixedCost.Add(cfg.Value)
	}

	variableRatio := decimal.Zero
	if sales.IsPositive() {
		variableRatio = variableCost.Div(sales)
	}
	contributionRatio := one.Sub(variableRatio)
	if contributionRatio.IsPositive() {
		result.BreakEven = domain.FiniteMetric(fixedCost.Div(contributionRatio))
	} else {
		result.BreakEven = domain.InfiniteMetric()
	}

	fte := plan.FTE
	if !fte.IsPositive() {
		fte = one
	}
	amounts["PC_SALES"] = amounts.Get("REV").Div(fte)
	amounts["PC_GROSS"] = gross.Div(fte)
	amounts["PC_ORD"] = amounts.Get("ORD").Div(fte)

	if gross.IsPositive() {
		result.LaborShare = domain.FiniteMetric(amounts.Get("OPEX_H").Div(gross))
	} else {
		result.LaborShare = domain.UndefinedMetric()
	}
}

// SummarizeMetrics reduces a computed result to margin-level ratios.
func (s *plannerService) SummarizeMetrics(ctx context.Context, result *domain.ComputeResult) domain.PlanMetrics {
	amounts := result.Amounts
	sales := amounts.Get("REV")
	gross := amounts.Get("GROSS")
	op := amounts.Get("OP")
	ord := amounts.Get("ORD")
	opex := amounts.Get("OPEX_TTL")
	cogs := amounts.Get("COGS_TTL")

	return domain.PlanMetrics{
		Sales:       sales,
		Gross:       gross,
		Op:          op,
		Ord:         ord,
		GrossMargin: domain.SafeRatio(gross, sales),
		OpMargin:    domain.SafeRatio(op, sales),
		OrdMargin:   domain.SafeRatio(ord, sales),
		COGSRatio:   domain.SafeRatio(cogs, sales),
		OpexRatio:   domain.SafeRatio(opex, sales),
		LaborRatio:  domain.SafeRatio(amounts.Get("OPEX_H"), gross),
		BreakEven:   result.BreakEven,
	}
}

// SolveTargetSales bisects for the sales level whose ordinary income hits
// the target. The upper bracket grows geometrically until it straddles the
// target or hits the ceiling; the solver then converges or reports the best
// midpoint after the iteration cap.
func (s *plannerService) SolveTargetSales(ctx context.Context, plan *domain.PlanConfig, target, low, high decimal.Decimal) (*domain.TargetSolveResult, *domain.ComputeResult, error) {
	ordAt := func(sales decimal.Decimal) (decimal.Decimal, error) {
		result, err := s.Compute(ctx, plan, domain.ComputeOptions{SalesOverride: &sales})
		if err != nil {
			return decimal.Zero, err
		}
		return result.Amounts.Get("ORD"), nil
	}

	if low.IsNegative() {
		low = decimal.Zero
	}
	minHigh := low.Mul(decimal.RequireFromString("1.5"))
	if high.LessThan(minHigh) {
		high = minHigh
	}

	fLow, err := ordAt(low)
	if err != nil {
		return nil, nil, err
	}
	fHigh, err := ordAt(high)
	if err != nil {
		return nil, nil, err
	}

	for attempt := 0; attempt < bracketMaxAttempts; attempt++ {
		if !fLow.Sub(target).Mul(fHigh.Sub(target)).IsPositive() {
			break
		}
		if high.GreaterThanOrEqual(bracketCeiling) {
			break
		}
		if high.IsPositive() {
			high = high.Mul(bracketGrowth)
		} else {
			high = bracketSeed
		}
		if fHigh, err = ordAt(high); err != nil {
			return nil, nil, err
		}
	}

	iterations := 0
	for ; iterations < solveMaxIterations; iterations++ {
		mid := low.Add(high).Div(decimal.NewFromInt(2))
		fMid, err := ordAt(mid)
		if err != nil {
			return nil, nil, err
		}
		if fMid.Sub(target).Abs().LessThanOrEqual(solveEpsilon) {
			result, err := s.Compute(ctx, plan, domain.ComputeOptions{SalesOverride: &mid})
			if err != nil {
				return nil, nil, err
			}
			s.LogInfo(ctx, "Target sales solved",
				slog.String("required_sales", mid.String()),
				slog.Int("iterations", iterations+1))
			return &domain.TargetSolveResult{
				RequiredSales: mid,
				Achieved:      fMid,
				Target:        target,
				Iterations:    iterations + 1,
				Converged:     true,
			}, result, nil
		}
		if !fLow.Sub(target).Mul(fMid.Sub(target)).IsPositive() {
			high = mid
		} else {
			low, fLow = mid, fMid
		}
	}

	mid := low.Add(high).Div(decimal.NewFromInt(2))
	result, err := s.Compute(ctx, plan, domain.ComputeOptions{SalesOverride: &mid})
	if err != nil {
		return nil, nil, err
	}
	s.LogInfo(ctx, "Target sales solver hit the iteration cap",
		slog.String("required_sales", mid.String()),
		slog.String("target", target.String()))
	return &domain.TargetSolveResult{
		RequiredSales: mid,
		Achieved:      result.Amounts.Get("ORD"),
		Target:        target,
		Iterations:    iterations,
		Converged:     false,
	}, result, nil
}
