package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/planfirst/financial_planning_app/internal/core/domain"
	portssvc "github.com/planfirst/financial_planning_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

var (
	tinyGPRate = decimal.RequireFromString("0.000000001")

	scaleSalesUp10   = decimal.RequireFromString("1.10")
	scaleSalesDown5  = decimal.RequireFromString("0.95")
	scaleSalesDown10 = decimal.RequireFromString("0.90")
	gpRateStep       = decimal.RequireFromString("0.01")
)

// scenarioService implements the ScenarioSvc interface
type scenarioService struct {
	BaseService
	planner portssvc.PlannerSvc
}

// NewScenarioService creates a new scenario comparison service
func NewScenarioService(planner portssvc.PlannerSvc) portssvc.ScenarioSvc {
	return &scenarioService{planner: planner}
}

var _ portssvc.ScenarioSvc = (*scenarioService)(nil)

// evaluateSimplePlan runs the coarse single-rate model: gross from the
// gross-profit rate, then operating income after the four expense buckets.
// Ordinary income equals operating income; non-operating flows are applied
// by the caller.
func evaluateSimplePlan(plan domain.SimplePlan) domain.SimplePlanResult {
	gross := plan.Sales.Mul(plan.GPRate)
	op := gross.Sub(plan.OpexTotal())
	return domain.SimplePlanResult{
		Plan:  plan,
		Gross: gross,
		Op:    op,
		Ord:   op,
	}
}

// scenarioRowFrom turns an evaluated simple plan into a comparison row.
func scenarioRowFrom(name string, result domain.SimplePlanResult, nonop domain.NonOperating) domain.ScenarioRow {
	ord := result.Op.Add(nonop.Income()).Sub(nonop.Expense())

	gp := result.Plan.GPRate
	if gp.LessThan(tinyGPRate) {
		gp = tinyGPRate
	}
	breakEven := domain.FiniteMetric(result.Plan.OpexTotal().Div(gp))

	var laborShare domain.Metric
	if result.Gross.IsPositive() {
		laborShare = domain.FiniteMetric(result.Plan.OpexH.Div(result.Gross))
	} else {
		laborShare = domain.UndefinedMetric()
	}

	return domain.ScenarioRow{
		Name:            name,
		Sales:           result.Plan.Sales,
		GrossProfit:     result.Gross,
		OperatingProfit: result.Op,
		OrdinaryProfit:  ord,
		NetProfit:       ord,
		BreakEvenSales:  breakEven,
		LaborShare:      laborShare,
	}
}

// requiredSalesForOrdinary inverts the simple model for a target ordinary
// income.
func requiredSalesForOrdinary(target decimal.Decimal, plan domain.SimplePlan, nonop domain.NonOperating) decimal.Decimal {
	gp := plan.GPRate
	if gp.LessThan(tinyGPRate) {
		gp = tinyGPRate
	}
	required := target.Add(plan.OpexTotal()).Sub(nonop.Income()).Add(nonop.Expense()).Div(gp)
	if required.IsNegative() {
		return decimal.Zero
	}
	return required
}

// breakEvenSales solves the simple model's break-even, on operating income
// or on ordinary income depending on the mode.
func breakEvenSales(plan domain.SimplePlan, nonop domain.NonOperating, mode domain.BreakEvenMode) decimal.Decimal {
	gp := plan.GPRate
	if gp.LessThan(tinyGPRate) {
		gp = tinyGPRate
	}
	numerator := plan.OpexTotal()
	if mode == domain.BreakEvenOnOrdinary {
		numerator = numerator.Sub(nonop.Income()).Add(nonop.Expense())
	}
	be := numerator.Div(gp)
	if be.IsNegative() {
		return decimal.Zero
	}
	return be
}

// ScenarioTable produces the standard comparison columns: the current plan,
// three sales shocks, a one-point gross-margin improvement, the sales level
// required for the target ordinary income, last year's plan and the
// break-even plan.
func (s *scenarioService) ScenarioTable(ctx context.Context, base, current domain.SimplePlan, nonop domain.NonOperating, targetOrdinary decimal.Decimal, breakEvenMode domain.BreakEvenMode) ([]domain.ScenarioRow, error) {
	if breakEvenMode != domain.BreakEvenOnOrdinary {
		breakEvenMode = domain.BreakEvenOnOperating
	}

	gpUp := current.GPRate.Add(gpRateStep)
	if gpUp.GreaterThan(one) {
		gpUp = one
	}

	rows := []domain.ScenarioRow{
		scenarioRowFrom("target", evaluateSimplePlan(current), nonop),
		scenarioRowFrom("sales_up_10pct", evaluateSimplePlan(current.WithSales(current.Sales.Mul(scaleSalesUp10))), nonop),
		scenarioRowFrom("sales_down_5pct", evaluateSimplePlan(current.WithSales(current.Sales.Mul(scaleSalesDown5))), nonop),
		scenarioRowFrom("sales_down_10pct", evaluateSimplePlan(current.WithSales(current.Sales.Mul(scaleSalesDown10))), nonop),
		scenarioRowFrom("gp_rate_up_1pt", evaluateSimplePlan(current.WithGPRate(gpUp)), nonop),
		scenarioRowFrom("required_for_target_ord", evaluateSimplePlan(current.WithSales(requiredSalesForOrdinary(targetOrdinary, current, nonop))), nonop),
		scenarioRowFrom("prior_year", evaluateSimplePlan(base), nonop),
		scenarioRowFrom("break_even", evaluateSimplePlan(current.WithSales(breakEvenSales(current, nonop, breakEvenMode))), nonop),
	}

	s.LogDebug(ctx, "Scenario table built",
		slog.Int("rows", len(rows)),
		slog.String("target_ordinary", targetOrdinary.String()))
	return rows, nil
}

// Sensitivity recomputes the full plan once per multiplier, in parallel.
// Each run works on its own clone so the shared configuration is never
// mutated.
func (s *scenarioService) Sensitivity(ctx context.Context, plan *domain.PlanConfig, driver string, multipliers []decimal.Decimal) (*domain.SensitivityResult, error) {
	if len(multipliers) == 0 {
		return &domain.SensitivityResult{Driver: driver, Points: nil}, nil
	}
	if driver != "sales" {
		if _, ok := plan.Items[driver]; !ok {
			verr := apperrors.NewValidationError()
			verr.Add("driver", fmt.Sprintf("unknown sensitivity driver %q", driver))
			s.LogError(ctx, verr, "Unknown sensitivity driver", slog.String("driver", driver))
			return nil, verr
		}
	}

	points := make([]domain.SensitivityPoint, len(multipliers))
	errs := make([]error, len(multipliers))

	var wg sync.WaitGroup
	for i, multiplier := range multipliers {
		wg.Add(1)
		go func(idx int, m decimal.Decimal) {
			defer wg.Done()
			cloned := plan.Clone()
			opts := domain.ComputeOptions{}
			if driver == "sales" {
				override := cloned.BaseSales.Mul(m)
				opts.SalesOverride = &override
			} else {
				item := cloned.Items[driver]
				item.Value = item.Value.Mul(m)
				cloned.Items[driver] = item
			}
			result, err := s.planner.Compute(ctx, cloned, opts)
			if err != nil {
				errs[idx] = err
				return
			}
			points[idx] = domain.SensitivityPoint{
				Multiplier: m,
				Row: domain.ScenarioRow{
					Name:            fmt.Sprintf("%s_x%s", driver, m.String()),
					Sales:           result.Amounts.Get("REV"),
					GrossProfit:     result.Amounts.Get("GROSS"),
					OperatingProfit: result.Amounts.Get("OP"),
					OrdinaryProfit:  result.Amounts.Get("ORD"),
					NetProfit:       result.Amounts.Get("NET"),
					BreakEvenSales:  result.BreakEven,
					LaborShare:      result.LaborShare,
				},
			}
		}(i, multiplier)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Multiplier.LessThan(points[j].Multiplier)
	})
	return &domain.SensitivityResult{Driver: driver, Points: points}, nil
}
