package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLoan() LoanItem {
	return LoanItem{
		Name:         "Term loan A",
		Principal:    decimal.NewFromInt(12_000_000),
		InterestRate: decimal.NewFromFloat(0.02),
		TermMonths:   60,
		StartMonth:   1,
	}
}

func TestLoanItemValidate(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(*LoanItem)
		expectedLoc string
	}{
		{name: "Valid", mutate: func(l *LoanItem) {}},
		{name: "MissingName", mutate: func(l *LoanItem) { l.Name = "" }, expectedLoc: "name"},
		{name: "ZeroPrincipal", mutate: func(l *LoanItem) { l.Principal = decimal.Zero }, expectedLoc: "principal"},
		{name: "RateTooHigh", mutate: func(l *LoanItem) { l.InterestRate = decimal.NewFromFloat(0.25) }, expectedLoc: "interest_rate"},
		{name: "NegativeRate", mutate: func(l *LoanItem) { l.InterestRate = decimal.NewFromFloat(-0.01) }, expectedLoc: "interest_rate"},
		{name: "TermTooLong", mutate: func(l *LoanItem) { l.TermMonths = 601 }, expectedLoc: "term_months"},
		{name: "StartMonthOutOfRange", mutate: func(l *LoanItem) { l.StartMonth = 13 }, expectedLoc: "start_month"},
		{name: "GraceExceedsTerm", mutate: func(l *LoanItem) { l.GracePeriodMonths = 61 }, expectedLoc: "grace_period_months"},
		{name: "UnknownRepaymentType", mutate: func(l *LoanItem) { l.RepaymentType = "balloon" }, expectedLoc: "repayment_type"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loan := validLoan()
			tc.mutate(&loan)
			verr := loan.Validate()
			if tc.expectedLoc == "" {
				assert.False(t, verr.HasErrors())
				return
			}
			require.True(t, verr.HasErrors())
			assert.Equal(t, tc.expectedLoc, verr.Fields[0].Loc)
		})
	}
}

func TestLoanItemRepaymentDefaultsToEqualPrincipal(t *testing.T) {
	loan := validLoan()
	assert.Equal(t, EqualPrincipal, loan.Repayment())

	loan.RepaymentType = InterestOnly
	assert.Equal(t, InterestOnly, loan.Repayment())
}

func TestLoanScheduleValidatePrefixesIndex(t *testing.T) {
	schedule := LoanSchedule{Loans: []LoanItem{validLoan(), {Name: "bad"}}}
	verr := schedule.Validate()
	require.True(t, verr.HasErrors())
	assert.Equal(t, "loans[1].principal", verr.Fields[0].Loc)
}

func TestCapexItemValidate(t *testing.T) {
	item := CapexItem{
		Name:            "Production line",
		Amount:          decimal.NewFromInt(24_000_000),
		StartMonth:      4,
		UsefulLifeYears: 8,
	}
	assert.False(t, item.Validate().HasErrors())

	item.UsefulLifeYears = 21
	verr := item.Validate()
	require.True(t, verr.HasErrors())
	assert.Equal(t, "useful_life_years", verr.Fields[0].Loc)
}

func TestCapexItemAnnualDepreciation(t *testing.T) {
	item := CapexItem{
		Name:            "Server refresh",
		Amount:          decimal.NewFromInt(24_000_000),
		StartMonth:      1,
		UsefulLifeYears: 8,
	}
	assert.True(t, item.AnnualDepreciation().Equal(decimal.NewFromInt(3_000_000)))
}

func TestSalesPlanTotals(t *testing.T) {
	flat := NewMonthlySeries()
	for i := range flat.Amounts {
		flat.Amounts[i] = decimal.NewFromInt(100)
	}
	plan := SalesPlan{Items: []SalesItem{
		{Channel: "Direct", Product: "Widget", Monthly: flat},
		{Channel: "Online", Product: "Widget", Monthly: flat},
	}}

	require.False(t, plan.Validate().HasErrors())
	assert.True(t, plan.AnnualTotal().Equal(decimal.NewFromInt(2400)))

	byMonth := plan.TotalByMonth()
	assert.True(t, byMonth[1].Equal(decimal.NewFromInt(200)))
	assert.True(t, byMonth[12].Equal(decimal.NewFromInt(200)))

	assert.Equal(t, []string{"Direct", "Online"}, plan.Channels())
	assert.Equal(t, []string{"Widget"}, plan.Products())
}

func TestTaxPolicyEffectiveTax(t *testing.T) {
	policy := DefaultTaxPolicy()

	tax := policy.EffectiveTax(decimal.NewFromInt(1000))
	assert.True(t, tax.Equal(decimal.NewFromInt(300)))

	// Losses carry no tax charge.
	assert.True(t, policy.EffectiveTax(decimal.NewFromInt(-500)).IsZero())
	assert.True(t, policy.EffectiveTax(decimal.Zero).IsZero())
}

func TestFinanceBundleValidateMergesChildErrors(t *testing.T) {
	bundle := FinanceBundle{
		Loans: LoanSchedule{Loans: []LoanItem{{Name: "x", Principal: decimal.NewFromInt(1), InterestRate: decimal.NewFromFloat(0.5), TermMonths: 12, StartMonth: 1}}},
		Tax:   DefaultTaxPolicy(),
	}
	verr := bundle.Validate()
	require.True(t, verr.HasErrors())
	assert.Equal(t, "loans.loans[0].interest_rate", verr.Fields[0].Loc)
}
