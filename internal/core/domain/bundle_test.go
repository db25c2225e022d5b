package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/planfirst/financial_planning_app/internal/core/domain"
	"github.com/planfirst/financial_planning_app/internal/utils/sampledata"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceBundleJSONRoundTrip(t *testing.T) {
	original := sampledata.Bundle()

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var restored domain.FinanceBundle
	require.NoError(t, json.Unmarshal(payload, &restored))

	// Sales items survive with channel, product and every monthly amount.
	require.Len(t, restored.Sales.Items, len(original.Sales.Items))
	for i, item := range original.Sales.Items {
		got := restored.Sales.Items[i]
		assert.Equal(t, item.Channel, got.Channel)
		assert.Equal(t, item.Product, got.Product)
		require.Len(t, got.Monthly.Amounts, domain.MonthsPerYear)
		for m, amount := range item.Monthly.Amounts {
			assert.True(t, got.Monthly.Amounts[m].Equal(amount),
				"sales item %d month %d", i, m+1)
		}
	}
	assert.True(t, restored.Sales.AnnualTotal().Equal(original.Sales.AnnualTotal()))

	// Cost maps keep their codes and decimal values.
	assertDecimalMapEqual(t, original.Costs.VariableRatios, restored.Costs.VariableRatios)
	assertDecimalMapEqual(t, original.Costs.GrossLinkedRatios, restored.Costs.GrossLinkedRatios)
	assertDecimalMapEqual(t, original.Costs.FixedCosts, restored.Costs.FixedCosts)
	assertDecimalMapEqual(t, original.Costs.NonOperatingIncome, restored.Costs.NonOperatingIncome)
	assertDecimalMapEqual(t, original.Costs.NonOperatingExpenses, restored.Costs.NonOperatingExpenses)

	require.Len(t, restored.Capex.Items, len(original.Capex.Items))
	for i, item := range original.Capex.Items {
		got := restored.Capex.Items[i]
		assert.Equal(t, item.Name, got.Name)
		assert.True(t, got.Amount.Equal(item.Amount))
		assert.Equal(t, item.StartMonth, got.StartMonth)
		assert.Equal(t, item.UsefulLifeYears, got.UsefulLifeYears)
	}
	assert.Equal(t, original.Capex.DepreciationMethod, restored.Capex.DepreciationMethod)

	require.Len(t, restored.Loans.Loans, len(original.Loans.Loans))
	for i, loan := range original.Loans.Loans {
		got := restored.Loans.Loans[i]
		assert.Equal(t, loan.Name, got.Name)
		assert.True(t, got.Principal.Equal(loan.Principal))
		assert.True(t, got.InterestRate.Equal(loan.InterestRate))
		assert.Equal(t, loan.TermMonths, got.TermMonths)
		assert.Equal(t, loan.StartMonth, got.StartMonth)
		assert.Equal(t, loan.GracePeriodMonths, got.GracePeriodMonths)
		assert.Equal(t, loan.RepaymentType, got.RepaymentType)
	}

	assert.True(t, restored.Tax.CorporateTaxRate.Equal(original.Tax.CorporateTaxRate))
	assert.True(t, restored.Tax.ConsumptionTaxRate.Equal(original.Tax.ConsumptionTaxRate))
	assert.True(t, restored.Tax.DividendPayoutRatio.Equal(original.Tax.DividendPayoutRatio))

	assert.True(t, restored.WorkingCapital.ReceivableDays.Equal(original.WorkingCapital.ReceivableDays))
	assert.True(t, restored.WorkingCapital.InventoryDays.Equal(original.WorkingCapital.InventoryDays))
	assert.True(t, restored.WorkingCapital.PayableDays.Equal(original.WorkingCapital.PayableDays))

	// The restored bundle is as valid as the one it came from.
	assert.False(t, restored.Validate().HasErrors())
}

func assertDecimalMapEqual(t *testing.T, want, got map[string]decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for code, value := range want {
		restored, ok := got[code]
		require.True(t, ok, "missing code %s", code)
		assert.True(t, restored.Equal(value), "code %s: want %s, got %s", code, value, restored)
	}
}
