package domain

import (
	"fmt"

	"github.com/planfirst/financial_planning_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// RepaymentType selects how a loan's principal is paid down.
type RepaymentType string

const (
	EqualPrincipal RepaymentType = "equal_principal"
	EqualPayment   RepaymentType = "equal_payment"
	InterestOnly   RepaymentType = "interest_only"
)

// MaxLoanTermMonths bounds a single borrowing's repayment horizon.
const MaxLoanTermMonths = 600

var maxAnnualInterestRate = decimal.RequireFromString("0.2")

// LoanItem is the definition of a single borrowing schedule. The full
// principal is drawn at StartMonth in one disbursement.
type LoanItem struct {
	Name              string          `json:"name"`
	Principal         decimal.Decimal `json:"principal"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TermMonths        int             `json:"term_months"`
	StartMonth        int             `json:"start_month"`
	GracePeriodMonths int             `json:"grace_period_months"`
	RepaymentType     RepaymentType   `json:"repayment_type"`
}

// Validate checks all loan parameters against their allowed ranges.
func (l LoanItem) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	if l.Name == "" {
		verr.Add("name", "name is required")
	}
	if !l.Principal.IsPositive() {
		verr.Add("principal", "principal must be positive")
	}
	if l.InterestRate.IsNegative() || l.InterestRate.GreaterThan(maxAnnualInterestRate) {
		verr.Add("interest_rate", "annual interest rate must be between 0 and 0.20")
	}
	if l.TermMonths < 1 || l.TermMonths > MaxLoanTermMonths {
		verr.Add("term_months", fmt.Sprintf("term must be between 1 and %d months", MaxLoanTermMonths))
	}
	if l.StartMonth < 1 || l.StartMonth > MonthsPerYear {
		verr.Add("start_month", "start month must be between 1 and 12")
	}
	if l.GracePeriodMonths < 0 {
		verr.Add("grace_period_months", "grace period must be zero or positive")
	} else if l.TermMonths >= 1 && l.GracePeriodMonths > l.TermMonths {
		verr.Add("grace_period_months", "grace period cannot exceed the loan term")
	}
	switch l.RepaymentType {
	case EqualPrincipal, EqualPayment, InterestOnly, "":
	default:
		verr.Add("repayment_type", "repayment type must be 'equal_principal', 'equal_payment' or 'interest_only'")
	}
	return verr
}

// Repayment returns the configured repayment type, defaulting to
// equal-principal when unset.
func (l LoanItem) Repayment() RepaymentType {
	if l.RepaymentType == "" {
		return EqualPrincipal
	}
	return l.RepaymentType
}

// AnnualInterest approximates the first-year interest on the full principal.
func (l LoanItem) AnnualInterest() decimal.Decimal {
	return l.Principal.Mul(l.InterestRate)
}

// LoanSchedule is the set of all planned borrowings.
type LoanSchedule struct {
	Loans []LoanItem `json:"loans"`
}

// Validate checks every loan, accumulating indexed field errors.
func (s LoanSchedule) Validate() *apperrors.ValidationError {
	verr := apperrors.NewValidationError()
	for idx, loan := range s.Loans {
		verr.Merge(fmt.Sprintf("loans[%d]", idx), loan.Validate())
	}
	return verr
}

// AnnualInterest sums the first-year interest approximation across loans.
func (s LoanSchedule) AnnualInterest() decimal.Decimal {
	total := decimal.Zero
	for _, loan := range s.Loans {
		total = total.Add(loan.AnnualInterest())
	}
	return total
}

// OutstandingPrincipal sums the principal across loans.
func (s LoanSchedule) OutstandingPrincipal() decimal.Decimal {
	total := decimal.Zero
	for _, loan := range s.Loans {
		total = total.Add(loan.Principal)
	}
	return total
}
