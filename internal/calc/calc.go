// Package calc implements the financial calculators the storefront
// exposes for illustrative estimates. All functions are pure.
package calc

import (
	"errors"
	"math"
)

// maxMonths caps the payoff/savings simulations at 200 years.
const maxMonths = 12 * 200

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrPaymentTooSmall      = errors.New("monthly payment does not exceed monthly interest")
	ErrContributionTooSmall = errors.New("monthly contribution must be positive")
	ErrGoalUnreachable      = errors.New("savings goal not reachable within 200 years")
	ErrDownPaymentTooLarge  = errors.New("down payment must be less than the home price")
)

// MortgageResult is a fixed-rate mortgage amortization summary.
type MortgageResult struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPaid      float64 `json:"total_paid"`
	TotalInterest  float64 `json:"total_interest"`
}

// Mortgage computes the monthly payment and lifetime cost of a fixed-rate
// mortgage. annualRate is a percentage (6.5 means 6.5%).
func Mortgage(homePrice, downPayment, annualRate float64, years int) (*MortgageResult, error) {
	if homePrice <= 0 || downPayment < 0 || annualRate < 0 || years <= 0 {
		return nil, ErrInvalidInput
	}
	if downPayment >= homePrice {
		return nil, ErrDownPaymentTooLarge
	}

	principal := homePrice - downPayment
	months := float64(years * 12)
	monthlyRate := annualRate / 100 / 12

	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = principal / months
	} else {
		factor := math.Pow(1+monthlyRate, months)
		monthlyPayment = principal * monthlyRate * factor / (factor - 1)
	}

	totalPaid := monthlyPayment * months
	return &MortgageResult{
		Principal:      round2(principal),
		MonthlyPayment: round2(monthlyPayment),
		TotalPaid:      round2(totalPaid),
		TotalInterest:  round2(totalPaid - principal),
	}, nil
}

// DebtPayoffResult describes how long a fixed monthly payment takes to
// clear a balance.
type DebtPayoffResult struct {
	Months        int     `json:"months"`
	TotalInterest float64 `json:"total_interest"`
	TotalPaid     float64 `json:"total_paid"`
}

// DebtPayoff simulates paying a fixed amount each month against an
// interest-bearing balance. A payment that does not exceed the first
// month's interest can never finish and returns an explicit error.
func DebtPayoff(balance, annualRate, monthlyPayment float64) (*DebtPayoffResult, error) {
	if balance <= 0 || annualRate < 0 || monthlyPayment <= 0 {
		return nil, ErrInvalidInput
	}

	monthlyRate := annualRate / 100 / 12
	if monthlyPayment <= balance*monthlyRate {
		return nil, ErrPaymentTooSmall
	}

	remaining := balance
	totalInterest := 0.0
	months := 0
	for remaining > 0 && months < maxMonths {
		interest := remaining * monthlyRate
		totalInterest += interest
		remaining += interest - monthlyPayment
		months++
	}

	return &DebtPayoffResult{
		Months:        months,
		TotalInterest: round2(totalInterest),
		TotalPaid:     round2(balance + totalInterest),
	}, nil
}

// SavingsGoalResult describes how long monthly contributions take to
// reach a savings target.
type SavingsGoalResult struct {
	Months           int     `json:"months"`
	TotalContributed float64 `json:"total_contributed"`
	InterestEarned   float64 `json:"interest_earned"`
}

// SavingsGoal simulates monthly contributions with compounding interest
// until the balance reaches the target. A balance already at or above the
// target yields zero months.
func SavingsGoal(target, current, monthlyContribution, annualRate float64) (*SavingsGoalResult, error) {
	if target <= 0 || current < 0 || annualRate < 0 {
		return nil, ErrInvalidInput
	}
	if current >= target {
		return &SavingsGoalResult{Months: 0, TotalContributed: 0, InterestEarned: 0}, nil
	}
	if monthlyContribution <= 0 {
		return nil, ErrContributionTooSmall
	}

	monthlyRate := annualRate / 100 / 12
	balance := current
	contributed := 0.0
	months := 0
	for balance < target {
		if months >= maxMonths {
			return nil, ErrGoalUnreachable
		}
		balance += balance*monthlyRate + monthlyContribution
		contributed += monthlyContribution
		months++
	}

	return &SavingsGoalResult{
		Months:           months,
		TotalContributed: round2(contributed),
		InterestEarned:   round2(balance - current - contributed),
	}, nil
}

// CompoundInterestResult is a long-term growth projection.
type CompoundInterestResult struct {
	FutureValue        float64   `json:"future_value"`
	TotalContributions float64   `json:"total_contributions"`
	TotalInterest      float64   `json:"total_interest"`
	YearlyBalances     []float64 `json:"yearly_balances"`
}

// CompoundInterest projects a principal with optional monthly
// contributions, compounding monthly, and records the balance at each
// year end.
func CompoundInterest(principal, annualRate float64, years int, monthlyContribution float64) (*CompoundInterestResult, error) {
	if principal < 0 || annualRate < 0 || years <= 0 || monthlyContribution < 0 {
		return nil, ErrInvalidInput
	}

	monthlyRate := annualRate / 100 / 12
	balance := principal
	contributions := principal
	yearly := make([]float64, 0, years)

	for month := 1; month <= years*12; month++ {
		balance += balance*monthlyRate + monthlyContribution
		contributions += monthlyContribution
		if month%12 == 0 {
			yearly = append(yearly, round2(balance))
		}
	}

	return &CompoundInterestResult{
		FutureValue:        round2(balance),
		TotalContributions: round2(contributions),
		TotalInterest:      round2(balance - contributions),
		YearlyBalances:     yearly,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
