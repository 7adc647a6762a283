package calc

import (
	"errors"
	"math"
	"testing"
)

func TestMortgageStandardLoan(t *testing.T) {
	result, err := Mortgage(400000, 80000, 6.5, 30)
	if err != nil {
		t.Fatalf("Mortgage returned error: %v", err)
	}

	if result.Principal != 320000 {
		t.Fatalf("expected principal 320000, got %v", result.Principal)
	}
	if result.MonthlyPayment <= 0 {
		t.Fatalf("expected positive monthly payment, got %v", result.MonthlyPayment)
	}
	// 320k at 6.5% over 30 years lands near $2022.62/month
	if math.Abs(result.MonthlyPayment-2022.62) > 1 {
		t.Fatalf("monthly payment out of range: got %v", result.MonthlyPayment)
	}
	if math.Abs(result.TotalInterest-(result.TotalPaid-result.Principal)) > 0.01 {
		t.Fatalf("totalInterest should equal totalPaid - principal: %v vs %v",
			result.TotalInterest, result.TotalPaid-result.Principal)
	}
}

func TestMortgageZeroRate(t *testing.T) {
	result, err := Mortgage(120000, 0, 0, 10)
	if err != nil {
		t.Fatalf("Mortgage returned error: %v", err)
	}
	if result.MonthlyPayment != 1000 {
		t.Fatalf("expected 1000/month on a zero-rate loan, got %v", result.MonthlyPayment)
	}
	if result.TotalInterest != 0 {
		t.Fatalf("expected zero interest, got %v", result.TotalInterest)
	}
}

func TestMortgageRejectsFullDownPayment(t *testing.T) {
	if _, err := Mortgage(200000, 200000, 5, 30); !errors.Is(err, ErrDownPaymentTooLarge) {
		t.Fatalf("expected ErrDownPaymentTooLarge, got %v", err)
	}
}

func TestDebtPayoffFiniteMonths(t *testing.T) {
	result, err := DebtPayoff(10000, 18.5, 300)
	if err != nil {
		t.Fatalf("DebtPayoff returned error: %v", err)
	}
	if result.Months <= 0 || result.Months >= maxMonths {
		t.Fatalf("expected finite month count, got %d", result.Months)
	}
	if result.TotalInterest <= 0 {
		t.Fatalf("expected positive interest, got %v", result.TotalInterest)
	}
	if math.Abs(result.TotalPaid-(10000+result.TotalInterest)) > 0.01 {
		t.Fatalf("totalPaid should equal balance + interest: %v vs %v",
			result.TotalPaid, 10000+result.TotalInterest)
	}
}

func TestDebtPayoffPaymentBelowInterest(t *testing.T) {
	// 10000 * 18.5%/12 is ~154.17/month; a 150 payment never finishes
	if _, err := DebtPayoff(10000, 18.5, 150); !errors.Is(err, ErrPaymentTooSmall) {
		t.Fatalf("expected ErrPaymentTooSmall, got %v", err)
	}
}

func TestSavingsGoalAlreadyReached(t *testing.T) {
	result, err := SavingsGoal(5000, 6000, 100, 4)
	if err != nil {
		t.Fatalf("SavingsGoal returned error: %v", err)
	}
	if result.Months != 0 {
		t.Fatalf("expected 0 months when already at target, got %d", result.Months)
	}
}

func TestSavingsGoalZeroRate(t *testing.T) {
	result, err := SavingsGoal(1200, 0, 100, 0)
	if err != nil {
		t.Fatalf("SavingsGoal returned error: %v", err)
	}
	if result.Months != 12 {
		t.Fatalf("expected 12 months at 100/month toward 1200, got %d", result.Months)
	}
	if result.InterestEarned != 0 {
		t.Fatalf("expected no interest at zero rate, got %v", result.InterestEarned)
	}
}

func TestSavingsGoalRequiresContribution(t *testing.T) {
	if _, err := SavingsGoal(1000, 0, 0, 5); !errors.Is(err, ErrContributionTooSmall) {
		t.Fatalf("expected ErrContributionTooSmall, got %v", err)
	}
}

func TestCompoundInterestGrowth(t *testing.T) {
	result, err := CompoundInterest(10000, 7, 10, 200)
	if err != nil {
		t.Fatalf("CompoundInterest returned error: %v", err)
	}
	if len(result.YearlyBalances) != 10 {
		t.Fatalf("expected 10 yearly balances, got %d", len(result.YearlyBalances))
	}
	if result.FutureValue <= result.TotalContributions {
		t.Fatalf("future value %v should exceed contributions %v",
			result.FutureValue, result.TotalContributions)
	}
	if result.FutureValue != result.YearlyBalances[9] {
		t.Fatalf("future value %v should match final yearly balance %v",
			result.FutureValue, result.YearlyBalances[9])
	}
	for i := 1; i < len(result.YearlyBalances); i++ {
		if result.YearlyBalances[i] <= result.YearlyBalances[i-1] {
			t.Fatalf("yearly balances should be strictly increasing, got %v", result.YearlyBalances)
		}
	}
}

func TestCompoundInterestRejectsBadInput(t *testing.T) {
	if _, err := CompoundInterest(1000, 5, 0, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero years, got %v", err)
	}
}
